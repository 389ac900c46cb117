// Package container provides dependency injection for the transaction tracker.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"github.com/Tinclon/transaction-tracker/internal/aggregator"
	"github.com/Tinclon/transaction-tracker/internal/categorizer"
	"github.com/Tinclon/transaction-tracker/internal/config"
	"github.com/Tinclon/transaction-tracker/internal/ledger"
	"github.com/Tinclon/transaction-tracker/internal/logging"
	"github.com/Tinclon/transaction-tracker/internal/statement"
	"github.com/Tinclon/transaction-tracker/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	rules       *store.RuleSet
	categorizer *categorizer.Categorizer
	loader      *statement.Loader
	aggregator  *aggregator.Aggregator
}

// NewContainer creates and wires all application dependencies, building the
// logger from the configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLoggingFromConfig(cfg))
}

// NewContainerWithLogger is like NewContainer but uses the given logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger = logging.OrDefault(logger)

	rules, err := store.NewRuleStore(cfg.Rules.File, logger).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	cat := categorizer.NewCategorizer(rules.Overrides, rules.Catalog, logger,
		categorizer.WithFallback(cfg.Report.UncategorizedCategory))

	normalizer := ledger.NewNormalizer(cfg.Statements.DateFormat)
	loader := statement.NewLoader(normalizer, cfg.Statements.Workers, logger)

	agg := aggregator.NewAggregator(cat, rules.Special, logger).
		WithUncategorized(cfg.Report.UncategorizedCategory)

	logger.Debug("Container initialized successfully",
		logging.Field{Key: "rules", Value: rules.Source},
		logging.Field{Key: "categories", Value: rules.Catalog.Len()},
		logging.Field{Key: "overrides", Value: len(rules.Overrides)})

	return &Container{
		logger:      logger,
		config:      cfg,
		rules:       rules,
		categorizer: cat,
		loader:      loader,
		aggregator:  agg,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetRules returns the loaded rule set.
func (c *Container) GetRules() *store.RuleSet {
	return c.rules
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetLoader returns the statement loader.
func (c *Container) GetLoader() *statement.Loader {
	return c.loader
}

// GetAggregator returns the aggregator.
func (c *Container) GetAggregator() *aggregator.Aggregator {
	return c.aggregator
}
