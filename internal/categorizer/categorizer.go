// Package categorizer assigns a category to every transaction.
//
// Classification runs two strategies in order:
//  1. Overrides: an ordered list of (description substring, exact amount)
//     pairs, first match wins
//  2. Catalog: rules sorted by priority, the first rule with a matching
//     pattern whose constraint allows the transaction wins
//
// A transaction neither strategy recognizes is Uncategorized.
package categorizer

import (
	"github.com/Tinclon/transaction-tracker/internal/logging"
	"github.com/Tinclon/transaction-tracker/internal/models"
)

// Categorizer is the transaction classifier. It is immutable once built and
// safe for concurrent use.
type Categorizer struct {
	strategies []CategorizationStrategy
	fallback   string
	logger     logging.Logger
}

// Option configures a Categorizer.
type Option func(*Categorizer)

// WithFallback sets the category returned when no strategy matches.
func WithFallback(category string) Option {
	return func(c *Categorizer) {
		if category != "" {
			c.fallback = category
		}
	}
}

// NewCategorizer creates a classifier that checks overrides before the catalog.
func NewCategorizer(overrides Overrides, catalog *Catalog, logger logging.Logger, opts ...Option) *Categorizer {
	c := &Categorizer{
		strategies: []CategorizationStrategy{
			NewOverrideStrategy(overrides),
			NewCatalogStrategy(catalog),
		},
		fallback: models.CategoryUncategorized,
		logger:   logging.OrDefault(logger),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Categorize returns the category name for tx. It never fails.
func (c *Categorizer) Categorize(tx models.Transaction) string {
	return c.Explain(tx).Category
}

// Explain returns the category together with the strategy that chose it.
func (c *Categorizer) Explain(tx models.Transaction) Decision {
	for _, s := range c.strategies {
		if d, ok := s.Categorize(tx); ok {
			c.logger.WithFields(
				logging.Field{Key: logging.FieldDescription, Value: tx.Description},
				logging.Field{Key: logging.FieldCategory, Value: d.Category},
				logging.Field{Key: logging.FieldRule, Value: d.Detail},
			).Debug("Transaction categorized by " + d.Strategy)
			return d
		}
	}

	c.logger.WithField(logging.FieldDescription, tx.Description).Debug("No category matched")
	return Decision{Category: c.fallback, Strategy: "Fallback"}
}

// Fallback returns the category used for unmatched transactions.
func (c *Categorizer) Fallback() string {
	return c.fallback
}
