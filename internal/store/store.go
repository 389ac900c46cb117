// Package store loads the rule configuration: the category catalog, the
// override list and the special category list.
package store

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tinclon/transaction-tracker/internal/categorizer"
	"github.com/Tinclon/transaction-tracker/internal/logging"
	"github.com/Tinclon/transaction-tracker/internal/parsererror"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed default_rules.yaml
var defaultRules []byte

// DefaultRulesName identifies the embedded rule set in logs and errors.
const DefaultRulesName = "built-in rules"

// RuleSet is the validated, immutable rule configuration.
type RuleSet struct {
	Catalog   *categorizer.Catalog
	Overrides categorizer.Overrides
	Special   *categorizer.SpecialCategories
	// Source is the file the rules were read from, or DefaultRulesName.
	Source string
}

// RuleStore reads rule sets from YAML.
type RuleStore struct {
	RulesFile string
	logger    logging.Logger
}

// NewRuleStore creates a store for rulesFile. An empty name selects the
// embedded rule set.
func NewRuleStore(rulesFile string, logger logging.Logger) *RuleStore {
	return &RuleStore{
		RulesFile: rulesFile,
		logger:    logging.OrDefault(logger),
	}
}

// FindConfigFile looks for a rules file in the standard locations: the path as
// given, ./config/ and $HOME/.config/transaction-tracker/.
func FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			return "", err
		}
		return filename, nil
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "transaction-tracker", filename))
	}

	for _, location := range locations {
		if info, err := os.Stat(location); err == nil && !info.IsDir() {
			return location, nil
		}
	}
	return "", fmt.Errorf("rules file %s: %w", filename, os.ErrNotExist)
}

// Load reads and validates the rule set. A missing configured file is an
// error; it never silently falls back to the built-in rules.
func (s *RuleStore) Load() (*RuleSet, error) {
	if s.RulesFile == "" {
		s.logger.Debug("Using built-in rules")
		return Parse(defaultRules, DefaultRulesName, s.logger)
	}

	path, err := FindConfigFile(s.RulesFile)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	rules, err := Parse(data, path, s.logger)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: rules.Catalog.Len()},
	).Info("Loaded rules")
	return rules, nil
}

// DefaultRuleFile returns the embedded rule set in its file form.
func DefaultRuleFile() (RuleFile, error) {
	var file RuleFile
	if err := yaml.Unmarshal(defaultRules, &file); err != nil {
		return RuleFile{}, fmt.Errorf("error parsing built-in rules: %w", err)
	}
	return file, nil
}

// Parse decodes and validates a rules document. name is used in error messages.
func Parse(data []byte, name string, logger logging.Logger) (*RuleSet, error) {
	var file RuleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &parsererror.ConfigError{File: name, Reason: "invalid YAML", Err: err}
	}
	return Build(file, name, logger)
}

// Build validates a decoded rules document and compiles it.
func Build(file RuleFile, name string, logger logging.Logger) (*RuleSet, error) {
	logger = logging.OrDefault(logger)

	rules := make([]categorizer.Rule, 0, len(file.Categories))
	for i, entry := range file.Categories {
		rule, err := buildRule(entry)
		if err != nil {
			ruleName := entry.Name
			if ruleName == "" {
				ruleName = fmt.Sprintf("#%d", i+1)
			}
			return nil, &parsererror.ConfigError{File: name, Rule: ruleName, Reason: "invalid category", Err: err}
		}
		rules = append(rules, rule)
	}

	catalog, err := categorizer.NewCatalog(rules)
	if err != nil {
		var cfgErr *parsererror.ConfigError
		if errors.As(err, &cfgErr) {
			cfgErr.File = name
		}
		return nil, err
	}

	overrides := make(categorizer.Overrides, 0, len(file.Overrides))
	for i, entry := range file.Overrides {
		o, err := buildOverride(entry)
		if err != nil {
			return nil, &parsererror.ConfigError{File: name, Rule: fmt.Sprintf("override #%d", i+1), Reason: "invalid override", Err: err}
		}
		if !catalog.Has(o.Category) {
			logger.WithFields(
				logging.Field{Key: logging.FieldCategory, Value: o.Category},
				logging.Field{Key: logging.FieldFile, Value: name},
			).Debug("Override assigns a category that has no catalog rule")
		}
		overrides = append(overrides, o)
	}

	special, err := categorizer.NewSpecialCategories(file.SpecialCategories)
	if err != nil {
		return nil, &parsererror.ConfigError{File: name, Rule: "special_categories", Reason: "invalid pattern", Err: err}
	}

	return &RuleSet{
		Catalog:   catalog,
		Overrides: overrides,
		Special:   special,
		Source:    name,
	}, nil
}

func buildRule(entry CategoryEntry) (categorizer.Rule, error) {
	priority := DefaultPriority
	if entry.Priority != nil {
		priority = *entry.Priority
	}

	patterns, err := categorizer.CompilePatterns(entry.Patterns)
	if err != nil {
		return categorizer.Rule{}, err
	}

	rule := categorizer.Rule{
		Name:     entry.Name,
		Priority: priority,
		Patterns: patterns,
	}
	if entry.Constraint != nil {
		if rule.Constraint, err = buildConstraint(*entry.Constraint); err != nil {
			return categorizer.Rule{}, err
		}
	}
	return rule, nil
}

func buildOverride(entry OverrideEntry) (categorizer.Override, error) {
	if entry.Contains == "" {
		return categorizer.Override{}, errors.New("contains must not be empty")
	}
	if entry.Category == "" {
		return categorizer.Override{}, errors.New("category must not be empty")
	}
	amount, err := decimal.NewFromString(entry.Amount)
	if err != nil {
		return categorizer.Override{}, fmt.Errorf("amount %q: %w", entry.Amount, err)
	}
	return categorizer.Override{
		Contains: entry.Contains,
		Amount:   amount,
		Category: entry.Category,
		Note:     entry.Note,
	}, nil
}
