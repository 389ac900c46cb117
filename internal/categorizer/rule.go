package categorizer

import (
	"fmt"
	"sort"

	"github.com/Tinclon/transaction-tracker/internal/models"
	"github.com/Tinclon/transaction-tracker/internal/parsererror"
)

// Rule assigns a category to transactions whose description matches one of
// its patterns and, if a constraint is set, satisfies it. Lower priority
// values are evaluated first.
type Rule struct {
	Name       string
	Priority   int
	Patterns   []Pattern
	Constraint Constraint
}

// Matches reports whether the rule applies to the transaction.
func (r Rule) Matches(tx models.Transaction) bool {
	for _, p := range r.Patterns {
		if p.Match(tx.Description) {
			return r.Constraint == nil || r.Constraint.Allows(tx)
		}
	}
	return false
}

// matchedPattern returns the first pattern that matched, for explanations.
func (r Rule) matchedPattern(description string) (Pattern, bool) {
	for _, p := range r.Patterns {
		if p.Match(description) {
			return p, true
		}
	}
	return Pattern{}, false
}

// Catalog is the immutable, evaluation-ordered set of rules.
type Catalog struct {
	rules []Rule
}

// NewCatalog validates the rules and orders them by priority. Rules sharing a
// priority keep their declaration order.
func NewCatalog(rules []Rule) (*Catalog, error) {
	seen := make(map[string]struct{}, len(rules))
	ordered := make([]Rule, 0, len(rules))
	for i, r := range rules {
		if r.Name == "" {
			return nil, &parsererror.ConfigError{
				Rule:   fmt.Sprintf("#%d", i+1),
				Reason: "category name is empty",
			}
		}
		if _, dup := seen[r.Name]; dup {
			return nil, &parsererror.ConfigError{
				Rule:   r.Name,
				Reason: "category declared more than once",
				Err:    parsererror.ErrDuplicateCategory,
			}
		}
		seen[r.Name] = struct{}{}

		patterns := make([]Pattern, len(r.Patterns))
		copy(patterns, r.Patterns)
		r.Patterns = patterns
		ordered = append(ordered, r)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	return &Catalog{rules: ordered}, nil
}

// Rules returns a copy of the rules in evaluation order.
func (c *Catalog) Rules() []Rule {
	if c == nil {
		return nil
	}
	rules := make([]Rule, len(c.rules))
	copy(rules, c.rules)
	return rules
}

// Len returns the number of rules.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.rules)
}

// Has reports whether a rule with the given name exists.
func (c *Catalog) Has(name string) bool {
	if c == nil {
		return false
	}
	for _, r := range c.rules {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Match returns the first rule, in evaluation order, that applies to tx.
func (c *Catalog) Match(tx models.Transaction) (Rule, bool) {
	if c == nil {
		return Rule{}, false
	}
	for _, r := range c.rules {
		if r.Matches(tx) {
			return r, true
		}
	}
	return Rule{}, false
}
