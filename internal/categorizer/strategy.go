package categorizer

import (
	"github.com/Tinclon/transaction-tracker/internal/models"
)

// Decision describes how a category was chosen for a transaction.
type Decision struct {
	Category string `json:"category" yaml:"category"`
	// Strategy is the name of the strategy that produced the category, or
	// "Fallback" when nothing matched.
	Strategy string `json:"strategy" yaml:"strategy"`
	// Detail identifies the override note or the pattern that matched.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// CategorizationStrategy is one step of the classification chain.
// Strategies are pure: the same transaction always yields the same result.
type CategorizationStrategy interface {
	// Categorize returns the decision and true if the strategy recognized
	// the transaction.
	Categorize(tx models.Transaction) (Decision, bool)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}

// OverrideStrategy applies the ordered override list.
type OverrideStrategy struct {
	overrides Overrides
}

// NewOverrideStrategy creates an OverrideStrategy over a copy of overrides.
func NewOverrideStrategy(overrides Overrides) *OverrideStrategy {
	list := make(Overrides, len(overrides))
	copy(list, overrides)
	return &OverrideStrategy{overrides: list}
}

// Name returns the name of this strategy for logging and debugging.
func (s *OverrideStrategy) Name() string {
	return "Override"
}

// Categorize implements CategorizationStrategy.
func (s *OverrideStrategy) Categorize(tx models.Transaction) (Decision, bool) {
	o, ok := s.overrides.Match(tx)
	if !ok {
		return Decision{}, false
	}
	detail := o.Contains
	if o.Note != "" {
		detail = o.Note
	}
	return Decision{Category: o.Category, Strategy: s.Name(), Detail: detail}, true
}

// CatalogStrategy applies the priority-ordered rule catalog.
type CatalogStrategy struct {
	catalog *Catalog
}

// NewCatalogStrategy creates a CatalogStrategy.
func NewCatalogStrategy(catalog *Catalog) *CatalogStrategy {
	return &CatalogStrategy{catalog: catalog}
}

// Name returns the name of this strategy for logging and debugging.
func (s *CatalogStrategy) Name() string {
	return "Catalog"
}

// Categorize implements CategorizationStrategy.
func (s *CatalogStrategy) Categorize(tx models.Transaction) (Decision, bool) {
	r, ok := s.catalog.Match(tx)
	if !ok {
		return Decision{}, false
	}
	p, _ := r.matchedPattern(tx.Description)
	return Decision{Category: r.Name, Strategy: s.Name(), Detail: p.String()}, true
}
