package store

// RuleFile is the on-disk layout of a rules file.
type RuleFile struct {
	Categories        []CategoryEntry `yaml:"categories"`
	Overrides         []OverrideEntry `yaml:"overrides,omitempty"`
	SpecialCategories []string        `yaml:"special_categories,omitempty"`
}

// CategoryEntry declares one catalog rule. Priority defaults to
// DefaultPriority when omitted.
type CategoryEntry struct {
	Name       string           `yaml:"name"`
	Priority   *int             `yaml:"priority,omitempty"`
	Patterns   []string         `yaml:"patterns"`
	Constraint *ConstraintEntry `yaml:"constraint,omitempty"`
}

// ConstraintEntry is a tagged constraint. Exactly one field must be set.
// Amounts are kept as strings so they convert to exact decimals.
type ConstraintEntry struct {
	AmountIn    []string          `yaml:"amount_in,omitempty"`
	AmountNotIn []string          `yaml:"amount_not_in,omitempty"`
	Contains    string            `yaml:"contains,omitempty"`
	NotContains string            `yaml:"not_contains,omitempty"`
	All         []ConstraintEntry `yaml:"all,omitempty"`
	Any         []ConstraintEntry `yaml:"any,omitempty"`
	Not         *ConstraintEntry  `yaml:"not,omitempty"`
}

// OverrideEntry pins a category for a description substring and exact amount.
type OverrideEntry struct {
	Contains string `yaml:"contains"`
	Amount   string `yaml:"amount"`
	Category string `yaml:"category"`
	Note     string `yaml:"note,omitempty"`
}

// DefaultPriority is used for categories that do not declare one.
const DefaultPriority = 5
