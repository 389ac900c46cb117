package categorizer

// SpecialCategories is the ordered list of category patterns tracked in the
// monthly rollup. A category is assigned to the first slot whose pattern
// matches; later slots never see it.
type SpecialCategories struct {
	patterns []Pattern
}

// NewSpecialCategories compiles the slot patterns. Like rule patterns they are
// unanchored searches, so "Insurance" also matches "Insurance - Auto".
func NewSpecialCategories(exprs []string) (*SpecialCategories, error) {
	patterns, err := CompilePatterns(exprs)
	if err != nil {
		return nil, err
	}
	return &SpecialCategories{patterns: patterns}, nil
}

// Slot returns the index of the first slot matching category.
func (s *SpecialCategories) Slot(category string) (int, bool) {
	if s == nil {
		return 0, false
	}
	for i, p := range s.patterns {
		if p.Match(category) {
			return i, true
		}
	}
	return 0, false
}

// Len returns the number of slots.
func (s *SpecialCategories) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Labels returns the slot expressions in order.
func (s *SpecialCategories) Labels() []string {
	if s == nil {
		return nil
	}
	labels := make([]string, len(s.patterns))
	for i, p := range s.patterns {
		labels[i] = p.String()
	}
	return labels
}
