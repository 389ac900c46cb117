package store

import (
	"fmt"

	"github.com/Tinclon/transaction-tracker/internal/categorizer"
	"github.com/Tinclon/transaction-tracker/internal/parsererror"

	"github.com/shopspring/decimal"
)

// buildConstraint converts a tagged entry into a categorizer.Constraint.
func buildConstraint(e ConstraintEntry) (categorizer.Constraint, error) {
	var built []categorizer.Constraint

	if e.AmountIn != nil {
		set, err := parseAmounts(e.AmountIn)
		if err != nil {
			return nil, err
		}
		built = append(built, set)
	}
	if e.AmountNotIn != nil {
		set, err := parseAmounts(e.AmountNotIn)
		if err != nil {
			return nil, err
		}
		built = append(built, categorizer.Not{Constraint: set})
	}
	if e.Contains != "" {
		built = append(built, categorizer.DescriptionContains(e.Contains))
	}
	if e.NotContains != "" {
		built = append(built, categorizer.Not{Constraint: categorizer.DescriptionContains(e.NotContains)})
	}
	if e.All != nil {
		all, err := buildConstraints(e.All)
		if err != nil {
			return nil, err
		}
		built = append(built, categorizer.All(all))
	}
	if e.Any != nil {
		anyOf, err := buildConstraints(e.Any)
		if err != nil {
			return nil, err
		}
		built = append(built, categorizer.Any(anyOf))
	}
	if e.Not != nil {
		inner, err := buildConstraint(*e.Not)
		if err != nil {
			return nil, err
		}
		built = append(built, categorizer.Not{Constraint: inner})
	}

	switch len(built) {
	case 0:
		return nil, fmt.Errorf("%w: no constraint type set", parsererror.ErrInvalidConstraint)
	case 1:
		return built[0], nil
	default:
		return nil, fmt.Errorf("%w: %d constraint types set, expected one (use all: or any: to combine)",
			parsererror.ErrInvalidConstraint, len(built))
	}
}

func buildConstraints(entries []ConstraintEntry) ([]categorizer.Constraint, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: empty constraint list", parsererror.ErrInvalidConstraint)
	}
	constraints := make([]categorizer.Constraint, 0, len(entries))
	for _, entry := range entries {
		c, err := buildConstraint(entry)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, c)
	}
	return constraints, nil
}

func parseAmounts(values []string) (categorizer.AmountIn, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: empty amount list", parsererror.ErrInvalidConstraint)
	}
	set := make(categorizer.AmountIn, 0, len(values))
	for _, v := range values {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("%w: amount %q: %v", parsererror.ErrInvalidConstraint, v, err)
		}
		set = append(set, d)
	}
	return set, nil
}
