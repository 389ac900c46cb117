package categorizer

import (
	"fmt"
	"strings"

	"github.com/Tinclon/transaction-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// Constraint is an additional predicate a rule must satisfy once one of its
// patterns matched. Constraints are small composable values so that a rule
// set stays declarative.
type Constraint interface {
	Allows(tx models.Transaction) bool
	String() string
}

// AmountIn allows transactions whose absolute amount equals one of the values.
type AmountIn []decimal.Decimal

// Allows implements Constraint.
func (c AmountIn) Allows(tx models.Transaction) bool {
	abs := tx.AbsAmount()
	for _, amount := range c {
		if abs.Equal(amount.Abs()) {
			return true
		}
	}
	return false
}

func (c AmountIn) String() string {
	values := make([]string, len(c))
	for i, amount := range c {
		values[i] = amount.String()
	}
	return fmt.Sprintf("amount in {%s}", strings.Join(values, ", "))
}

// DescriptionContains allows transactions whose description contains the substring.
type DescriptionContains string

// Allows implements Constraint.
func (c DescriptionContains) Allows(tx models.Transaction) bool {
	return strings.Contains(tx.Description, string(c))
}

func (c DescriptionContains) String() string {
	return fmt.Sprintf("description contains %q", string(c))
}

// Not inverts a constraint.
type Not struct {
	Constraint Constraint
}

// Allows implements Constraint.
func (c Not) Allows(tx models.Transaction) bool {
	return !c.Constraint.Allows(tx)
}

func (c Not) String() string {
	return fmt.Sprintf("not (%s)", c.Constraint)
}

// All allows a transaction when every constraint does. An empty All allows everything.
type All []Constraint

// Allows implements Constraint.
func (c All) Allows(tx models.Transaction) bool {
	for _, constraint := range c {
		if !constraint.Allows(tx) {
			return false
		}
	}
	return true
}

func (c All) String() string {
	return join(c, " and ")
}

// Any allows a transaction when at least one constraint does. An empty Any allows nothing.
type Any []Constraint

// Allows implements Constraint.
func (c Any) Allows(tx models.Transaction) bool {
	for _, constraint := range c {
		if constraint.Allows(tx) {
			return true
		}
	}
	return false
}

func (c Any) String() string {
	return join(c, " or ")
}

func join(constraints []Constraint, sep string) string {
	parts := make([]string, len(constraints))
	for i, constraint := range constraints {
		parts[i] = constraint.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}
