package categorizer

import (
	"strings"

	"github.com/Tinclon/transaction-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// Override pins a category for one specific recurring transaction, identified
// by a description substring and an exact absolute amount.
type Override struct {
	Contains string
	Amount   decimal.Decimal
	Category string
	Note     string
}

// Matches reports whether the override applies to the transaction.
func (o Override) Matches(tx models.Transaction) bool {
	return strings.Contains(tx.Description, o.Contains) && tx.AbsAmount().Equal(o.Amount.Abs())
}

// Overrides is an ordered override list. The first matching entry wins.
type Overrides []Override

// Match returns the first override that applies to tx.
func (l Overrides) Match(tx models.Transaction) (Override, bool) {
	for _, o := range l {
		if o.Matches(tx) {
			return o, true
		}
	}
	return Override{}, false
}
