// Package ledger turns raw statement rows into transactions and merges
// overlapping statement exports into a unique set.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/Tinclon/transaction-tracker/internal/models"
	"github.com/Tinclon/transaction-tracker/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Normalizer converts raw rows into Transactions.
type Normalizer struct {
	dateLayout string
}

// NewNormalizer creates a Normalizer for the given Go date layout.
// An empty layout means MM/DD/YYYY.
func NewNormalizer(dateLayout string) *Normalizer {
	if dateLayout == "" {
		dateLayout = models.DateLayoutStatement
	}
	return &Normalizer{dateLayout: dateLayout}
}

// Normalize converts one raw row. row is the 1-based position inside source
// and is only used for error reporting.
//
// A populated debit yields a negative amount, otherwise a populated credit
// yields a positive amount. A row with both fields empty has a zero amount.
func (n *Normalizer) Normalize(source string, row int, raw models.RawRecord) (models.Transaction, error) {
	date, err := time.Parse(n.dateLayout, strings.TrimSpace(raw.Date))
	if err != nil {
		return models.Transaction{}, &parsererror.MalformedRecordError{
			Source: source, Row: row, Field: "date", Value: raw.Date, Err: err,
		}
	}

	amount := decimal.Zero
	switch {
	case strings.TrimSpace(raw.Debit) != "":
		debit, err := models.ParseAmount(raw.Debit)
		if err != nil {
			return models.Transaction{}, &parsererror.MalformedRecordError{
				Source: source, Row: row, Field: "debit", Value: raw.Debit, Err: err,
			}
		}
		amount = debit.Neg()
	case strings.TrimSpace(raw.Credit) != "":
		credit, err := models.ParseAmount(raw.Credit)
		if err != nil {
			return models.Transaction{}, &parsererror.MalformedRecordError{
				Source: source, Row: row, Field: "credit", Value: raw.Credit, Err: err,
			}
		}
		amount = credit
	}

	return models.Transaction{
		Date:        date,
		Description: raw.Description,
		Amount:      amount,
		IdentityKey: raw.IdentityKey(),
		Source:      source,
	}, nil
}

// NormalizeAll converts every row of one source. It is all-or-nothing: the
// first malformed row fails the whole source and no transactions are returned.
func (n *Normalizer) NormalizeAll(source string, rows []models.RawRecord) ([]models.Transaction, error) {
	transactions := make([]models.Transaction, 0, len(rows))
	for i, raw := range rows {
		tx, err := n.Normalize(source, i+1, raw)
		if err != nil {
			return nil, fmt.Errorf("normalizing %s: %w", source, err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}
