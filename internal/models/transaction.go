// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is one row of a statement export, exactly as read from the file.
// Columns have no header; the field order below is the column order.
type RawRecord struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Debit       string `csv:"debit"`
	Credit      string `csv:"credit"`
	Balance     string `csv:"balance"`
}

// IdentityKey concatenates the five raw fields. Two rows with identical
// values in every field are the same transaction.
func (r RawRecord) IdentityKey() string {
	return r.Date + r.Description + r.Debit + r.Credit + r.Balance
}

// Transaction is a normalized statement row. Amount is negative for debits
// (expenses) and positive for credits (income).
type Transaction struct {
	Date        time.Time       `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	IdentityKey string          `json:"-" yaml:"-"`
	Source      string          `json:"source,omitempty" yaml:"source,omitempty"`
}

// AbsAmount returns the magnitude of the amount.
func (t Transaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// YearMonth returns the reporting bucket of the transaction.
func (t Transaction) YearMonth() YearMonth {
	return YearMonthOf(t.Date)
}

// IsDebit returns true if the transaction takes money out of the account.
func (t Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// IsCredit returns true if the transaction brings money into the account.
func (t Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}
