package ledger

import (
	"sort"

	"github.com/Tinclon/transaction-tracker/internal/logging"
	"github.com/Tinclon/transaction-tracker/internal/models"
)

// Deduplicator merges transactions from overlapping statement exports.
// Transactions are keyed by identity key; a later transaction with the same
// key replaces the earlier one.
type Deduplicator struct {
	byKey      map[string]models.Transaction
	collisions int
	logger     logging.Logger
}

// NewDeduplicator creates an empty Deduplicator.
func NewDeduplicator(logger logging.Logger) *Deduplicator {
	return &Deduplicator{
		byKey:  make(map[string]models.Transaction),
		logger: logging.OrDefault(logger),
	}
}

// Add inserts tx and reports whether it superseded an existing transaction.
func (d *Deduplicator) Add(tx models.Transaction) bool {
	_, exists := d.byKey[tx.IdentityKey]
	d.byKey[tx.IdentityKey] = tx
	if exists {
		d.collisions++
		d.logger.Debug("Duplicate transaction superseded",
			logging.Field{Key: logging.FieldSource, Value: tx.Source},
			logging.Field{Key: logging.FieldDescription, Value: tx.Description},
			logging.Field{Key: logging.FieldAmount, Value: tx.Amount.String()})
	}
	return exists
}

// AddAll inserts every transaction in order and returns the number of collisions.
func (d *Deduplicator) AddAll(transactions []models.Transaction) int {
	collisions := 0
	for _, tx := range transactions {
		if d.Add(tx) {
			collisions++
		}
	}
	return collisions
}

// Len returns the number of unique transactions.
func (d *Deduplicator) Len() int {
	return len(d.byKey)
}

// Collisions returns how many inserts replaced an existing transaction.
func (d *Deduplicator) Collisions() int {
	return d.collisions
}

// Transactions returns the unique transactions ordered by date, then identity key.
func (d *Deduplicator) Transactions() []models.Transaction {
	out := make([]models.Transaction, 0, len(d.byKey))
	for _, tx := range d.byKey {
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].IdentityKey < out[j].IdentityKey
	})
	return out
}
