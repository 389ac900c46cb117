// Package aggregator folds classified transactions into per-month category
// buckets and derives the monthly and yearly summary.
package aggregator

import (
	"sort"

	"github.com/Tinclon/transaction-tracker/internal/logging"
	"github.com/Tinclon/transaction-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// LineAmountWidth is the width amounts are right-aligned to in display lines.
const LineAmountWidth = 12

// Classifier assigns exactly one category to a transaction.
type Classifier interface {
	Categorize(tx models.Transaction) string
}

// SpecialSlotter maps a category to its special rollup slot.
type SpecialSlotter interface {
	Slot(category string) (int, bool)
	Len() int
}

// Bucket holds everything assigned to one category in one month.
type Bucket struct {
	YearMonth    models.YearMonth
	Category     string
	Total        decimal.Decimal
	Lines        []string
	Transactions []models.Transaction
}

// month is the mutable state of one calendar month during aggregation.
type month struct {
	buckets map[string]*Bucket
	special []decimal.Decimal
}

// Aggregation is the result of Aggregate. It is read-only.
type Aggregation struct {
	months        map[models.YearMonth]*month
	slots         int
	uncategorized int
	fallback      string
}

// Aggregator classifies transactions and accumulates them.
type Aggregator struct {
	classifier    Classifier
	special       SpecialSlotter
	uncategorized string
	logger        logging.Logger
}

// NewAggregator creates an Aggregator. special may be nil when no rollup is
// tracked.
func NewAggregator(classifier Classifier, special SpecialSlotter, logger logging.Logger) *Aggregator {
	return &Aggregator{
		classifier:    classifier,
		special:       special,
		uncategorized: models.CategoryUncategorized,
		logger:        logging.OrDefault(logger),
	}
}

// WithUncategorized sets the category name counted as unmatched.
func (a *Aggregator) WithUncategorized(category string) *Aggregator {
	if category != "" {
		a.uncategorized = category
	}
	return a
}

// Aggregate buckets every transaction by month and category. Each transaction
// lands in exactly one bucket and in at most one special rollup slot.
func (a *Aggregator) Aggregate(transactions []models.Transaction) *Aggregation {
	slots := 0
	if a.special != nil {
		slots = a.special.Len()
	}
	agg := &Aggregation{
		months:   make(map[models.YearMonth]*month),
		slots:    slots,
		fallback: a.uncategorized,
	}

	for _, tx := range transactions {
		category := a.classifier.Categorize(tx)
		ym := tx.YearMonth()

		m, ok := agg.months[ym]
		if !ok {
			m = &month{
				buckets: make(map[string]*Bucket),
				special: make([]decimal.Decimal, slots),
			}
			agg.months[ym] = m
		}

		b, ok := m.buckets[category]
		if !ok {
			b = &Bucket{YearMonth: ym, Category: category}
			m.buckets[category] = b
		}
		b.Total = b.Total.Add(tx.Amount)
		b.Lines = append(b.Lines, FormatLine(tx))
		b.Transactions = append(b.Transactions, tx)

		if a.special != nil {
			if slot, ok := a.special.Slot(category); ok {
				m.special[slot] = m.special[slot].Add(tx.Amount)
			}
		}

		if category == a.uncategorized {
			agg.uncategorized++
		}
	}

	a.logger.Info("Transactions aggregated",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: "months", Value: len(agg.months)},
		logging.Field{Key: "uncategorized", Value: agg.uncategorized})

	return agg
}

// FormatLine renders the display line of a transaction:
// ISO date, amount right-aligned to LineAmountWidth, a tab and the description.
func FormatLine(tx models.Transaction) string {
	return tx.Date.Format(models.DateLayoutISO) + models.PadAmount(tx.Amount, LineAmountWidth) + "\t" + tx.Description
}

// Months returns every month with at least one transaction, oldest first.
func (g *Aggregation) Months() []models.YearMonth {
	months := make([]models.YearMonth, 0, len(g.months))
	for ym := range g.months {
		months = append(months, ym)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	return months
}

// Categories returns the categories present in ym in lexicographic order.
func (g *Aggregation) Categories(ym models.YearMonth) []string {
	m, ok := g.months[ym]
	if !ok {
		return nil
	}
	categories := make([]string, 0, len(m.buckets))
	for category := range m.buckets {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// Bucket returns a copy of the bucket for (ym, category).
func (g *Aggregation) Bucket(ym models.YearMonth, category string) (Bucket, bool) {
	m, ok := g.months[ym]
	if !ok {
		return Bucket{}, false
	}
	b, ok := m.buckets[category]
	if !ok {
		return Bucket{}, false
	}
	out := *b
	out.Lines = append([]string(nil), b.Lines...)
	out.Transactions = append([]models.Transaction(nil), b.Transactions...)
	return out, true
}

// SpecialRollup returns the special rollup vector of ym. A month without
// transactions yields a zero vector.
func (g *Aggregation) SpecialRollup(ym models.YearMonth) []decimal.Decimal {
	rollup := make([]decimal.Decimal, g.slots)
	if m, ok := g.months[ym]; ok {
		copy(rollup, m.special)
	}
	return rollup
}

// UncategorizedCount returns how many transactions fell through every rule.
func (g *Aggregation) UncategorizedCount() int {
	return g.uncategorized
}

// UncategorizedCategory returns the name counted by UncategorizedCount.
func (g *Aggregation) UncategorizedCategory() string {
	return g.fallback
}

// Total returns the sum of all bucket totals for category within year.
func (g *Aggregation) Total(year int, category string) decimal.Decimal {
	total := decimal.Zero
	for ym, m := range g.months {
		if ym.Year != year {
			continue
		}
		if b, ok := m.buckets[category]; ok {
			total = total.Add(b.Total)
		}
	}
	return total
}
