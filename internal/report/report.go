// Package report turns an aggregation into a month-ordered report and renders
// it as coloured console text, JSON or YAML.
package report

import (
	"encoding/json"
	"sort"

	"github.com/Tinclon/transaction-tracker/internal/aggregator"
	"github.com/Tinclon/transaction-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// Amount is a decimal that serializes rounded to two fraction digits.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// MarshalText renders the amount as e.g. "-45.67".
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.StringFixed(2)), nil
}

// MarshalJSON renders the amount as a JSON string, e.g. "-45.67".
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.StringFixed(2))
}

// SpecialSet identifies budget-tracked categories.
type SpecialSet interface {
	Slot(category string) (int, bool)
	Labels() []string
}

// Report is the finished, presentation-independent report.
type Report struct {
	Months            []MonthReport `json:"months" yaml:"months"`
	Summary           []YearReport  `json:"summary" yaml:"summary"`
	SpecialCategories []string      `json:"special_categories,omitempty" yaml:"special_categories,omitempty"`
	// UncategorizedCount is the number of transactions no rule matched.
	UncategorizedCount    int    `json:"uncategorized_count" yaml:"uncategorized_count"`
	UncategorizedCategory string `json:"uncategorized_category" yaml:"uncategorized_category"`
}

// MonthReport lists the categories of one month.
type MonthReport struct {
	Month      models.YearMonth `json:"month" yaml:"month"`
	Categories []CategoryReport `json:"categories" yaml:"categories"`
	Special    SpecialRollup    `json:"special" yaml:"special"`
}

// CategoryReport is one bucket of a month.
type CategoryReport struct {
	Name    string   `json:"name" yaml:"name"`
	Total   Amount   `json:"total" yaml:"total"`
	Special bool     `json:"special,omitempty" yaml:"special,omitempty"`
	Lines   []string `json:"lines" yaml:"lines"`
}

// SpecialRollup is the budget-tracked total of a month and its per-slot amounts.
type SpecialRollup struct {
	Total Amount   `json:"total" yaml:"total"`
	Slots []Amount `json:"slots" yaml:"slots"`
}

// Period holds income, expense and net of a month or year.
type Period struct {
	Income  Amount `json:"income" yaml:"income"`
	Expense Amount `json:"expense" yaml:"expense"`
	Net     Amount `json:"net" yaml:"net"`
}

// MonthPeriod is a summary row of one month.
type MonthPeriod struct {
	Month  models.YearMonth `json:"month" yaml:"month"`
	Period `yaml:",inline"`
}

// YearReport is a year's summary rows followed by the year total.
type YearReport struct {
	Year   int           `json:"year" yaml:"year"`
	Months []MonthPeriod `json:"months" yaml:"months"`
	Total  Period        `json:"total" yaml:"total"`
}

// Build assembles the report. special may be nil.
func Build(agg *aggregator.Aggregation, summary aggregator.Summary, special SpecialSet) *Report {
	r := &Report{
		UncategorizedCount:    agg.UncategorizedCount(),
		UncategorizedCategory: agg.UncategorizedCategory(),
	}
	if special != nil {
		r.SpecialCategories = special.Labels()
	}

	for _, ym := range agg.Months() {
		month := MonthReport{Month: ym}
		for _, category := range agg.Categories(ym) {
			bucket, _ := agg.Bucket(ym, category)
			lines := bucket.Lines
			sort.Strings(lines)

			isSpecial := false
			if special != nil {
				_, isSpecial = special.Slot(category)
			}
			month.Categories = append(month.Categories, CategoryReport{
				Name:    category,
				Total:   NewAmount(bucket.Total),
				Special: isSpecial,
				Lines:   lines,
			})
		}

		rollup := agg.SpecialRollup(ym)
		month.Special.Total = NewAmount(decimal.Sum(decimal.Zero, rollup...))
		month.Special.Slots = make([]Amount, len(rollup))
		for i, amount := range rollup {
			month.Special.Slots[i] = NewAmount(amount)
		}
		r.Months = append(r.Months, month)
	}

	for _, year := range summary.Years {
		yr := YearReport{Year: year.Year, Total: periodOf(year.Totals)}
		for _, m := range year.Months {
			yr.Months = append(yr.Months, MonthPeriod{Month: m.YearMonth, Period: periodOf(m.Totals)})
		}
		r.Summary = append(r.Summary, yr)
	}

	return r
}

func periodOf(t aggregator.Totals) Period {
	return Period{
		Income:  NewAmount(t.Credit),
		Expense: NewAmount(t.Debit),
		Net:     NewAmount(t.Net),
	}
}
