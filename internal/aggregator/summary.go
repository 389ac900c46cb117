package aggregator

import (
	"sort"

	"github.com/Tinclon/transaction-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// Totals are the income and expense figures of a period. Debit and Credit are
// magnitudes; Net is Credit minus Debit and keeps its sign.
type Totals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
	Net    decimal.Decimal
}

func (t Totals) add(other Totals) Totals {
	return Totals{
		Debit:  t.Debit.Add(other.Debit),
		Credit: t.Credit.Add(other.Credit),
		Net:    t.Net.Add(other.Net),
	}
}

// MonthTotals are the totals of one month.
type MonthTotals struct {
	YearMonth models.YearMonth
	Totals
}

// YearTotals are the totals of one year and of each of its months.
type YearTotals struct {
	Year   int
	Months []MonthTotals
	Totals
}

// Summary is the year-ordered summary of an aggregation.
type Summary struct {
	Years []YearTotals
}

// Summarize derives monthly and yearly totals from the bucket totals.
// Buckets of excludedCategory (money moved between own accounts) are skipped;
// every month of the aggregation still appears, possibly with zero totals.
// A negative bucket total counts as debit, a positive one as credit.
func Summarize(agg *Aggregation, excludedCategory string) Summary {
	byYear := make(map[int]*YearTotals)

	for _, ym := range agg.Months() {
		month := MonthTotals{YearMonth: ym}
		for _, category := range agg.Categories(ym) {
			if category == excludedCategory {
				continue
			}
			total := agg.months[ym].buckets[category].Total
			switch {
			case total.IsNegative():
				month.Debit = month.Debit.Add(total.Abs())
			case total.IsPositive():
				month.Credit = month.Credit.Add(total)
			}
		}
		month.Net = month.Credit.Sub(month.Debit)

		year, ok := byYear[ym.Year]
		if !ok {
			year = &YearTotals{Year: ym.Year}
			byYear[ym.Year] = year
		}
		year.Months = append(year.Months, month)
		year.Totals = year.Totals.add(month.Totals)
	}

	summary := Summary{Years: make([]YearTotals, 0, len(byYear))}
	for _, year := range byYear {
		summary.Years = append(summary.Years, *year)
	}
	sort.Slice(summary.Years, func(i, j int) bool { return summary.Years[i].Year < summary.Years[j].Year })
	return summary
}
