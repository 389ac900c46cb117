package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/Tinclon/transaction-tracker/internal/aggregator"
	"github.com/Tinclon/transaction-tracker/internal/models"

	"github.com/gocarina/gocsv"
)

// ExportRow is one categorized transaction in the CSV export.
type ExportRow struct {
	Date        string `csv:"date"`
	Amount      string `csv:"amount"`
	Category    string `csv:"category"`
	Description string `csv:"description"`
	Source      string `csv:"source"`
}

// ExportRows flattens every bucket into rows ordered by date, category and
// description.
func ExportRows(agg *aggregator.Aggregation) []ExportRow {
	var rows []ExportRow
	for _, ym := range agg.Months() {
		for _, category := range agg.Categories(ym) {
			bucket, _ := agg.Bucket(ym, category)
			for _, tx := range bucket.Transactions {
				rows = append(rows, ExportRow{
					Date:        tx.Date.Format(models.DateLayoutISO),
					Amount:      tx.Amount.StringFixed(2),
					Category:    category,
					Description: tx.Description,
					Source:      tx.Source,
				})
			}
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Description < rows[j].Description
	})
	return rows
}

// WriteTransactionsCSV writes rows with a header line.
func WriteTransactionsCSV(w io.Writer, rows []ExportRow) error {
	if rows == nil {
		rows = []ExportRow{}
	}
	csvWriter := csv.NewWriter(w)
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
