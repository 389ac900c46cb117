package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Tinclon/transaction-tracker/internal/aggregator"
	"github.com/Tinclon/transaction-tracker/internal/categorizer"
	"github.com/Tinclon/transaction-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type mapClassifier map[string]string

func (m mapClassifier) Categorize(tx models.Transaction) string {
	if c, ok := m[tx.Description]; ok {
		return c
	}
	return models.CategoryUncategorized
}

func tx(date, description, amount string) models.Transaction {
	d, err := time.Parse(models.DateLayoutISO, date)
	if err != nil {
		panic(err)
	}
	return models.Transaction{Date: d, Description: description, Amount: decimal.RequireFromString(amount), Source: "jan.csv"}
}

func buildReport(t *testing.T) (*Report, *aggregator.Aggregation) {
	t.Helper()
	special, err := categorizer.NewSpecialCategories([]string{"Groceries", "Insurance.*"})
	require.NoError(t, err)

	classifier := mapClassifier{
		"SAFEWAY #123":     "Groceries",
		"SAFEWAY #999":     "Groceries",
		"PAYCHECK DEPOSIT": "Income",
		"TFR-TO SAV":       models.CategoryTransfer,
	}
	agg := aggregator.NewAggregator(classifier, special, nil).Aggregate([]models.Transaction{
		tx("2024-01-20", "SAFEWAY #999", "-1000.00"),
		tx("2024-01-15", "SAFEWAY #123", "-45.67"),
		tx("2024-01-20", "PAYCHECK DEPOSIT", "2000.00"),
		tx("2024-01-21", "TFR-TO SAV", "-500.00"),
		tx("2024-02-02", "MYSTERY SHOP", "-3.50"),
	})
	return Build(agg, aggregator.Summarize(agg, models.CategoryTransfer), special), agg
}

func TestBuild(t *testing.T) {
	r, _ := buildReport(t)

	require.Len(t, r.Months, 2)
	jan := r.Months[0]
	assert.Equal(t, "2024-01", jan.Month.String())

	var names []string
	for _, c := range jan.Categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Groceries", "Income", "Transfer"}, names)

	groceries := jan.Categories[0]
	assert.True(t, groceries.Special)
	assert.Equal(t, "-1045.67", groceries.Total.StringFixed(2))
	require.Len(t, groceries.Lines, 2)
	assert.True(t, strings.HasPrefix(groceries.Lines[0], "2024-01-15"), "lines are sorted")
	assert.False(t, jan.Categories[1].Special)

	assert.Equal(t, "-1045.67", jan.Special.Total.StringFixed(2))
	require.Len(t, jan.Special.Slots, 2)
	assert.True(t, jan.Special.Slots[1].IsZero())

	require.Len(t, r.Summary, 1)
	require.Len(t, r.Summary[0].Months, 2)
	january := r.Summary[0].Months[0]
	assert.Equal(t, "1045.67", january.Expense.StringFixed(2))
	assert.Equal(t, "2000.00", january.Income.StringFixed(2))
	assert.Equal(t, "954.33", january.Net.StringFixed(2))
	assert.Equal(t, "1049.17", r.Summary[0].Total.Expense.StringFixed(2))
	assert.Equal(t, "950.83", r.Summary[0].Total.Net.StringFixed(2))

	assert.Equal(t, 1, r.UncategorizedCount)
	assert.Equal(t, []string{"Groceries", "Insurance.*"}, r.SpecialCategories)
}

func TestConsoleRenderer_Plain(t *testing.T) {
	r, _ := buildReport(t)

	var buf bytes.Buffer
	require.NoError(t, (&ConsoleRenderer{Color: false}).Render(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "================================>   2024-01   <================================")
	assert.Contains(t, out, "================================>   SUMMARY   <================================")
	assert.Contains(t, out, "   -1,045.67 *Groceries*\n")
	assert.Contains(t, out, "    2,000.00 Income\n")
	assert.Contains(t, out, "\t\t2024-01-15      -45.67\tSAFEWAY #123\n")
	assert.Contains(t, out, "\nSpecial Categories:   -1,045.67\n")
	assert.Contains(t, out, "2024-01\t    2,000.00\t    1,045.67\t      954.33\n")
	assert.Contains(t, out, "1 transaction(s) in Uncategorized")
	assert.NotContains(t, out, "\x1b[")

	// Groceries is listed before the 2024-02 banner.
	assert.Less(t, strings.Index(out, "*Groceries*"), strings.Index(out, ">   2024-02   <"))
}

func TestConsoleRenderer_Color(t *testing.T) {
	r, _ := buildReport(t)

	var buf bytes.Buffer
	require.NoError(t, (&ConsoleRenderer{Color: true}).Render(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "SUMMARY")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "1,045.67")
	assert.Contains(t, out, "1 transaction(s) in Uncategorized")
}

func TestJSONRenderer(t *testing.T) {
	r, _ := buildReport(t)

	var buf bytes.Buffer
	require.NoError(t, JSONRenderer{}.Render(&buf, r))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	months := decoded["months"].([]interface{})
	jan := months[0].(map[string]interface{})
	assert.Equal(t, "2024-01", jan["month"])
	groceries := jan["categories"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "-1045.67", groceries["total"])

	summary := decoded["summary"].([]interface{})[0].(map[string]interface{})
	month := summary["months"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "954.33", month["net"])
	assert.EqualValues(t, 1, decoded["uncategorized_count"])
}

func TestYAMLRenderer(t *testing.T) {
	r, _ := buildReport(t)

	var buf bytes.Buffer
	require.NoError(t, YAMLRenderer{}.Render(&buf, r))

	var decoded struct {
		Months []struct {
			Month      string `yaml:"month"`
			Categories []struct {
				Name  string `yaml:"name"`
				Total string `yaml:"total"`
			} `yaml:"categories"`
		} `yaml:"months"`
		Summary []struct {
			Year   int `yaml:"year"`
			Months []struct {
				Month  string `yaml:"month"`
				Income string `yaml:"income"`
			} `yaml:"months"`
		} `yaml:"summary"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Months, 2)
	assert.Equal(t, "2024-01", decoded.Months[0].Month)
	assert.Equal(t, "-1045.67", decoded.Months[0].Categories[0].Total)
	assert.Equal(t, 2024, decoded.Summary[0].Year)
	assert.Equal(t, "2000.00", decoded.Summary[0].Months[0].Income)
}

func TestNewRenderer(t *testing.T) {
	for _, format := range []string{FormatText, FormatJSON, FormatYAML, ""} {
		r, err := NewRenderer(format, false)
		require.NoError(t, err)
		assert.NotNil(t, r)
	}
	_, err := NewRenderer("xml", false)
	assert.Error(t, err)
}

func TestAmount_RoundTrip(t *testing.T) {
	for _, v := range []string{"-45.67", "1954.335", "0.004", "-1234567.891"} {
		original := decimal.RequireFromString(v)
		text, err := NewAmount(original).MarshalText()
		require.NoError(t, err)

		parsed, err := decimal.NewFromString(string(text))
		require.NoError(t, err)
		assert.True(t, parsed.Sub(original).Abs().LessThanOrEqual(decimal.RequireFromString("0.005")), v)
	}
}

func TestExport(t *testing.T) {
	_, agg := buildReport(t)

	rows := ExportRows(agg)
	require.Len(t, rows, 5)
	assert.Equal(t, ExportRow{Date: "2024-01-15", Amount: "-45.67", Category: "Groceries", Description: "SAFEWAY #123", Source: "jan.csv"}, rows[0])
	assert.Equal(t, "Groceries", rows[1].Category)
	assert.Equal(t, "Income", rows[2].Category)

	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsCSV(&buf, rows))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "date,amount,category,description,source", lines[0])
	assert.Equal(t, "2024-01-15,-45.67,Groceries,SAFEWAY #123,jan.csv", lines[1])
}
