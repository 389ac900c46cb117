package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Tinclon/transaction-tracker/internal/models"

	"github.com/charmbracelet/lipgloss"
)

const (
	bannerWidth = 79
	amountWidth = 12
)

// ConsoleRenderer writes the human-readable report. Amounts are right-aligned
// to a fixed width and shown with thousands separators.
type ConsoleRenderer struct {
	Color bool
}

type styleFunc func(string) string

func plain(s string) string { return s }

// palette holds the styles used by the console report.
type palette struct {
	monthBanner   styleFunc
	summaryBanner styleFunc
	date          styleFunc
	category      styleFunc
	uncategorized styleFunc
	marker        styleFunc
	bold          styleFunc
	positive      styleFunc
	negative      styleFunc
	income        styleFunc
	expense       styleFunc
	net           styleFunc
}

func newPalette(w io.Writer, color bool) palette {
	if !color {
		return palette{
			monthBanner: plain, summaryBanner: plain, date: plain, category: plain,
			uncategorized: plain, marker: plain, bold: plain, positive: plain,
			negative: plain, income: plain, expense: plain, net: plain,
		}
	}

	re := lipgloss.NewRenderer(w)
	style := func(fg string, bold bool) styleFunc {
		s := re.NewStyle().Bold(bold)
		if fg != "" {
			s = s.Foreground(lipgloss.Color(fg))
		}
		return func(str string) string { return s.Render(str) }
	}
	return palette{
		monthBanner:   style("3", true),
		summaryBanner: style("2", true),
		date:          style("3", false),
		category:      style("4", false),
		uncategorized: style("1", true),
		marker:        style("5", false),
		bold:          style("", true),
		positive:      style("2", false),
		negative:      style("1", false),
		income:        style("2", true),
		expense:       style("1", true),
		net:           style("8", true),
	}
}

// Render implements Renderer.
func (c *ConsoleRenderer) Render(w io.Writer, r *Report) error {
	out := bufio.NewWriter(w)
	p := newPalette(w, c.Color)

	for _, month := range r.Months {
		c.renderMonth(out, p, r, month)
	}
	c.renderSummary(out, p, r)

	if r.UncategorizedCount > 0 {
		fmt.Fprintf(out, "%s\n", p.uncategorized(fmt.Sprintf("%d transaction(s) in %s", r.UncategorizedCount, r.UncategorizedCategory)))
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (c *ConsoleRenderer) renderMonth(out io.Writer, p palette, r *Report, month MonthReport) {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintf(out, "\n%s\n", p.monthBanner(rule))
	fmt.Fprintf(out, "%s\n", p.monthBanner(banner(p.date(month.Month.String()), len(month.Month.String()))))
	fmt.Fprintf(out, "%s\n\n", p.monthBanner(rule))

	for _, category := range month.Categories {
		name := p.category(category.Name)
		if category.Name == r.UncategorizedCategory {
			name = p.uncategorized(category.Name)
		}
		if category.Special {
			name = p.marker("*") + name + p.marker("*")
		}
		fmt.Fprintf(out, "%s %s\n", p.bold(amount(p, category.Total)), name)
		for _, line := range category.Lines {
			fmt.Fprintf(out, "\t\t%s\n", line)
		}
	}

	if len(month.Special.Slots) == 0 {
		return
	}
	fmt.Fprintf(out, "\nSpecial Categories:%s\n", p.bold(amount(p, month.Special.Total)))
	slots := make([]string, len(month.Special.Slots))
	for i, slot := range month.Special.Slots {
		slots[i] = amount(p, slot)
	}
	fmt.Fprintf(out, "%s\n", strings.Join(slots, "\t"))
}

func (c *ConsoleRenderer) renderSummary(out io.Writer, p palette, r *Report) {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintf(out, "\n%s\n", p.summaryBanner(rule))
	fmt.Fprintf(out, "%s\n", p.summaryBanner(banner("SUMMARY", len("SUMMARY"))))
	fmt.Fprintf(out, "%s\n\n", p.summaryBanner(rule))
	fmt.Fprintf(out, "\t%s\t%s\t%s\n\n",
		p.income(pad("Income")), p.expense(pad("Expense")), p.net(pad("Net")))

	for _, year := range r.Summary {
		for _, month := range year.Months {
			fmt.Fprintf(out, "%s\t%s\n", p.date(month.Month.String()), periodColumns(p, month.Period))
		}
		fmt.Fprintf(out, "\n%s\t%s\n\n\n", p.monthBanner(fmt.Sprintf("%7d", year.Year)), periodColumns(p, year.Total))
	}
}

func periodColumns(p palette, period Period) string {
	return fmt.Sprintf("%s\t%s\t%s",
		amount(p, period.Income), amount(p, period.Expense), p.bold(amount(p, period.Net)))
}

// banner centres title between arrows on a line of '='. width is the visible
// width of title, which may carry style escapes.
func banner(title string, width int) string {
	fill := bannerWidth - width - 8
	if fill < 0 {
		fill = 0
	}
	left := fill / 2
	return strings.Repeat("=", left) + ">   " + title + "   <" + strings.Repeat("=", fill-left)
}

func pad(s string) string {
	return fmt.Sprintf("%*s", amountWidth, s)
}

func amount(p palette, a Amount) string {
	text := models.PadAmount(a.Decimal, amountWidth)
	if a.IsNegative() {
		return p.negative(text)
	}
	return p.positive(text)
}
