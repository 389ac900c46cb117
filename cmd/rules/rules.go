// Package rules implements the rules command and its list and check subcommands
package rules

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Tinclon/transaction-tracker/cmd/root"
	"github.com/Tinclon/transaction-tracker/internal/container"
	"github.com/Tinclon/transaction-tracker/internal/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Cmd represents the rules command
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the categorization rules",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories in evaluation order, overrides and special categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return List(root.AppContainer, cmd.OutOrStdout())
	},
}

var checkCmd = &cobra.Command{
	Use:   "check DESCRIPTION AMOUNT",
	Short: "Show which category a single transaction would get",
	Long: `Categorize one ad-hoc transaction and print the category, the step that
chose it and the override or pattern responsible. Use -- before a negative
amount, e.g. rules check -- "SAFEWAY #12" -45.10`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Check(root.AppContainer, args[0], args[1], cmd.OutOrStdout())
	},
}

func init() {
	Cmd.AddCommand(listCmd, checkCmd)
}

func header(w io.Writer, title string) string {
	return lipgloss.NewRenderer(w).NewStyle().Bold(true).Underline(true).Render(title)
}

// List prints the loaded rule set.
func List(c *container.Container, out io.Writer) error {
	if c == nil {
		return fmt.Errorf("application not initialized")
	}
	rules := c.GetRules()

	fmt.Fprintf(out, "%s (%s)\n", header(out, "Categories"), rules.Source)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRIORITY\tCATEGORY\tPATTERNS\tCONSTRAINT")
	for _, r := range rules.Catalog.Rules() {
		patterns := make([]string, len(r.Patterns))
		for i, p := range r.Patterns {
			patterns[i] = p.String()
		}
		constraint := "-"
		if r.Constraint != nil {
			constraint = r.Constraint.String()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.Priority, r.Name, strings.Join(patterns, " | "), constraint)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s\n", header(out, "Overrides"))
	tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONTAINS\tAMOUNT\tCATEGORY\tNOTE")
	for _, o := range rules.Overrides {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.Contains, o.Amount.StringFixed(2), o.Category, o.Note)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s\n", header(out, "Special categories"))
	for i, label := range rules.Special.Labels() {
		fmt.Fprintf(out, "%2d  %s\n", i+1, label)
	}
	return nil
}

// Check categorizes a single transaction described on the command line.
func Check(c *container.Container, description, amount string, out io.Writer) error {
	if c == nil {
		return fmt.Errorf("application not initialized")
	}
	value, err := models.ParseAmount(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	tx := models.Transaction{
		Date:        time.Now(),
		Description: description,
		Amount:      value,
	}
	decision := c.GetCategorizer().Explain(tx)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Description:\t%s\n", description)
	fmt.Fprintf(tw, "Amount:\t%s\n", models.FormatAmount(value))
	fmt.Fprintf(tw, "Category:\t%s\n", decision.Category)
	fmt.Fprintf(tw, "Decided by:\t%s\n", decision.Strategy)
	if decision.Detail != "" {
		fmt.Fprintf(tw, "Matched:\t%s\n", decision.Detail)
	}
	if slot, ok := c.GetRules().Special.Slot(decision.Category); ok {
		fmt.Fprintf(tw, "Special slot:\t%d (%s)\n", slot+1, c.GetRules().Special.Labels()[slot])
	}
	return tw.Flush()
}
