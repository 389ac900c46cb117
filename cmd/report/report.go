// Package report implements the report command
package report

import (
	"context"
	"fmt"
	"io"

	"github.com/Tinclon/transaction-tracker/cmd/root"
	"github.com/Tinclon/transaction-tracker/internal/aggregator"
	"github.com/Tinclon/transaction-tracker/internal/container"
	"github.com/Tinclon/transaction-tracker/internal/fileutils"
	"github.com/Tinclon/transaction-tracker/internal/logging"
	"github.com/Tinclon/transaction-tracker/internal/models"
	"github.com/Tinclon/transaction-tracker/internal/report"
	"github.com/Tinclon/transaction-tracker/internal/statement"

	"github.com/spf13/cobra"
)

// Options are the report command flags.
type Options struct {
	Directory string
	Format    string
	NoColor   bool
	Export    string
	Strict    bool
}

var opts Options

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Categorize all statements and print the monthly report",
	Long: `Read every statement file in the statements directory, remove rows that
appear in more than one export, categorize each transaction and print the
per-month category totals followed by the income/expense summary.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.AppContainer, opts, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&opts.Directory, "dir", "d", "", "Statements directory (default from config)")
	Cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json or yaml (default from config)")
	Cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Disable coloured output")
	Cmd.Flags().StringVarP(&opts.Export, "export", "e", "", "Also write categorized transactions to this CSV file")
	Cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail without output when any statement is rejected")
}

// Run produces the report for the configured statements and writes it to out.
func Run(ctx context.Context, c *container.Container, o Options, out io.Writer) error {
	if c == nil {
		return fmt.Errorf("application not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := c.GetConfig()
	logger := c.GetLogger()

	dir := o.Directory
	if dir == "" {
		dir = cfg.Statements.Directory
	}
	format := o.Format
	if format == "" {
		format = cfg.Report.Format
	}
	renderer, err := report.NewRenderer(format, cfg.Report.Color && !o.NoColor)
	if err != nil {
		return err
	}

	sources, err := statement.DiscoverSources(dir, cfg.Statements.Extension, cfg.Delimiter())
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		logger.Warn("No statement files found",
			logging.Field{Key: "directory", Value: dir},
			logging.Field{Key: "extension", Value: cfg.Statements.Extension})
	}

	result, loadErr := c.GetLoader().Load(ctx, sources)
	if loadErr != nil {
		if result == nil {
			return loadErr
		}
		if o.Strict {
			return fmt.Errorf("%d statement source(s) rejected: %w", len(result.Failed), loadErr)
		}
		logger.Warn("Reporting without rejected statement sources",
			logging.Field{Key: "failed_sources", Value: len(result.Failed)})
	}

	agg := c.GetAggregator().Aggregate(result.Transactions)
	summary := aggregator.Summarize(agg, cfg.Report.TransferCategory)
	rep := report.Build(agg, summary, c.GetRules().Special)

	if o.Export != "" {
		if err := exportCSV(o.Export, agg); err != nil {
			return err
		}
		logger.Info("Exported categorized transactions",
			logging.Field{Key: logging.FieldFile, Value: o.Export},
			logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)})
	}

	if agg.UncategorizedCount() > 0 {
		logger.Warn("Some transactions matched no rule",
			logging.Field{Key: logging.FieldCount, Value: agg.UncategorizedCount()},
			logging.Field{Key: logging.FieldCategory, Value: agg.UncategorizedCategory()})
	}

	return renderer.Render(out, rep)
}

func exportCSV(path string, agg *aggregator.Aggregation) error {
	file, err := fileutils.CreateFile(path, models.PermissionReportFile)
	if err != nil {
		return fmt.Errorf("error creating export file: %w", err)
	}
	if err := report.WriteTransactionsCSV(file, report.ExportRows(agg)); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
