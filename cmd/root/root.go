// Package root contains the root command for the application
package root

import (
	"fmt"

	"github.com/Tinclon/transaction-tracker/internal/config"
	"github.com/Tinclon/transaction-tracker/internal/container"
	"github.com/Tinclon/transaction-tracker/internal/logging"

	"github.com/spf13/cobra"
)

// GlobalFlags are the flags shared by every command.
type GlobalFlags struct {
	ConfigFile string
	RulesFile  string
	LogLevel   string
}

var (
	// Flags holds the parsed persistent flags
	Flags = GlobalFlags{}

	// AppContainer is built before any subcommand runs
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "transaction-tracker",
		Short: "Categorize bank statement transactions and report monthly and yearly totals.",
		Long: `transaction-tracker reads exported bank and credit card statements,
assigns every transaction a spending category from an ordered rule set and
reports category totals per month along with income, expense and net per
month and year.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

func init() {
	Cmd.PersistentFlags().StringVar(&Flags.ConfigFile, "config", "", "Config file (default: search for config.yaml)")
	Cmd.PersistentFlags().StringVarP(&Flags.RulesFile, "rules", "r", "", "Rules file (default: built-in rules)")
	Cmd.PersistentFlags().StringVar(&Flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// setup loads environment, configuration and dependencies.
func setup(cmd *cobra.Command, args []string) error {
	if _, err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := LoadConfig(Flags)
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	AppContainer = c
	return nil
}

// LoadConfig reads the configuration and applies the global flag overrides.
func LoadConfig(flags GlobalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.ConfigFile != "" {
		cfg, err = config.InitializeConfigFromFile(flags.ConfigFile)
	} else {
		cfg, err = config.InitializeConfig()
	}
	if err != nil {
		return nil, err
	}

	if flags.RulesFile != "" {
		cfg.Rules.File = flags.RulesFile
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Logger returns the application logger, or a default one before setup ran.
func Logger() logging.Logger {
	if AppContainer == nil {
		return logging.OrDefault(nil)
	}
	return AppContainer.GetLogger()
}
