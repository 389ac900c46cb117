// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Tinclon/transaction-tracker/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "TRACKER"

// Output formats accepted by report.format.
var reportFormats = []string{"text", "json", "yaml"}

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Statements struct {
		Directory  string `mapstructure:"directory" yaml:"directory"`
		Extension  string `mapstructure:"extension" yaml:"extension"`
		Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
		DateFormat string `mapstructure:"date_format" yaml:"date_format"`
		Workers    int    `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"statements" yaml:"statements"`

	Rules struct {
		// File is the rules YAML; empty selects the built-in rules.
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"rules" yaml:"rules"`

	Report struct {
		Format                string `mapstructure:"format" yaml:"format"`
		Color                 bool   `mapstructure:"color" yaml:"color"`
		TransferCategory      string `mapstructure:"transfer_category" yaml:"transfer_category"`
		UncategorizedCategory string `mapstructure:"uncategorized_category" yaml:"uncategorized_category"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig loads the configuration with hierarchical precedence:
// defaults, then config.yaml from $HOME/.transaction-tracker, .transaction-tracker
// or the working directory, then TRACKER_* environment variables.
func InitializeConfig() (*Config, error) {
	return load("")
}

// InitializeConfigFromFile is like InitializeConfig but reads the given file
// instead of searching for config.yaml. The file must exist.
func InitializeConfigFromFile(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.transaction-tracker")
		v.AddConfigPath(".transaction-tracker")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Statement defaults
	v.SetDefault("statements.directory", "./statements")
	v.SetDefault("statements.extension", ".csv")
	v.SetDefault("statements.delimiter", ",")
	v.SetDefault("statements.date_format", "01/02/2006")
	v.SetDefault("statements.workers", 4)

	// Rules defaults
	v.SetDefault("rules.file", "")

	// Report defaults
	v.SetDefault("report.format", "text")
	v.SetDefault("report.color", true)
	v.SetDefault("report.transfer_category", "Transfer")
	v.SetDefault("report.uncategorized_category", "Uncategorized")
}

// Validate checks the configuration values
func Validate(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate statement delimiter
	if utf8.RuneCountInString(config.Statements.Delimiter) != 1 {
		return fmt.Errorf("statement delimiter must be a single character, got: %q", config.Statements.Delimiter)
	}
	if config.Statements.DateFormat == "" {
		return fmt.Errorf("statements.date_format must not be empty")
	}

	if config.Statements.Workers < 1 || config.Statements.Workers > 64 {
		return fmt.Errorf("statements.workers must be between 1 and 64, got: %d", config.Statements.Workers)
	}

	// Validate report format
	valid := false
	for _, format := range reportFormats {
		if config.Report.Format == format {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid report format: %s (must be one of %s)", config.Report.Format, strings.Join(reportFormats, ", "))
	}

	if config.Report.UncategorizedCategory == "" {
		return fmt.Errorf("report.uncategorized_category must not be empty")
	}

	return nil
}

// Delimiter returns the statement delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.Statements.Delimiter)
	return r
}

// ConfigureLoggingFromConfig creates the application logger from the Config struct
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(strings.ToLower(config.Log.Level), strings.ToLower(config.Log.Format))
}
