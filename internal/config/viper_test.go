package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty working directory and home.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	for _, key := range []string{
		"TRACKER_LOG_LEVEL", "TRACKER_LOG_FORMAT",
		"TRACKER_STATEMENTS_DIRECTORY", "TRACKER_STATEMENTS_EXTENSION",
		"TRACKER_STATEMENTS_DELIMITER", "TRACKER_STATEMENTS_DATE_FORMAT",
		"TRACKER_STATEMENTS_WORKERS", "TRACKER_RULES_FILE",
		"TRACKER_REPORT_FORMAT", "TRACKER_REPORT_COLOR",
		"TRACKER_REPORT_TRANSFER_CATEGORY", "TRACKER_REPORT_UNCATEGORIZED_CATEGORY",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func TestInitializeConfig_Defaults(t *testing.T) {
	isolate(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "./statements", config.Statements.Directory)
	assert.Equal(t, ".csv", config.Statements.Extension)
	assert.Equal(t, ",", config.Statements.Delimiter)
	assert.Equal(t, "01/02/2006", config.Statements.DateFormat)
	assert.Equal(t, 4, config.Statements.Workers)
	assert.Equal(t, "", config.Rules.File)
	assert.Equal(t, "text", config.Report.Format)
	assert.True(t, config.Report.Color)
	assert.Equal(t, "Transfer", config.Report.TransferCategory)
	assert.Equal(t, "Uncategorized", config.Report.UncategorizedCategory)
	assert.Equal(t, ',', config.Delimiter())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)

	t.Setenv("TRACKER_LOG_LEVEL", "debug")
	t.Setenv("TRACKER_LOG_FORMAT", "json")
	t.Setenv("TRACKER_STATEMENTS_DELIMITER", ";")
	t.Setenv("TRACKER_STATEMENTS_WORKERS", "8")
	t.Setenv("TRACKER_RULES_FILE", "rules.yaml")
	t.Setenv("TRACKER_REPORT_FORMAT", "json")
	t.Setenv("TRACKER_REPORT_COLOR", "false")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ';', config.Delimiter())
	assert.Equal(t, 8, config.Statements.Workers)
	assert.Equal(t, "rules.yaml", config.Rules.File)
	assert.Equal(t, "json", config.Report.Format)
	assert.False(t, config.Report.Color)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	dir := isolate(t)

	content := `
log:
  level: warn
statements:
  directory: /data/statements
  workers: 2
report:
  format: yaml
  transfer_category: Internal
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "/data/statements", config.Statements.Directory)
	assert.Equal(t, 2, config.Statements.Workers)
	assert.Equal(t, "yaml", config.Report.Format)
	assert.Equal(t, "Internal", config.Report.TransferCategory)
	// Unset keys keep their defaults.
	assert.Equal(t, ".csv", config.Statements.Extension)
}

func TestInitializeConfig_EnvironmentOverridesFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log:\n  level: warn\n"), 0600))
	t.Setenv("TRACKER_LOG_LEVEL", "error")

	config, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "error", config.Log.Level)
}

func TestInitializeConfigFromFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("report:\n  color: false\n"), 0600))

	config, err := InitializeConfigFromFile(path)
	require.NoError(t, err)
	assert.False(t, config.Report.Color)

	_, err = InitializeConfigFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"empty delimiter", func(c *Config) { c.Statements.Delimiter = "" }, "single character"},
		{"long delimiter", func(c *Config) { c.Statements.Delimiter = ",;" }, "single character"},
		{"no workers", func(c *Config) { c.Statements.Workers = 0 }, "between 1 and 64"},
		{"too many workers", func(c *Config) { c.Statements.Workers = 65 }, "between 1 and 64"},
		{"report format", func(c *Config) { c.Report.Format = "html" }, "invalid report format"},
		{"date format", func(c *Config) { c.Statements.DateFormat = "" }, "date_format"},
		{"uncategorized", func(c *Config) { c.Report.UncategorizedCategory = "" }, "uncategorized_category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modify(config)
			err := Validate(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	assert.NoError(t, Validate(validConfig()))
}

func TestLoadEnv(t *testing.T) {
	dir := isolate(t)

	loaded, err := LoadEnv()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TRACKER_REPORT_FORMAT=yaml\n"), 0600))
	t.Setenv("TRACKER_REPORT_FORMAT", "")
	require.NoError(t, os.Unsetenv("TRACKER_REPORT_FORMAT"))

	loaded, err = LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", loaded)
	assert.Equal(t, "yaml", os.Getenv("TRACKER_REPORT_FORMAT"))
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	config := validConfig()
	config.Log.Level = "DEBUG"
	assert.NotNil(t, ConfigureLoggingFromConfig(config))
}

func validConfig() *Config {
	c := &Config{}
	c.Log.Level = "info"
	c.Log.Format = "text"
	c.Statements.Directory = "./statements"
	c.Statements.Extension = ".csv"
	c.Statements.Delimiter = ","
	c.Statements.DateFormat = "01/02/2006"
	c.Statements.Workers = 4
	c.Report.Format = "text"
	c.Report.TransferCategory = "Transfer"
	c.Report.UncategorizedCategory = "Uncategorized"
	return c
}
