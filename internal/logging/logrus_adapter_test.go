package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedAdapter(level logrus.Level) (Logger, *bytes.Buffer) {
	logrusLogger := logrus.New()
	var buf bytes.Buffer
	logrusLogger.SetOutput(&buf)
	logrusLogger.SetLevel(level)
	logrusLogger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return NewLogrusAdapterFromLogger(logrusLogger), &buf
}

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
	}{
		{name: "debug level with text format", level: "debug", format: "text", expectLevel: logrus.DebugLevel},
		{name: "info level with json format", level: "info", format: "json", expectLevel: logrus.InfoLevel},
		{name: "upper case level", level: "WARN", format: "text", expectLevel: logrus.WarnLevel},
		{name: "invalid level defaults to info", level: "invalid", format: "text", expectLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			require.NotNil(t, logger)

			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok, "logger should be a LogrusAdapter")
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)

			if tt.format == "json" {
				_, ok := adapter.logger.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok, "formatter should be JSONFormatter")
			} else {
				_, ok := adapter.logger.Formatter.(*logrus.TextFormatter)
				assert.True(t, ok, "formatter should be TextFormatter")
			}
		})
	}
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	logger := NewLogrusAdapterFromLogger(nil)
	require.NotNil(t, logger)

	adapter, ok := logger.(*LogrusAdapter)
	require.True(t, ok)
	assert.NotNil(t, adapter.logger)
}

func TestOrDefault(t *testing.T) {
	assert.NotNil(t, OrDefault(nil))

	mock := NewMockLogger()
	assert.Same(t, mock, OrDefault(mock))
}

func TestLogrusAdapter_LoggingMethods(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func(Logger, string, ...Field)
		message string
	}{
		{name: "Debug", logFunc: func(l Logger, msg string, f ...Field) { l.Debug(msg, f...) }, message: "debug message"},
		{name: "Info", logFunc: func(l Logger, msg string, f ...Field) { l.Info(msg, f...) }, message: "info message"},
		{name: "Warn", logFunc: func(l Logger, msg string, f ...Field) { l.Warn(msg, f...) }, message: "warn message"},
		{name: "Error", logFunc: func(l Logger, msg string, f ...Field) { l.Error(msg, f...) }, message: "error message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferedAdapter(logrus.DebugLevel)

			tt.logFunc(logger, tt.message, Field{Key: FieldSource, Value: "march.csv"})

			output := buf.String()
			assert.Contains(t, output, tt.message)
			assert.Contains(t, output, "source=march.csv")
		})
	}
}

func TestLogrusAdapter_ChainedCalls(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.InfoLevel)

	logger.
		WithField(FieldSource, "april.csv").
		WithFields(Field{Key: FieldRow, Value: 7}).
		WithError(errors.New("bad amount")).
		Error("source rejected")

	output := buf.String()
	assert.Contains(t, output, "source rejected")
	assert.Contains(t, output, "april.csv")
	assert.Contains(t, output, "row=7")
	assert.Contains(t, output, "bad amount")
}

func TestLogrusAdapter_LevelFiltering(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.WarnLevel)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConvertFields(t *testing.T) {
	logrusFields := convertFields([]Field{
		{Key: "key1", Value: "value1"},
		{Key: "key2", Value: 42},
	})

	assert.Len(t, logrusFields, 2)
	assert.Equal(t, "value1", logrusFields["key1"])
	assert.Equal(t, 42, logrusFields["key2"])
	assert.Empty(t, convertFields(nil))
}

func TestLogrusAdapter_ImplementsInterface(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
}
