package logging

import "sync"

// MockLogger is a mock implementation of the Logger interface for testing.
// Loggers derived through WithField/WithFields/WithError record into the
// same entry list as their parent.
type MockLogger struct {
	sink          *mockSink
	pendingError  error
	pendingFields []Field
}

type mockSink struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogEntry represents a single log entry captured by MockLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// NewMockLogger returns an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{sink: &mockSink{}}
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	if m.sink == nil {
		m.sink = &mockSink{}
	}
	all := make([]Field, 0, len(m.pendingFields)+len(fields))
	all = append(all, m.pendingFields...)
	all = append(all, fields...)

	m.sink.mu.Lock()
	defer m.sink.mu.Unlock()
	m.sink.entries = append(m.sink.entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  all,
		Error:   m.pendingError,
	})
}

// Debug logs a debug-level message with optional fields.
func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }

// Info logs an info-level message with optional fields.
func (m *MockLogger) Info(msg string, fields ...Field) { m.record("INFO", msg, fields) }

// Warn logs a warning-level message with optional fields.
func (m *MockLogger) Warn(msg string, fields ...Field) { m.record("WARN", msg, fields) }

// Error logs an error-level message with optional fields.
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

// WithError returns a new logger with an error field attached.
func (m *MockLogger) WithError(err error) Logger {
	if m.sink == nil {
		m.sink = &mockSink{}
	}
	return &MockLogger{
		sink:          m.sink,
		pendingError:  err,
		pendingFields: m.pendingFields,
	}
}

// WithField returns a new logger with a single field attached.
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

// WithFields returns a new logger with multiple fields attached.
func (m *MockLogger) WithFields(fields ...Field) Logger {
	if m.sink == nil {
		m.sink = &mockSink{}
	}
	all := make([]Field, 0, len(m.pendingFields)+len(fields))
	all = append(all, m.pendingFields...)
	all = append(all, fields...)
	return &MockLogger{
		sink:          m.sink,
		pendingError:  m.pendingError,
		pendingFields: all,
	}
}

// GetEntries returns all captured log entries.
func (m *MockLogger) GetEntries() []LogEntry {
	if m.sink == nil {
		return nil
	}
	m.sink.mu.Lock()
	defer m.sink.mu.Unlock()
	out := make([]LogEntry, len(m.sink.entries))
	copy(out, m.sink.entries)
	return out
}

// GetEntriesByLevel returns all log entries of a specific level.
func (m *MockLogger) GetEntriesByLevel(level string) []LogEntry {
	var entries []LogEntry
	for _, entry := range m.GetEntries() {
		if entry.Level == level {
			entries = append(entries, entry)
		}
	}
	return entries
}

// HasEntry checks if a log entry with the given level and message exists.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, entry := range m.GetEntries() {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}
	return false
}
