// Package parsererror defines the error types reported while reading statements
// and loading rule configuration.
package parsererror

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord is wrapped by every MalformedRecordError.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrDuplicateCategory reports two catalog rules with the same name.
	ErrDuplicateCategory = errors.New("duplicate category")
	// ErrInvalidPattern reports a pattern that is not a valid regular expression.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrInvalidConstraint reports an empty or unknown constraint definition.
	ErrInvalidConstraint = errors.New("invalid constraint")
)

// MalformedRecordError represents a raw statement row whose date or amount
// could not be parsed.
type MalformedRecordError struct {
	Source string
	Row    int // 1-based; 0 when unknown
	Field  string
	Value  string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	loc := e.Source
	if e.Row > 0 {
		loc = fmt.Sprintf("%s row %d", e.Source, e.Row)
	}
	if loc == "" {
		loc = "record"
	}
	return fmt.Sprintf("%s: failed to parse %s='%s': %v", loc, e.Field, e.Value, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *MalformedRecordError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedRecord}
	}
	return []error{ErrMalformedRecord, e.Err}
}

// SourceError represents a statement source whose whole contribution was discarded.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("statement source %s rejected: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid rule configuration entry.
type ConfigError struct {
	File   string
	Rule   string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	file := e.File
	if file == "" {
		file = "rules"
	}
	msg := fmt.Sprintf("invalid rule configuration in %s", file)
	if e.Rule != "" {
		msg += fmt.Sprintf(" (rule %q)", e.Rule)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
