package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Renderer writes a report to w.
type Renderer interface {
	Render(w io.Writer, r *Report) error
}

// NewRenderer returns the renderer for format. color only affects text output.
func NewRenderer(format string, color bool) (Renderer, error) {
	switch format {
	case FormatText, "":
		return &ConsoleRenderer{Color: color}, nil
	case FormatJSON:
		return JSONRenderer{}, nil
	case FormatYAML:
		return YAMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// JSONRenderer writes indented JSON.
type JSONRenderer struct{}

// Render implements Renderer.
func (JSONRenderer) Render(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return nil
}

// YAMLRenderer writes YAML.
type YAMLRenderer struct{}

// Render implements Renderer.
func (YAMLRenderer) Render(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return nil
}
