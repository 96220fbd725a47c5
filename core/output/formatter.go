// Package output renders engine reports for humans and machines.
package output

import (
	"io"

	"budgetcast/core/engine"
	"budgetcast/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the report
	Render(w io.Writer, report *engine.Report) error
}

// New returns the formatter for a format name.
func New(format string) (Formatter, error) {
	switch Format(format) {
	case FormatCLI, "":
		return &CLIFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	}
	return nil, errors.Newf(errors.TypeInput, "unknown output format: %s", format)
}
