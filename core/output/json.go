package output

import (
	"encoding/json"
	"io"

	"budgetcast/core/engine"
)

// JSONFormatter renders a report as indented JSON.
type JSONFormatter struct{}

// Format implements Formatter
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render implements Formatter
func (f *JSONFormatter) Render(w io.Writer, report *engine.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
