// Package quality - Structured data-quality warning channel
// Recoverable input defects never abort a computation; the engine
// substitutes a documented safe default and records one of these so the
// caller can surface a data-quality alert.
package quality

import "fmt"

// Code identifies the category of data-quality defect
type Code string

const (
	// CodeUnknownFrequency means an unrecognized billing frequency fell
	// back to monthly
	CodeUnknownFrequency Code = "unknown_frequency"

	// CodeNegativePrice means a negative or non-numeric price clamped to 0
	CodeNegativePrice Code = "negative_price"

	// CodeMissingAnchor means a subscription had no anchor date
	CodeMissingAnchor Code = "missing_anchor"

	// CodeNegativeAllocation means a negative weekly allocation clamped to 0
	CodeNegativeAllocation Code = "negative_allocation"

	// CodeInvalidPriority means a priority outside 1-10 normalized to 0
	CodeInvalidPriority Code = "invalid_priority"
)

// Warning records one substitution the engine made for malformed input.
type Warning struct {
	// Code categorizes the defect
	Code Code `json:"code"`

	// SubjectID identifies the subscription or category affected
	SubjectID string `json:"subject_id,omitempty"`

	// Field names the offending input field
	Field string `json:"field,omitempty"`

	// Message describes the defect and the substituted default
	Message string `json:"message"`
}

// String implements fmt.Stringer
func (w Warning) String() string {
	if w.SubjectID != "" {
		return fmt.Sprintf("[%s] %s: %s", w.Code, w.SubjectID, w.Message)
	}
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// Newf builds a warning with a formatted message
func Newf(code Code, subjectID, field, format string, args ...interface{}) Warning {
	return Warning{
		Code:      code,
		SubjectID: subjectID,
		Field:     field,
		Message:   fmt.Sprintf(format, args...),
	}
}
