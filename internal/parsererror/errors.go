// Package parsererror defines the error types raised by the worksheet
// loading and parsing layers. Data-quality problems are never reported
// through these types; they are degraded to nulls and zeros at the point
// of parsing. Only structural and load-time failures surface as errors.
package parsererror

import "fmt"

// StructureError reports a violation of the grid contract itself, such as
// a grid with no columns. It marks an integration bug, not bad data.
type StructureError struct {
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("grid structure violation: %s", e.Reason)
}

// ParseError reports a failure while reading a worksheet section.
type ParseError struct {
	Section string
	Field   string
	Value   string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Section, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SheetNotFoundError reports that neither the requested month sheet nor
// the previous-month fallback exists in the workbook.
type SheetNotFoundError struct {
	Sheet    string
	Fallback string
}

func (e *SheetNotFoundError) Error() string {
	if e.Fallback != "" {
		return fmt.Sprintf("worksheet %q not found (also tried %q)", e.Sheet, e.Fallback)
	}
	return fmt.Sprintf("worksheet %q not found", e.Sheet)
}

// LoadError reports that the workbook itself could not be obtained,
// whether from a local file or a remote export.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load workbook from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
