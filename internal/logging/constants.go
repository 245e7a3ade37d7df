package logging

// Standardized field names for structured logging, shared across the
// application so log output stays filterable.
const (
	FieldSheet      = "sheet"
	FieldCompany    = "company"
	FieldRow        = "row"
	FieldSurname    = "surname"
	FieldCount      = "count"
	FieldFile       = "file_path"
	FieldSource     = "source"
	FieldOutputFile = "output_file"
	FieldReason     = "reason"
)
