package logging

// Standardized field names for structured logging.
const (
	FieldSource      = "source"
	FieldRow         = "row"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldYearMonth   = "year_month"
	FieldRule        = "rule"
	FieldCount       = "count"
	FieldError       = "error"
	FieldFile        = "file_path"
	FieldFormat      = "format"
	FieldDuration    = "duration_ms"
)
