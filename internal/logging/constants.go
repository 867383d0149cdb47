package logging

// Standardized field names for structured logging.
const (
	FieldComponent     = "component"
	FieldOperation     = "operation"
	FieldTransactionID = "transaction_id"
	FieldCategory      = "category"
	FieldAmount        = "amount"
	FieldMonth         = "month"
	FieldToday         = "today"
	FieldSurplus       = "surplus"
	FieldMonthlyLimit  = "monthly_limit"
	FieldCount         = "count"
	FieldStrategy      = "strategy"
	FieldKeyword       = "keyword"
	FieldFile          = "file_path"
	FieldDatabase      = "database"
	FieldDelimiter     = "delimiter"
	FieldBackend       = "backend"
	FieldExchange      = "exchange"
	FieldQueue         = "queue"
	FieldDuration      = "duration_ms"
)
