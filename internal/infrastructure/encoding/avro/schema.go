package avro

// DiagnosticEventSchema is the Avro schema for reconciliation
// diagnostics. All fields are plain strings except the observation
// time, so downstream consumers never deal with unions.
const DiagnosticEventSchema = `{
	"type": "record",
	"name": "ReconciliationDiagnostic",
	"namespace": "com.jsha.orderledger",
	"fields": [
		{"name": "event_type", "type": "string"},
		{"name": "order_id", "type": "string"},
		{"name": "source", "type": "string"},
		{"name": "detail", "type": "string"},
		{"name": "observed_at", "type": "long", "logicalType": "timestamp-millis"}
	]
}`
