package order

import "time"

// Diagnostic describes a data-quality incident observed while
// reconciling. These never affect the response; they are logged and,
// when a stream is configured, published for offline inspection.
type Diagnostic struct {
	EventType  string
	OrderID    string
	Source     Source
	Detail     string
	ObservedAt time.Time
}

const (
	EventSourceUnavailable = "source_unavailable"
	EventMalformedRecord   = "malformed_record"
	EventStatusRegression  = "status_regression"
	EventWritebackFailed   = "writeback_failed"
)
