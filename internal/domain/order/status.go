package order

import "strings"

// Status is the canonical lifecycle state every caller of the engine
// observes. Raw tokens from either store never escape past the adapters.
type Status string

const (
	StatusCompleted       Status = "completed"
	StatusCancelRequested Status = "cancel_requested"
	StatusCanceled        Status = "canceled"
)

// severity orders statuses from least to most terminal. Used when the
// live store reports a backward transition: the more terminal state wins.
func (s Status) severity() int {
	switch s {
	case StatusCanceled:
		return 2
	case StatusCancelRequested:
		return 1
	default:
		return 0
	}
}

// MoreTerminalThan reports whether s is further along the
// completed → cancel_requested → canceled lifecycle than other.
func (s Status) MoreTerminalThan(other Status) bool {
	return s.severity() > other.severity()
}

// NormalizeStatus maps any raw status token to a canonical Status. It is
// total: every input, including empty and garbage, yields a value.
//
// An order exists in either store only because money was received, so
// the safe default is completed; anything else requires an explicit,
// recognized cancellation token. Legacy spreadsheet rows predate the
// status column and arrive as the empty string.
func NormalizeStatus(raw string) Status {
	token := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case token == "" || token == "DONE" || token == "COMPLETED":
		return StatusCompleted
	case token == "CANCELED" || token == "CANCELLED":
		return StatusCanceled
	case strings.Contains(token, "CANCEL"):
		// Gateway-specific partial/in-progress cancel tokens.
		return StatusCancelRequested
	default:
		return StatusCompleted
	}
}

// ValidStatusFilter reports whether raw is an accepted query filter:
// one of the canonical values, the wildcard "all", or empty.
func ValidStatusFilter(raw string) bool {
	switch raw {
	case "", "all",
		string(StatusCompleted),
		string(StatusCancelRequested),
		string(StatusCanceled):
		return true
	}
	return false
}
