package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Status
	}{
		{name: "done token", raw: "DONE", want: StatusCompleted},
		{name: "completed token", raw: "COMPLETED", want: StatusCompleted},
		{name: "lowercase completed", raw: "completed", want: StatusCompleted},
		{name: "padded done", raw: "  done  ", want: StatusCompleted},
		{name: "empty legacy row", raw: "", want: StatusCompleted},
		{name: "whitespace only", raw: "   ", want: StatusCompleted},
		{name: "canceled", raw: "CANCELED", want: StatusCanceled},
		{name: "british spelling", raw: "cancelled", want: StatusCanceled},
		{name: "partial cancel token", raw: "PARTIAL_CANCELED", want: StatusCancelRequested},
		{name: "cancel in progress", raw: "CANCEL_REQUESTED", want: StatusCancelRequested},
		{name: "gateway cancel pending", raw: "WAITING_FOR_CANCEL", want: StatusCancelRequested},
		{name: "unknown token defaults to completed", raw: "READY", want: StatusCompleted},
		{name: "garbage", raw: "!!@#$%", want: StatusCompleted},
		{name: "korean text", raw: "환불요청", want: StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStatus(tt.raw))
		})
	}
}

// Only the exact canceled spellings mean canceled; any other token
// containing CANCEL is an in-progress signal. Pin the priority order.
func TestNormalizeStatus_PriorityOrder(t *testing.T) {
	// Exact canceled spellings win over the substring rule.
	assert.Equal(t, StatusCanceled, NormalizeStatus("CANCELED"))
	assert.Equal(t, StatusCanceled, NormalizeStatus("CANCELLED"))
	// Everything else containing CANCEL is in-progress.
	assert.Equal(t, StatusCancelRequested, NormalizeStatus("CANCEL"))
	assert.Equal(t, StatusCancelRequested, NormalizeStatus("PARTIAL_CANCEL"))
}

// Totality: whatever comes in, one of the three canonical values comes
// out and nothing panics.
func TestNormalizeStatus_Total(t *testing.T) {
	inputs := []string{
		"", " ", "\t\n", "DONE", "dOnE", "x", "CANCELCANCEL",
		"\x00\x01", "ＣＡＮＣＥＬ", "0", "-1", "null", "undefined",
	}
	valid := map[Status]bool{
		StatusCompleted:       true,
		StatusCancelRequested: true,
		StatusCanceled:        true,
	}
	for _, in := range inputs {
		got := NormalizeStatus(in)
		assert.True(t, valid[got], "input %q produced %q", in, got)
	}
}

func TestValidStatusFilter(t *testing.T) {
	assert.True(t, ValidStatusFilter(""))
	assert.True(t, ValidStatusFilter("all"))
	assert.True(t, ValidStatusFilter("completed"))
	assert.True(t, ValidStatusFilter("cancel_requested"))
	assert.True(t, ValidStatusFilter("canceled"))

	assert.False(t, ValidStatusFilter("DONE"))
	assert.False(t, ValidStatusFilter("refunded"))
	assert.False(t, ValidStatusFilter("*"))
}

func TestStatus_MoreTerminalThan(t *testing.T) {
	assert.True(t, StatusCanceled.MoreTerminalThan(StatusCompleted))
	assert.True(t, StatusCanceled.MoreTerminalThan(StatusCancelRequested))
	assert.True(t, StatusCancelRequested.MoreTerminalThan(StatusCompleted))

	assert.False(t, StatusCompleted.MoreTerminalThan(StatusCanceled))
	assert.False(t, StatusCanceled.MoreTerminalThan(StatusCanceled))
}
