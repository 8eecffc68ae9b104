package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/owennam/JSHA-master-sub000/internal/domain/order"
)

func setOf(recs ...domain.Record) *RecordSet {
	set := NewRecordSet()
	for _, r := range recs {
		set.Put(r)
	}
	return set
}

func TestAssemble_NewestFirst(t *testing.T) {
	set := setOf(
		domain.Record{OrderID: "t1", CreatedAt: "2025-01-01 09:00:00", Status: domain.StatusCompleted},
		domain.Record{OrderID: "t3", CreatedAt: "2025-03-01 09:00:00", Status: domain.StatusCompleted},
		domain.Record{OrderID: "t2", CreatedAt: "2025-02-01 09:00:00", Status: domain.StatusCompleted},
	)

	got := Assemble(set, "all")
	require.Len(t, got, 3)
	assert.Equal(t, "t3", got[0].OrderID)
	assert.Equal(t, "t2", got[1].OrderID)
	assert.Equal(t, "t1", got[2].OrderID)
}

func TestAssemble_UnparsableTimestampsSortLast(t *testing.T) {
	set := setOf(
		domain.Record{OrderID: "junk", CreatedAt: "not a date", Status: domain.StatusCompleted},
		domain.Record{OrderID: "new", CreatedAt: "2025-03-01", Status: domain.StatusCompleted},
		domain.Record{OrderID: "old", CreatedAt: "2020-01-01", Status: domain.StatusCompleted},
	)

	got := Assemble(set, "")
	require.Len(t, got, 3)
	assert.Equal(t, "junk", got[2].OrderID)
}

// Ties keep encounter order.
func TestAssemble_StableOnEqualTimestamps(t *testing.T) {
	set := setOf(
		domain.Record{OrderID: "first", CreatedAt: "2025-01-01", Status: domain.StatusCompleted},
		domain.Record{OrderID: "second", CreatedAt: "2025-01-01", Status: domain.StatusCompleted},
		domain.Record{OrderID: "third", CreatedAt: "2025-01-01", Status: domain.StatusCompleted},
	)

	got := Assemble(set, "all")
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].OrderID)
	assert.Equal(t, "second", got[1].OrderID)
	assert.Equal(t, "third", got[2].OrderID)
}

func TestAssemble_StatusFilter(t *testing.T) {
	set := setOf(
		domain.Record{OrderID: "a", CreatedAt: "2025-01-01", Status: domain.StatusCompleted},
		domain.Record{OrderID: "b", CreatedAt: "2025-01-02", Status: domain.StatusCanceled},
		domain.Record{OrderID: "c", CreatedAt: "2025-01-03", Status: domain.StatusCancelRequested},
	)

	canceled := Assemble(set, "canceled")
	require.Len(t, canceled, 1)
	assert.Equal(t, "b", canceled[0].OrderID)

	requested := Assemble(set, "cancel_requested")
	require.Len(t, requested, 1)
	assert.Equal(t, "c", requested[0].OrderID)

	// Wildcard and empty both mean no filter.
	assert.Len(t, Assemble(set, "all"), 3)
	assert.Len(t, Assemble(set, ""), 3)
}

func TestAssemble_EmptySet(t *testing.T) {
	assert.Empty(t, Assemble(NewRecordSet(), "all"))
}
