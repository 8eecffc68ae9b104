package reconcile

import (
	"sort"

	domain "github.com/owennam/JSHA-master-sub000/internal/domain/order"
)

// StatusFilterAll is the wildcard filter token meaning "no filter".
const StatusFilterAll = "all"

// Assemble turns the merged set into the list returned to callers:
// optionally filtered by canonical status, sorted newest first. Records
// whose timestamp could not be parsed carry the 0 sentinel and end up
// last; ties keep encounter order.
func Assemble(set *RecordSet, statusFilter string) []domain.Record {
	records := set.Records()

	if statusFilter != "" && statusFilter != StatusFilterAll {
		filtered := records[:0]
		for _, rec := range records {
			if string(rec.Status) == statusFilter {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	// Parse once per record; the keys must travel with the records
	// through the sort.
	type keyed struct {
		rec    domain.Record
		millis int64
	}
	items := make([]keyed, len(records))
	for i, rec := range records {
		items[i] = keyed{rec: rec, millis: domain.ParseMillis(rec.CreatedAt)}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].millis > items[j].millis
	})

	out := make([]domain.Record, len(items))
	for i, it := range items {
		out[i] = it.rec
	}
	return out
}
