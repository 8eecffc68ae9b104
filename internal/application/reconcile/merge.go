package reconcile

import (
	domain "github.com/owennam/JSHA-master-sub000/internal/domain/order"
)

// RecordSet is a keyed collection of merged records that remembers the
// order keys were first seen. Encounter order is what keeps the final
// sort stable and the output deterministic.
type RecordSet struct {
	keys []string
	byID map[string]domain.Record
}

func NewRecordSet() *RecordSet {
	return &RecordSet{byID: make(map[string]domain.Record)}
}

func (s *RecordSet) Len() int {
	return len(s.keys)
}

func (s *RecordSet) Get(orderID string) (domain.Record, bool) {
	rec, ok := s.byID[orderID]
	return rec, ok
}

// Put inserts or replaces a record, preserving first-seen key order.
func (s *RecordSet) Put(rec domain.Record) {
	if _, ok := s.byID[rec.OrderID]; !ok {
		s.keys = append(s.keys, rec.OrderID)
	}
	s.byID[rec.OrderID] = rec
}

// Records returns the records in encounter order.
func (s *RecordSet) Records() []domain.Record {
	out := make([]domain.Record, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.byID[k])
	}
	return out
}

// AnomalyFunc is invoked when the incoming record reports a status
// earlier in the lifecycle than what is already known for the key.
type AnomalyFunc func(existing, incoming domain.Record)

// Merge builds the unified set: ledger records first, then live records
// overlaid field-wise on top. Records without an order id are dropped
// before merge. The result holds exactly one record per distinct key.
func Merge(ledger, live []domain.Record, onAnomaly AnomalyFunc) *RecordSet {
	set := NewRecordSet()
	for _, rec := range ledger {
		set.merge(rec, onAnomaly)
	}
	for _, rec := range live {
		set.merge(rec, onAnomaly)
	}
	return set
}

func (s *RecordSet) merge(rec domain.Record, onAnomaly AnomalyFunc) {
	if rec.OrderID == "" {
		return
	}
	existing, ok := s.byID[rec.OrderID]
	if !ok {
		s.Put(rec)
		return
	}
	s.Put(overlay(existing, rec, onAnomaly))
}

// overlay merges incoming onto base field by field: a non-empty incoming
// value wins, an empty one never blanks out what is already known. The
// one exception is status, which may only move forward through the
// completed → cancel_requested → canceled lifecycle; a backward step is
// reported as an anomaly and the more terminal state kept.
func overlay(base, incoming domain.Record, onAnomaly AnomalyFunc) domain.Record {
	out := base

	pick(&out.CreatedAt, incoming.CreatedAt)
	pick(&out.ProductName, incoming.ProductName)
	pick(&out.CustomerName, incoming.CustomerName)
	pick(&out.CustomerEmail, incoming.CustomerEmail)
	pick(&out.CustomerPhone, incoming.CustomerPhone)
	pick(&out.Address, incoming.Address)
	pick(&out.AddressDetail, incoming.AddressDetail)
	pick(&out.PostalCode, incoming.PostalCode)
	pick(&out.PaymentMethod, incoming.PaymentMethod)
	pick(&out.PaymentKey, incoming.PaymentKey)
	pick(&out.ApprovedAt, incoming.ApprovedAt)
	pick(&out.CancelRequestedAt, incoming.CancelRequestedAt)
	pick(&out.CanceledAt, incoming.CanceledAt)
	pick(&out.CancelReason, incoming.CancelReason)
	pick(&out.UserID, incoming.UserID)

	if incoming.Amount != 0 {
		out.Amount = incoming.Amount
	}

	if base.Status.MoreTerminalThan(incoming.Status) {
		if onAnomaly != nil {
			onAnomaly(base, incoming)
		}
	} else {
		out.Status = incoming.Status
	}

	out.Source = incoming.Source
	return out
}

func pick(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
