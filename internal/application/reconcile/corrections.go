package reconcile

import (
	"fmt"

	domain "github.com/owennam/JSHA-master-sub000/internal/domain/order"
	"github.com/owennam/JSHA-master-sub000/pkg/logger"
)

// Rule is one declarative post-merge correction. Applies decides whether
// a record needs fixing; Apply returns the fixed record. A well-formed
// rule leaves Applies false on its own output, which is what makes a
// full correction pass idempotent.
//
// Fixture is a sample record the rule must fire on. Registration probes
// it: Applies(Fixture) must hold and Applies(Apply(Fixture)) must not,
// so a malformed rule is rejected before it ever touches real data.
type Rule struct {
	Name    string
	Fixture domain.Record
	Applies func(domain.Record) bool
	Apply   func(domain.Record) domain.Record
}

// RuleEngine evaluates registered rules in registration order against
// every record in a set. When a rule fires on a live-store record, the
// fix is also queued as a best-effort merge-patch back into the store.
type RuleEngine struct {
	rules      []Rule
	dispatcher Dispatcher
	log        logger.Logger
}

func NewRuleEngine(dispatcher Dispatcher, log logger.Logger) *RuleEngine {
	if dispatcher == nil {
		dispatcher = NopDispatcher{}
	}
	return &RuleEngine{dispatcher: dispatcher, log: log}
}

func (e *RuleEngine) Register(r Rule) error {
	if r.Name == "" {
		return fmt.Errorf("correction rule has no name")
	}
	if r.Applies == nil || r.Apply == nil {
		return fmt.Errorf("correction rule %s is incomplete", r.Name)
	}
	for _, existing := range e.rules {
		if existing.Name == r.Name {
			return fmt.Errorf("correction rule %s already registered", r.Name)
		}
	}
	if !r.Applies(r.Fixture) {
		return fmt.Errorf("correction rule %s: fixture does not trigger the rule", r.Name)
	}
	if r.Applies(r.Apply(r.Fixture)) {
		return fmt.Errorf("correction rule %s is not idempotent", r.Name)
	}
	e.rules = append(e.rules, r)
	return nil
}

// ApplyAll runs every rule over every record, replacing fired records in
// place. Applying it a second time is a no-op: every fired rule has
// already left its predicate false.
func (e *RuleEngine) ApplyAll(set *RecordSet) {
	if len(e.rules) == 0 {
		return
	}
	for _, rec := range set.Records() {
		before := rec
		fired := false
		for _, rule := range e.rules {
			if !rule.Applies(rec) {
				continue
			}
			fixed := rule.Apply(rec)
			if rule.Applies(fixed) {
				// Registration probes the fixture, not every shape of
				// real data. Refuse the output rather than loop.
				e.log.Error("correction rule not idempotent on record, skipping",
					logger.String("rule", rule.Name),
					logger.String("order_id", rec.OrderID))
				continue
			}
			rec = fixed
			fired = true
			e.log.Info("correction rule fired",
				logger.String("rule", rule.Name),
				logger.String("order_id", rec.OrderID))
		}
		if !fired {
			continue
		}
		set.Put(rec)
		if rec.UserID != "" {
			if fields := patchFields(before, rec); len(fields) > 0 {
				e.dispatcher.Enqueue(Patch{
					UserID:  rec.UserID,
					OrderID: rec.OrderID,
					Fields:  fields,
				})
			}
		}
	}
}

// patchFields computes the minimal merge-patch propagating a correction
// back into the live store. Only lifecycle fields are ever written.
func patchFields(before, after domain.Record) map[string]interface{} {
	fields := make(map[string]interface{})
	if before.Status != after.Status {
		fields["status"] = string(after.Status)
	}
	if before.CancelReason != after.CancelReason {
		fields["cancelReason"] = after.CancelReason
	}
	if before.CanceledAt != after.CanceledAt {
		fields["canceledAt"] = after.CanceledAt
	}
	if before.CancelRequestedAt != after.CancelRequestedAt {
		fields["cancelRequestedAt"] = after.CancelRequestedAt
	}
	return fields
}

// NewForceCancelRule marks orders of known-refunded customers canceled.
// This replaces what used to be a hardcoded customer-name branch in the
// dashboard query path.
func NewForceCancelRule(names []string, reason string) Rule {
	nameSet := make(map[string]struct{}, len(names))
	for _, n := range names {
		nameSet[n] = struct{}{}
	}
	fixtureName := ""
	if len(names) > 0 {
		fixtureName = names[0]
	}
	return Rule{
		Name: "force_cancel_refunded_customers",
		Fixture: domain.Record{
			OrderID:      "fixture",
			CustomerName: fixtureName,
			Status:       domain.StatusCompleted,
		},
		Applies: func(rec domain.Record) bool {
			if rec.Status == domain.StatusCanceled {
				return false
			}
			_, ok := nameSet[rec.CustomerName]
			return ok
		},
		Apply: func(rec domain.Record) domain.Record {
			rec.Status = domain.StatusCanceled
			if rec.CancelReason == "" {
				rec.CancelReason = reason
			}
			return rec
		},
	}
}
