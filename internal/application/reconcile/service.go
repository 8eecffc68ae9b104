package reconcile

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/owennam/JSHA-master-sub000/internal/domain/order"
	"github.com/owennam/JSHA-master-sub000/internal/domain/repository"
	"github.com/owennam/JSHA-master-sub000/pkg/logger"
)

// Service reconciles the historical spreadsheet ledger with the live
// document store into one queryable list of orders.
type Service struct {
	ledger repository.OrderSource
	live   repository.OrderSource
	rules  *RuleEngine
	diag   repository.DiagnosticsPublisher
	log    logger.Logger
}

func NewService(
	ledger repository.OrderSource,
	live repository.OrderSource,
	rules *RuleEngine,
	diag repository.DiagnosticsPublisher,
	log logger.Logger,
) *Service {
	if diag == nil {
		diag = repository.NopDiagnostics{}
	}
	return &Service{
		ledger: ledger,
		live:   live,
		rules:  rules,
		diag:   diag,
		log:    log,
	}
}

// ListOrders fetches both sources concurrently, merges them, applies
// corrections, and returns the filtered, newest-first list.
//
// One unreachable source degrades the view to the other source's data.
// Only when both are down does the call fail, so callers can tell "no
// orders" apart from "data unavailable".
func (s *Service) ListOrders(ctx context.Context, statusFilter string) ([]domain.Record, error) {
	var (
		wg         sync.WaitGroup
		ledgerRecs []domain.Record
		liveRecs   []domain.Record
		ledgerErr  error
		liveErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		ledgerRecs, ledgerErr = s.ledger.FetchAll(ctx)
	}()
	go func() {
		defer wg.Done()
		liveRecs, liveErr = s.live.FetchAll(ctx)
	}()
	wg.Wait()

	if ledgerErr != nil && liveErr != nil {
		s.log.Error("both order sources unavailable",
			logger.Error(ledgerErr),
			logger.Any("live_error", liveErr))
		return nil, fmt.Errorf("ledger: %v, live: %v: %w", ledgerErr, liveErr, domain.ErrAllSourcesUnavailable)
	}
	if ledgerErr != nil {
		s.degraded(ctx, domain.SourceLedger, ledgerErr)
		ledgerRecs = nil
	}
	if liveErr != nil {
		s.degraded(ctx, domain.SourceLive, liveErr)
		liveRecs = nil
	}

	set := Merge(ledgerRecs, liveRecs, func(existing, incoming domain.Record) {
		s.log.Warn("live store reports backward status transition, keeping terminal state",
			logger.String("order_id", existing.OrderID),
			logger.String("known", string(existing.Status)),
			logger.String("reported", string(incoming.Status)))
		s.diag.Publish(ctx, domain.Diagnostic{
			EventType:  domain.EventStatusRegression,
			OrderID:    existing.OrderID,
			Source:     incoming.Source,
			Detail:     fmt.Sprintf("%s -> %s", existing.Status, incoming.Status),
			ObservedAt: time.Now().UTC(),
		})
	})

	if s.rules != nil {
		s.rules.ApplyAll(set)
	}

	return Assemble(set, statusFilter), nil
}

func (s *Service) degraded(ctx context.Context, src domain.Source, err error) {
	s.log.Warn("order source unavailable, serving degraded view",
		logger.String("source", string(src)),
		logger.Error(err))
	s.diag.Publish(ctx, domain.Diagnostic{
		EventType:  domain.EventSourceUnavailable,
		Source:     src,
		Detail:     err.Error(),
		ObservedAt: time.Now().UTC(),
	})
}
