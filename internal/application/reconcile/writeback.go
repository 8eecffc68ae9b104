package reconcile

import (
	"context"
	"sync"
	"time"

	domain "github.com/owennam/JSHA-master-sub000/internal/domain/order"
	"github.com/owennam/JSHA-master-sub000/internal/domain/repository"
	"github.com/owennam/JSHA-master-sub000/pkg/logger"
)

// Patch is one queued correction write-back.
type Patch struct {
	UserID  string
	OrderID string
	Fields  map[string]interface{}
}

// Dispatcher accepts write-back work without blocking the request path.
type Dispatcher interface {
	// Enqueue reports whether the patch was accepted. A full queue drops
	// the patch; the correction itself already took effect in the view.
	Enqueue(p Patch) bool
}

// NopDispatcher discards patches. Used when no live patcher is wired.
type NopDispatcher struct{}

func (NopDispatcher) Enqueue(Patch) bool { return true }

// WritebackDispatcher drains a bounded queue of patches with a small
// pool of workers. Failures are logged and emitted as diagnostics,
// never surfaced to callers.
type WritebackDispatcher struct {
	patcher repository.LivePatcher
	diag    repository.DiagnosticsPublisher
	log     logger.Logger

	workers int
	timeout time.Duration
	queue   chan Patch
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewWritebackDispatcher(
	patcher repository.LivePatcher,
	diag repository.DiagnosticsPublisher,
	log logger.Logger,
	workers int,
	queueSize int,
) *WritebackDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	if diag == nil {
		diag = repository.NopDiagnostics{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &WritebackDispatcher{
		patcher: patcher,
		diag:    diag,
		log:     log,
		workers: workers,
		timeout: 10 * time.Second,
		queue:   make(chan Patch, queueSize),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (d *WritebackDispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Stop drains the queue and waits for in-flight patches.
func (d *WritebackDispatcher) Stop() {
	close(d.queue)
	d.wg.Wait()
	d.cancel()
}

func (d *WritebackDispatcher) Enqueue(p Patch) bool {
	select {
	case d.queue <- p:
		return true
	default:
		d.log.Warn("write-back queue full, dropping patch",
			logger.String("order_id", p.OrderID))
		return false
	}
}

func (d *WritebackDispatcher) worker() {
	defer d.wg.Done()

	for p := range d.queue {
		ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
		err := d.patcher.MergePatch(ctx, p.UserID, p.OrderID, p.Fields)
		cancel()
		if err == nil {
			continue
		}
		d.log.Error("correction write-back failed",
			logger.String("order_id", p.OrderID),
			logger.String("user_id", p.UserID),
			logger.Error(err))
		d.diag.Publish(d.ctx, domain.Diagnostic{
			EventType:  domain.EventWritebackFailed,
			OrderID:    p.OrderID,
			Source:     domain.SourceLive,
			Detail:     err.Error(),
			ObservedAt: time.Now().UTC(),
		})
	}
}
