package repository

import (
	"context"

	"github.com/owennam/JSHA-master-sub000/internal/domain/order"
)

// DiagnosticsPublisher emits data-quality events. Best-effort by
// contract: implementations log their own failures and never return
// them into the request path.
type DiagnosticsPublisher interface {
	Publish(ctx context.Context, d order.Diagnostic)
}

// NopDiagnostics is used when no diagnostics stream is configured.
type NopDiagnostics struct{}

func (NopDiagnostics) Publish(context.Context, order.Diagnostic) {}
