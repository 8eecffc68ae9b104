package repository

import (
	"context"

	"github.com/owennam/JSHA-master-sub000/internal/domain/order"
)

// OrderSource reads every order record a backing store currently holds.
// Implementations wrap store failures in order.ErrSourceUnavailable.
type OrderSource interface {
	FetchAll(ctx context.Context) ([]order.Record, error)
}

// LivePatcher merge-patches a single live-store document. Used only by
// the correction write-back; best-effort by contract.
type LivePatcher interface {
	MergePatch(ctx context.Context, userID, orderID string, fields map[string]interface{}) error
}
