package order

import "errors"

var (
	// ErrSourceUnavailable means one backing store could not be read.
	// The reconciler degrades to the remaining source.
	ErrSourceUnavailable = errors.New("order source unavailable")

	// ErrAllSourcesUnavailable means neither store could be read; the
	// only condition surfaced to callers as a failure.
	ErrAllSourcesUnavailable = errors.New("all order sources unavailable")

	ErrMissingOrderID = errors.New("record has no order id")
)
