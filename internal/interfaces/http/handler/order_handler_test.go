package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owennam/JSHA-master-sub000/internal/application/reconcile"
	domain "github.com/owennam/JSHA-master-sub000/internal/domain/order"
	"github.com/owennam/JSHA-master-sub000/pkg/logger"
)

type stubSource struct {
	recs []domain.Record
	err  error
}

func (s stubSource) FetchAll(context.Context) ([]domain.Record, error) {
	return s.recs, s.err
}

type listResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    []domain.Record `json:"data"`
}

func serveOrders(t *testing.T, ledger, live stubSource, url string) (*httptest.ResponseRecorder, listResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := reconcile.NewService(ledger, live, nil, nil, logger.NewNop())
	h := NewOrderHandler(svc)

	r := gin.New()
	r.GET("/api/orders", h.ListOrders)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)

	var body listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestListOrders_Success(t *testing.T) {
	ledger := stubSource{recs: []domain.Record{{
		OrderID:   "ord-1",
		CreatedAt: "2025-01-01",
		Status:    domain.StatusCompleted,
		Source:    domain.SourceLedger,
	}}}
	live := stubSource{recs: []domain.Record{{
		OrderID:   "ord-2",
		CreatedAt: "2025-02-01",
		Status:    domain.StatusCanceled,
		UserID:    "user-1",
		Source:    domain.SourceLive,
	}}}

	w, body := serveOrders(t, ledger, live, "/api/orders")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "ord-2", body.Data[0].OrderID)
	assert.Equal(t, "ord-1", body.Data[1].OrderID)
}

func TestListOrders_StatusFilter(t *testing.T) {
	ledger := stubSource{recs: []domain.Record{
		{OrderID: "done", CreatedAt: "2025-01-01", Status: domain.StatusCompleted},
	}}
	live := stubSource{recs: []domain.Record{
		{OrderID: "gone", CreatedAt: "2025-01-02", Status: domain.StatusCanceled, UserID: "u"},
	}}

	w, body := serveOrders(t, ledger, live, "/api/orders?status=canceled")
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "gone", body.Data[0].OrderID)
}

func TestListOrders_RejectsUnknownFilter(t *testing.T) {
	w, body := serveOrders(t, stubSource{}, stubSource{}, "/api/orders?status=refunded")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Message)
}

func TestListOrders_DegradedSingleSourceStillSucceeds(t *testing.T) {
	ledger := stubSource{recs: []domain.Record{
		{OrderID: "ord-1", CreatedAt: "2025-01-01", Status: domain.StatusCompleted},
	}}
	live := stubSource{err: domain.ErrSourceUnavailable}

	w, body := serveOrders(t, ledger, live, "/api/orders")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
}

func TestListOrders_BothSourcesDown(t *testing.T) {
	ledger := stubSource{err: domain.ErrSourceUnavailable}
	live := stubSource{err: domain.ErrSourceUnavailable}

	w, body := serveOrders(t, ledger, live, "/api/orders")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "order data unavailable", body.Message)
	assert.NotEmpty(t, body.Error)
}

func TestListOrders_EmptyResultIsEmptyArrayNotNull(t *testing.T) {
	w, _ := serveOrders(t, stubSource{}, stubSource{}, "/api/orders")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}
