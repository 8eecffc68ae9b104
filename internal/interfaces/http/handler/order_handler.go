package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/owennam/JSHA-master-sub000/internal/application/reconcile"
	domain "github.com/owennam/JSHA-master-sub000/internal/domain/order"
)

type OrderHandler struct {
	svc *reconcile.Service
}

func NewOrderHandler(svc *reconcile.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// ListOrders serves the reconciled order list. The optional status
// parameter accepts the canonical values plus the "all" wildcard.
// Authorization happened upstream; this endpoint takes no credentials.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	statusFilter := c.Query("status")
	if !domain.ValidStatusFilter(statusFilter) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "status must be one of completed, cancel_requested, canceled, all",
		})
		return
	}

	records, err := h.svc.ListOrders(c.Request.Context(), statusFilter)
	if err != nil {
		if errors.Is(err, domain.ErrAllSourcesUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"message": "order data unavailable",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "failed to list orders",
			"error":   err.Error(),
		})
		return
	}

	if records == nil {
		records = []domain.Record{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
	})
}
