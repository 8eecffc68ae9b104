package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/owennam/JSHA-master-sub000/internal/interfaces/http/handler"
)

func RegisterRoutes(r *gin.Engine, orderHandler *handler.OrderHandler) {
	r.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	api := r.Group("/api")
	{
		api.GET("/orders", orderHandler.ListOrders)
	}
}
