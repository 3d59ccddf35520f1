package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/midani-47/Message-Queues/internal/runtime"
)

// GeneralController handles general HTTP endpoints like health and metrics.
//
// These endpoints are public: monitoring systems probe them without a token.
type GeneralController struct {
	rt *runtime.Runtime
}

// NewGeneralController creates a new general controller.
func NewGeneralController(rt *runtime.Runtime) *GeneralController {
	return &GeneralController{rt: rt}
}

// RegisterRoutes registers general routes with the given engine.
//
// This method sets up HTTP endpoints for:
// - Health checks (/v1/healthz)
// - Prometheus metrics (/metrics)
func (c *GeneralController) RegisterRoutes(router *gin.Engine) {
	router.GET("/v1/healthz", c.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// handleHealth returns the health status of the service.
//
// Returns 200 OK with {"status": "ok"} while the store is readable,
// 503 Service Unavailable otherwise.
func (c *GeneralController) handleHealth(ctx *gin.Context) {
	if err := c.rt.CheckHealth(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "not_serving",
			"timestamp": time.Now().UTC(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}
