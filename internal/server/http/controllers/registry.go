package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/midani-47/Message-Queues/internal/runtime"
)

// ControllerRegistry manages all HTTP controllers.
//
// It provides a centralized way to register all controller routes
// and manages the lifecycle of individual controllers.
type ControllerRegistry struct {
	general *GeneralController
	tokens  *TokensController
	queues  *QueuesController
}

// NewControllerRegistry creates a new controller registry.
//
// It initializes all controllers with the provided runtime.
func NewControllerRegistry(rt *runtime.Runtime) *ControllerRegistry {
	return &ControllerRegistry{
		general: NewGeneralController(rt),
		tokens:  NewTokensController(rt.Auth()),
		queues:  NewQueuesController(rt.Queues(), rt.Auth()),
	}
}

// RegisterAllRoutes registers all controller routes with the given engine.
//
// This method sets up the broker's full HTTP surface: public endpoints
// (token, health, metrics) and the authenticated queue endpoints.
func (r *ControllerRegistry) RegisterAllRoutes(router *gin.Engine) {
	r.general.RegisterRoutes(router)
	r.tokens.RegisterRoutes(router)
	r.queues.RegisterRoutes(router)
}
