package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/midani-47/Message-Queues/internal/auth"
	queuesvc "github.com/midani-47/Message-Queues/internal/services/queues"
)

// QueuesController handles all queue-related HTTP endpoints.
//
// It provides a RESTful interface to the queues service: queue management
// (create, delete, list, info) and message operations (push, pull). Every
// route requires a verified token; the role gates follow the broker's
// access matrix, with mutation of queue topology reserved for admins and
// message movement for agents and admins.
type QueuesController struct {
	svc  *queuesvc.Service
	auth *auth.Manager
}

// NewQueuesController creates a new queues controller.
func NewQueuesController(svc *queuesvc.Service, mgr *auth.Manager) *QueuesController {
	return &QueuesController{svc: svc, auth: mgr}
}

// RegisterRoutes registers all queue-related routes with the given engine.
func (c *QueuesController) RegisterRoutes(router *gin.Engine) {
	anyRole := auth.RequireRole(auth.RoleAdmin, auth.RoleAgent, auth.RoleUser)
	adminOnly := auth.RequireRole(auth.RoleAdmin)
	mover := auth.RequireRole(auth.RoleAdmin, auth.RoleAgent)

	g := router.Group("/v1/queues", auth.Middleware(c.auth))
	{
		g.GET("", anyRole, c.handleList)
		g.POST("", adminOnly, c.handleCreate)
		g.GET("/:name", anyRole, c.handleInfo)
		g.DELETE("/:name", adminOnly, c.handleDelete)
		g.POST("/:name/push", mover, c.handlePush)
		g.GET("/:name/pull", mover, c.handlePull)
	}
}

// handleList lists all queues.
// GET /v1/queues
func (c *QueuesController) handleList(ctx *gin.Context) {
	list := c.svc.List(ctx.Request.Context())
	ctx.JSON(http.StatusOK, gin.H{"queues": list})
}

// handleCreate creates a new queue.
// POST /v1/queues {"name": ..., "config": {"queue_type": ..., "max_messages": ..., "persist_interval_seconds": ...}}
func (c *QueuesController) handleCreate(ctx *gin.Context) {
	var req queueCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	info, err := c.svc.Create(ctx.Request.Context(), req.Name, req.Config)
	if err != nil {
		writeQueueError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, info)
}

// handleInfo returns information about one queue.
// GET /v1/queues/:name
func (c *QueuesController) handleInfo(ctx *gin.Context) {
	info, err := c.svc.Info(ctx.Request.Context(), ctx.Param("name"))
	if err != nil {
		writeQueueError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, info)
}

// handleDelete deletes a queue and all messages it holds.
// DELETE /v1/queues/:name
func (c *QueuesController) handleDelete(ctx *gin.Context) {
	name := ctx.Param("name")
	if err := c.svc.Delete(ctx.Request.Context(), name); err != nil {
		writeQueueError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("queue %q deleted", name)})
}

// handlePush appends a message to a queue.
// POST /v1/queues/:name/push {"type": ..., "content": {...}}
func (c *QueuesController) handlePush(ctx *gin.Context) {
	var req pushReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	msg, err := c.svc.Push(ctx.Request.Context(), ctx.Param("name"), req.Type, req.Content)
	if err != nil {
		writeQueueError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message_id": msg.ID})
}

// handlePull removes and returns the oldest message of a queue.
// GET /v1/queues/:name/pull
//
// An empty queue answers 204 No Content. Each message is delivered to at
// most one caller.
func (c *QueuesController) handlePull(ctx *gin.Context) {
	msg, ok, err := c.svc.Pull(ctx.Request.Context(), ctx.Param("name"))
	if err != nil {
		writeQueueError(ctx, err)
		return
	}
	if !ok {
		ctx.Status(http.StatusNoContent)
		return
	}
	ctx.JSON(http.StatusOK, msg)
}
