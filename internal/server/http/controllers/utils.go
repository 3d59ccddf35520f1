package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/midani-47/Message-Queues/internal/message"
	"github.com/midani-47/Message-Queues/internal/queue"
)

// writeQueueError maps a typed queue or message error to its HTTP status and
// renders the {"error": ...} body. Unrecognized errors become 500; nothing
// at this boundary is fatal to the process.
func writeQueueError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, queue.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, queue.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, queue.ErrQueueFull):
		status = http.StatusTooManyRequests
	case errors.Is(err, queue.ErrInvalidName),
		errors.Is(err, queue.ErrInvalidConfig),
		errors.Is(err, message.ErrTypeMismatch),
		errors.Is(err, message.ErrInvalidContent):
		status = http.StatusBadRequest
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
