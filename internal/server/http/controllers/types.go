package controllers

import (
	"encoding/json"
	"time"

	"github.com/midani-47/Message-Queues/internal/message"
	"github.com/midani-47/Message-Queues/internal/queue"
)

// Common request/response types for HTTP controllers

// tokenReq represents a credential exchange request.
type tokenReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// tokenResp carries an issued bearer token.
type tokenResp struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// queueCreateReq represents a request to create a new queue. The numeric
// config fields are optional and default from process configuration.
type queueCreateReq struct {
	Name   string       `json:"name"`
	Config queue.Config `json:"config"`
}

// pushReq represents a request to append one message. Content stays raw
// here; the queue layer validates it against the declared type.
type pushReq struct {
	Type    message.Type    `json:"type"`
	Content json.RawMessage `json:"content"`
}
