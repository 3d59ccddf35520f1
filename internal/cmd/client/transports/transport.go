// Package transports provides pluggable transport implementations for the CLI.
package transports

import (
	"context"
	"encoding/json"
	"time"
)

// QueueInfo mirrors the broker's queue view on the wire.
type QueueInfo struct {
	Name         string    `json:"name"`
	Type         string    `json:"queue_type"`
	MessageCount int       `json:"message_count"`
	MaxMessages  int       `json:"max_messages"`
	CreatedAt    time.Time `json:"created_at"`
	LastModified time.Time `json:"last_modified"`
}

// QueueConfig carries queue creation parameters. Zero numeric fields default
// on the server.
type QueueConfig struct {
	Type                   string `json:"queue_type"`
	MaxMessages            int    `json:"max_messages,omitempty"`
	PersistIntervalSeconds int    `json:"persist_interval_seconds,omitempty"`
}

// Message is one delivered queue item.
type Message struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
}

// Token is an issued credential.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// QueuesTransport abstracts the transport used by the CLI.
type QueuesTransport interface {
	Login(ctx context.Context, username, password string) (Token, error)
	Create(ctx context.Context, name string, cfg QueueConfig) (QueueInfo, error)
	Delete(ctx context.Context, name string) (string, error)
	List(ctx context.Context) ([]QueueInfo, error)
	Info(ctx context.Context, name string) (QueueInfo, error)
	Push(ctx context.Context, queue, typ string, content json.RawMessage) (string, error)
	Pull(ctx context.Context, queue string) (Message, bool, error)
}
