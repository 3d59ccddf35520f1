package transports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPTransport implements QueuesTransport over the broker's REST API.
type HTTPTransport struct {
	base  string
	token string
	cli   *http.Client
}

// NewHTTPTransport constructs a transport rooted at base. The token may be
// empty for public endpoints like Login.
func NewHTTPTransport(base, token string) *HTTPTransport {
	return &HTTPTransport{
		base:  strings.TrimRight(base, "/"),
		token: token,
		cli:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (t *HTTPTransport) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, t.base+path, rd)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	resp, err := t.cli.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if resp.StatusCode >= 400 {
		return resp.StatusCode, apiError(resp.StatusCode, data)
	}
	if out != nil && resp.StatusCode != http.StatusNoContent && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// apiError surfaces the server's {"error": ...} body as a client error.
func apiError(status int, body []byte) error {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return fmt.Errorf("%s (status %d)", e.Error, status)
	}
	return fmt.Errorf("request failed with status %d", status)
}

// Login exchanges credentials for a bearer token.
func (t *HTTPTransport) Login(ctx context.Context, username, password string) (Token, error) {
	var tok Token
	_, err := t.do(ctx, http.MethodPost, "/v1/token",
		map[string]string{"username": username, "password": password}, &tok)
	return tok, err
}

// Create registers a new queue.
func (t *HTTPTransport) Create(ctx context.Context, name string, cfg QueueConfig) (QueueInfo, error) {
	var info QueueInfo
	_, err := t.do(ctx, http.MethodPost, "/v1/queues",
		map[string]any{"name": name, "config": cfg}, &info)
	return info, err
}

// Delete removes a queue and returns the server's confirmation message.
func (t *HTTPTransport) Delete(ctx context.Context, name string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	_, err := t.do(ctx, http.MethodDelete, "/v1/queues/"+url.PathEscape(name), nil, &resp)
	return resp.Message, err
}

// List returns every queue.
func (t *HTTPTransport) List(ctx context.Context) ([]QueueInfo, error) {
	var resp struct {
		Queues []QueueInfo `json:"queues"`
	}
	_, err := t.do(ctx, http.MethodGet, "/v1/queues", nil, &resp)
	return resp.Queues, err
}

// Info returns one queue's view.
func (t *HTTPTransport) Info(ctx context.Context, name string) (QueueInfo, error) {
	var info QueueInfo
	_, err := t.do(ctx, http.MethodGet, "/v1/queues/"+url.PathEscape(name), nil, &info)
	return info, err
}

// Push appends a message and returns its id.
func (t *HTTPTransport) Push(ctx context.Context, queue, typ string, content json.RawMessage) (string, error) {
	var resp struct {
		MessageID string `json:"message_id"`
	}
	_, err := t.do(ctx, http.MethodPost, "/v1/queues/"+url.PathEscape(queue)+"/push",
		map[string]any{"type": typ, "content": content}, &resp)
	return resp.MessageID, err
}

// Pull removes and returns the oldest message. ok=false means the queue was
// empty (HTTP 204), which is a normal outcome.
func (t *HTTPTransport) Pull(ctx context.Context, queue string) (Message, bool, error) {
	var msg Message
	status, err := t.do(ctx, http.MethodGet, "/v1/queues/"+url.PathEscape(queue)+"/pull", nil, &msg)
	if err != nil {
		return Message{}, false, err
	}
	if status == http.StatusNoContent {
		return Message{}, false, nil
	}
	return msg, true, nil
}
