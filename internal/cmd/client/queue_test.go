package client

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// stubBroker fakes the broker's REST surface for CLI tests.
func stubBroker(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/token", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "admin" || req.Password != "admin_password" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "stub-token",
			"token_type":   "bearer",
			"expires_at":   "2026-01-01T00:00:00Z",
		})
	})
	requireToken := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer stub-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "missing authorization header"})
			return false
		}
		return true
	}
	mux.HandleFunc("GET /v1/queues", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"queues": []map[string]any{
			{"name": "orders", "queue_type": "transaction", "message_count": 2, "max_messages": 10},
		}})
	})
	mux.HandleFunc("POST /v1/queues", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		var req struct {
			Name   string `json:"name"`
			Config struct {
				Type string `json:"queue_type"`
			} `json:"config"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Name == "orders" {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "queue already exists"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name": req.Name, "queue_type": req.Config.Type, "message_count": 0, "max_messages": 1000,
		})
	})
	mux.HandleFunc("GET /v1/queues/orders", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name": "orders", "queue_type": "transaction", "message_count": 2, "max_messages": 10,
		})
	})
	mux.HandleFunc("DELETE /v1/queues/orders", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": `queue "orders" deleted`})
	})
	mux.HandleFunc("POST /v1/queues/orders/push", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		var req struct {
			Type    string          `json:"type"`
			Content json.RawMessage `json:"content"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Type != "transaction" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "message type does not match queue type"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message_id": "msg-1"})
	})
	pulls := 0
	mux.HandleFunc("GET /v1/queues/orders/pull", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		pulls++
		if pulls > 1 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "msg-1", "type": "transaction",
			"content": map[string]any{"transaction_id": "t1"},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestLoginCachesToken(t *testing.T) {
	srv := stubBroker(t)
	t.Setenv("MQ_HTTP", srv.URL)
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)

	out, err := execute(t, NewLoginCommand(BaseURLFromEnv),
		"--username", "admin", "--password", "admin_password")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "token cached at") {
		t.Fatalf("output: %s", out)
	}
	data, err := os.ReadFile(filepath.Join(state, "mq", "token"))
	if err != nil {
		t.Fatalf("read token file: %v", err)
	}
	if strings.TrimSpace(string(data)) != "stub-token" {
		t.Fatalf("cached token: %q", data)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	srv := stubBroker(t)
	t.Setenv("MQ_HTTP", srv.URL)
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	_, err := execute(t, NewLoginCommand(BaseURLFromEnv),
		"--username", "admin", "--password", "nope")
	if err == nil || !strings.Contains(err.Error(), "invalid credentials") {
		t.Fatalf("expected credential error, got %v", err)
	}
}

func TestQueueListPrintsQueues(t *testing.T) {
	srv := stubBroker(t)
	t.Setenv("MQ_HTTP", srv.URL)
	t.Setenv("MQ_TOKEN", "stub-token")

	out, err := execute(t, NewQueueCommand(BaseURLFromEnv), "list")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, `"name": "orders"`) {
		t.Fatalf("output: %s", out)
	}
}

func TestRootCommandWiring(t *testing.T) {
	srv := stubBroker(t)
	t.Setenv("MQ_HTTP", srv.URL)
	t.Setenv("MQ_TOKEN", "stub-token")

	out, err := execute(t, NewRoot(BaseURLFromEnv), "queue", "info", "--name", "orders")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, `"message_count": 2`) {
		t.Fatalf("output: %s", out)
	}
}

func TestQueueCreatePrintsInfo(t *testing.T) {
	srv := stubBroker(t)
	t.Setenv("MQ_HTTP", srv.URL)
	t.Setenv("MQ_TOKEN", "stub-token")

	out, err := execute(t, NewQueueCommand(BaseURLFromEnv),
		"create", "--name", "scores", "--type", "prediction")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, `"queue_type": "prediction"`) {
		t.Fatalf("output: %s", out)
	}
}

func TestQueueCreateConflictSurfacesServerError(t *testing.T) {
	srv := stubBroker(t)
	t.Setenv("MQ_HTTP", srv.URL)
	t.Setenv("MQ_TOKEN", "stub-token")

	_, err := execute(t, NewQueueCommand(BaseURLFromEnv),
		"create", "--name", "orders", "--type", "transaction")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestQueuePushAndPull(t *testing.T) {
	srv := stubBroker(t)
	t.Setenv("MQ_HTTP", srv.URL)
	t.Setenv("MQ_TOKEN", "stub-token")

	out, err := execute(t, NewQueueCommand(BaseURLFromEnv),
		"push", "--queue", "orders", "--type", "transaction",
		"--data", `{"transaction_id":"t1","customer_id":"c1","amount":1,"vendor_id":"v1"}`)
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if !strings.Contains(out, "msg-1") {
		t.Fatalf("push output: %s", out)
	}

	out, err = execute(t, NewQueueCommand(BaseURLFromEnv), "pull", "--queue", "orders")
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if !strings.Contains(out, `"id": "msg-1"`) {
		t.Fatalf("pull output: %s", out)
	}

	out, err = execute(t, NewQueueCommand(BaseURLFromEnv), "pull", "--queue", "orders")
	if err != nil {
		t.Fatalf("empty pull: %v", err)
	}
	if !strings.Contains(out, "queue is empty") {
		t.Fatalf("empty pull output: %s", out)
	}
}

func TestQueuePushRejectsBadJSON(t *testing.T) {
	srv := stubBroker(t)
	t.Setenv("MQ_HTTP", srv.URL)
	t.Setenv("MQ_TOKEN", "stub-token")

	_, err := execute(t, NewQueueCommand(BaseURLFromEnv),
		"push", "--queue", "orders", "--type", "transaction", "--data", "{not json")
	if err == nil || !strings.Contains(err.Error(), "JSON") {
		t.Fatalf("expected JSON validation error, got %v", err)
	}
}

func TestQueueCommandsWithoutToken(t *testing.T) {
	srv := stubBroker(t)
	t.Setenv("MQ_HTTP", srv.URL)
	t.Setenv("MQ_TOKEN", "")
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	_, err := execute(t, NewQueueCommand(BaseURLFromEnv), "list")
	if err == nil || !strings.Contains(err.Error(), "authorization") {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestResolveTokenPrecedence(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)
	if err := os.MkdirAll(filepath.Join(state, "mq"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(state, "mq", "token"), []byte("file-token\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv("MQ_TOKEN", "env-token")
	if got := resolveToken(); got != "env-token" {
		t.Fatalf("env token should win, got %q", got)
	}
	t.Setenv("MQ_TOKEN", "")
	if got := resolveToken(); got != "file-token" {
		t.Fatalf("file token fallback, got %q", got)
	}
}

func TestBaseURLFromEnv(t *testing.T) {
	t.Setenv("MQ_HTTP", "http://broker:9999")
	if got := BaseURLFromEnv(); got != "http://broker:9999" {
		t.Fatalf("env url: %s", got)
	}
	t.Setenv("MQ_HTTP", "")
	if got := BaseURLFromEnv(); got != "http://127.0.0.1:7500" {
		t.Fatalf("default url: %s", got)
	}
}
