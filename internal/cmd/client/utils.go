package client

import (
	"os"
	"path/filepath"
	"strings"

	transports "github.com/midani-47/Message-Queues/internal/cmd/client/transports"
	"github.com/midani-47/Message-Queues/internal/config"
)

// BaseURLFunc provides the base HTTP API URL (e.g., from env or flag).
type BaseURLFunc func() string

// BaseURLFromEnv returns the broker URL from MQ_HTTP or the local default.
func BaseURLFromEnv() string {
	if v := os.Getenv("MQ_HTTP"); v != "" {
		return v
	}
	return "http://127.0.0.1:7500"
}

// resolveToken returns the bearer token for queue commands: MQ_TOKEN wins,
// then the file cached by `mq login`. Empty means unauthenticated.
func resolveToken() string {
	if v := os.Getenv("MQ_TOKEN"); v != "" {
		return v
	}
	data, err := os.ReadFile(config.DefaultTokenPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// saveToken caches the token for subsequent commands and returns the path.
func saveToken(token string) (string, error) {
	path := config.DefaultTokenPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// newTransport builds the HTTP transport with the resolved token.
func newTransport(baseURL BaseURLFunc) transports.QueuesTransport {
	return transports.NewHTTPTransport(baseURL(), resolveToken())
}
