package config

import (
	"os"
	"path/filepath"
)

// DefaultTokenPath returns where the CLI caches the login token. It prefers
// standard per-user state locations and falls back to a dotdir in the user's
// home directory.
func DefaultTokenPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return "./.mq_token"
	}

	// XDG (Linux) override
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "mq", "token")
	}

	if isDir(filepath.Join(homeDir, ".local", "state")) {
		return filepath.Join(homeDir, ".local", "state", "mq", "token")
	}

	// macOS: ~/Library/Application Support/mq
	if isDir(filepath.Join(homeDir, "Library")) {
		return filepath.Join(homeDir, "Library", "Application Support", "mq", "token")
	}

	// Windows: %USERPROFILE%/AppData/Local/mq
	if isDir(filepath.Join(homeDir, "AppData")) {
		return filepath.Join(homeDir, "AppData", "Local", "mq", "token")
	}

	// Fallback: ~/.mq/token
	return filepath.Join(homeDir, ".mq", "token")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
