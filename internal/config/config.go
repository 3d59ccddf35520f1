package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"github.com/midani-47/Message-Queues/internal/auth"
	pebblestore "github.com/midani-47/Message-Queues/internal/storage/pebble"
	logpkg "github.com/midani-47/Message-Queues/pkg/log"
)

// Config is the top-level configuration loaded from defaults, file, and env.
type Config struct {
	Server  ServerConfig  `json:"server" mapstructure:"server"`
	Queue   QueueConfig   `json:"queue" mapstructure:"queue"`
	Storage StorageConfig `json:"storage" mapstructure:"storage"`
	Log     logpkg.Config `json:"log" mapstructure:"log"`
	Auth    AuthConfig    `json:"auth" mapstructure:"auth"`
}

// ServerConfig sets the HTTP listener.
type ServerConfig struct {
	Host string `json:"host" mapstructure:"host"`
	Port int    `json:"port" mapstructure:"port"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// QueueConfig holds the process-wide queue defaults. Per-queue creation
// parameters take precedence over these.
type QueueConfig struct {
	MaxMessages            int `json:"max_messages" mapstructure:"max_messages"`
	PersistIntervalSeconds int `json:"persist_interval_seconds" mapstructure:"persist_interval_seconds"`
}

// StorageConfig sets the durable store location and fsync policy.
type StorageConfig struct {
	Path            string `json:"path" mapstructure:"path"`
	Fsync           string `json:"fsync" mapstructure:"fsync"`
	FsyncIntervalMs int    `json:"fsync_interval_ms" mapstructure:"fsync_interval_ms"`
}

// FsyncMode parses the configured fsync policy.
func (s StorageConfig) FsyncMode() (pebblestore.FsyncMode, error) {
	return pebblestore.ParseFsyncMode(s.Fsync)
}

// FsyncInterval returns the group-commit interval.
func (s StorageConfig) FsyncInterval() time.Duration {
	return time.Duration(s.FsyncIntervalMs) * time.Millisecond
}

// AuthConfig sets token signing and the static user table.
type AuthConfig struct {
	JWTSecret       string            `json:"jwt_secret" mapstructure:"jwt_secret"`
	TokenTTLMinutes int               `json:"token_ttl_minutes" mapstructure:"token_ttl_minutes"`
	Users           []auth.Credential `json:"users" mapstructure:"users"`
}

// TokenTTL returns the token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// Default returns built-in defaults, including the demo user table.
func Default() Config {
	return Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 7500},
		Queue: QueueConfig{
			MaxMessages:            1000,
			PersistIntervalSeconds: 60,
		},
		Storage: StorageConfig{
			Path:            "./queue_data",
			Fsync:           "always",
			FsyncIntervalMs: 5,
		},
		Log: logpkg.Config{Level: "info", Format: "text"},
		Auth: AuthConfig{
			JWTSecret:       "change-me-in-production",
			TokenTTLMinutes: 30,
			Users:           DefaultUsers(),
		},
	}
}

// DefaultUsers returns the demo credential table. Production deployments
// replace it through the config file.
func DefaultUsers() []auth.Credential {
	return []auth.Credential{
		{Username: "admin", Password: "admin_password", Role: auth.RoleAdmin},
		{Username: "agent", Password: "agent_password", Role: auth.RoleAgent},
		{Username: "user", Password: "user_password", Role: auth.RoleUser},
	}
}

// Load builds the configuration: defaults, then the file at path (JSON or
// YAML, falling back to MQ_CONFIG_PATH when path is empty), then MQ_*
// environment variables on top.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if path == "" {
		path = os.Getenv("MQ_CONFIG_PATH")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the broker cannot run with.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if c.Queue.MaxMessages <= 0 {
		return fmt.Errorf("config: queue.max_messages must be positive, got %d", c.Queue.MaxMessages)
	}
	if c.Queue.PersistIntervalSeconds <= 0 {
		return fmt.Errorf("config: queue.persist_interval_seconds must be positive, got %d", c.Queue.PersistIntervalSeconds)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("config: storage.path must not be empty")
	}
	if _, err := c.Storage.FsyncMode(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logpkg.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("config: auth.token_ttl_minutes must be positive, got %d", c.Auth.TokenTTLMinutes)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("queue.max_messages", def.Queue.MaxMessages)
	v.SetDefault("queue.persist_interval_seconds", def.Queue.PersistIntervalSeconds)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("storage.fsync", def.Storage.Fsync)
	v.SetDefault("storage.fsync_interval_ms", def.Storage.FsyncIntervalMs)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("auth.jwt_secret", def.Auth.JWTSecret)
	v.SetDefault("auth.token_ttl_minutes", def.Auth.TokenTTLMinutes)
	v.SetDefault("auth.users", def.Auth.Users)
}
