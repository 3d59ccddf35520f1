package serverrun

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	cfgpkg "github.com/midani-47/Message-Queues/internal/config"
	"github.com/midani-47/Message-Queues/internal/runtime"
	httpserver "github.com/midani-47/Message-Queues/internal/server/http"
	logpkg "github.com/midani-47/Message-Queues/pkg/log"
)

// Options are the flag-level overrides for a broker process. Anything left
// zero falls through to the loaded configuration.
type Options struct {
	ConfigPath      string
	HTTPAddr        string
	DataDir         string
	Fsync           string
	FsyncIntervalMs int
	LogLevel        string
	LogFormat       string
}

// shutdownTimeout bounds the final snapshot flush on exit.
const shutdownTimeout = 10 * time.Second

// Run starts the broker and blocks until ctx is cancelled or the listener
// fails. Shutdown stops the HTTP server first, then flushes dirty queues and
// closes the store.
func Run(ctx context.Context, opts Options) error {
	// Be robust to callers that don't pass a signal-aware context. We layer
	// a local signal context over the provided one.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := cfgpkg.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	applyOverrides(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logpkg.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Redirect stdlib logs (e.g., Pebble) to our logger.
	restore := logpkg.RedirectStdLog(logger)
	defer restore()

	rt, err := runtime.Open(sctx, runtime.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr()
	if opts.HTTPAddr != "" {
		addr = opts.HTTPAddr
	}

	logger.Info("starting broker",
		zap.String("http", addr),
		zap.String("data_dir", cfg.Storage.Path),
		zap.String("fsync", cfg.Storage.Fsync),
		zap.String("level", cfg.Log.Level),
		zap.String("format", cfg.Log.Format),
	)

	hsrv := httpserver.New(rt, logger)
	errCh := make(chan error, 1)
	go func() { errCh <- hsrv.ListenAndServe(sctx, addr) }()

	var serveErr error
	select {
	case <-sctx.Done():
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	hsrv.Close()

	// Final flush happens inside Close; bound it so a wedged store cannot
	// hang process exit.
	cctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := rt.Close(cctx); err != nil {
		logger.Error("shutdown flush failed", zap.Error(err))
		if serveErr == nil {
			serveErr = err
		}
	}
	logger.Info("broker stopped")
	return serveErr
}

// applyOverrides copies non-zero flag values over the loaded configuration.
func applyOverrides(cfg *cfgpkg.Config, opts Options) {
	if opts.DataDir != "" {
		cfg.Storage.Path = opts.DataDir
	}
	if opts.Fsync != "" {
		cfg.Storage.Fsync = opts.Fsync
	}
	if opts.FsyncIntervalMs > 0 {
		cfg.Storage.FsyncIntervalMs = opts.FsyncIntervalMs
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.Log.Format = opts.LogFormat
	}
}
