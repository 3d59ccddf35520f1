package runtime

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/midani-47/Message-Queues/internal/auth"
	cfgpkg "github.com/midani-47/Message-Queues/internal/config"
	"github.com/midani-47/Message-Queues/internal/metrics"
	"github.com/midani-47/Message-Queues/internal/persist"
	"github.com/midani-47/Message-Queues/internal/queue"
	queuesvc "github.com/midani-47/Message-Queues/internal/services/queues"
	pebblestore "github.com/midani-47/Message-Queues/internal/storage/pebble"
)

// Options for building the Runtime.
type Options struct {
	Config cfgpkg.Config
	Logger *zap.Logger
	// DataDir overrides Config.Storage.Path when set.
	DataDir string
	// PersistTick overrides the snapshot loop cadence. Tests shorten it.
	PersistTick time.Duration
}

// Runtime wires storage, the queue registry, the persistence engine, auth,
// and the queues service for a single-node broker.
type Runtime struct {
	db     *pebblestore.DB
	config cfgpkg.Config
	logger *zap.Logger
	reg    *queue.Registry
	engine *persist.Engine
	queues *queuesvc.Service
	auth   *auth.Manager
}

// Open initializes storage, recovers queues from the last run, and starts
// the snapshot loop.
func Open(ctx context.Context, opts Options) (*Runtime, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	dataDir := cfg.Storage.Path
	if opts.DataDir != "" {
		dataDir = opts.DataDir
	}
	fsync, err := cfg.Storage.FsyncMode()
	if err != nil {
		return nil, err
	}

	users := cfg.Auth.Users
	if len(users) == 0 {
		users = cfgpkg.DefaultUsers()
	}
	authMgr, err := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), users)
	if err != nil {
		return nil, err
	}

	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       dataDir,
		Fsync:         fsync,
		FsyncInterval: cfg.Storage.FsyncInterval(),
		Metrics:       metrics.StoreMetrics{},
	})
	if err != nil {
		return nil, err
	}

	reg := queue.NewRegistry()
	engine := persist.New(db, reg, logger)
	if opts.PersistTick > 0 {
		engine.ConfigureTick(opts.PersistTick)
	}
	if err := engine.Recover(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	for _, st := range reg.States() {
		metrics.SetQueueDepth(st.Name(), st.Len())
	}
	engine.Start()

	svc := queuesvc.NewWithLogger(reg, engine, queuesvc.Defaults{
		MaxMessages:            cfg.Queue.MaxMessages,
		PersistIntervalSeconds: cfg.Queue.PersistIntervalSeconds,
	}, logger)

	logger.Info("runtime open",
		zap.String("data_dir", dataDir),
		zap.String("fsync", fsync.String()),
		zap.Int("queues", reg.Len()),
	)

	return &Runtime{
		db:     db,
		config: cfg,
		logger: logger,
		reg:    reg,
		engine: engine,
		queues: svc,
		auth:   authMgr,
	}, nil
}

// Close stops the snapshot loop, flushing pending queue state, then closes
// storage. The flush error wins over the close error.
func (r *Runtime) Close(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	stopErr := r.engine.Stop(ctx)
	closeErr := r.db.Close()
	if stopErr != nil {
		return stopErr
	}
	return closeErr
}

// CheckHealth verifies the store is open and readable.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	return it.Close()
}

// Queues returns the queues service facade.
func (r *Runtime) Queues() *queuesvc.Service { return r.queues }

// Auth returns the token manager.
func (r *Runtime) Auth() *auth.Manager { return r.auth }

// DB exposes the underlying store for advanced operations (internal use only).
func (r *Runtime) DB() *pebblestore.DB { return r.db }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
