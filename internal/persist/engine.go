package persist

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/midani-47/Message-Queues/internal/metrics"
	"github.com/midani-47/Message-Queues/internal/queue"
	pebblestore "github.com/midani-47/Message-Queues/internal/storage/pebble"
)

const defaultTick = time.Second

// Engine owns the broker's durable records. It rewrites the registry record
// on create and delete, and snapshots dirty queues from a background loop,
// honoring each queue's persist interval. Snapshots copy under the queue
// guard and serialize outside it, so producers and consumers never wait on
// the store.
type Engine struct {
	db     *pebblestore.DB
	reg    *queue.Registry
	logger *zap.Logger

	tick time.Duration

	// regMu serializes registry record builds and writes so the last write
	// always reflects the latest create or delete.
	regMu sync.Mutex

	// mu guards lastWrite.
	mu        sync.Mutex
	lastWrite map[string]time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// New constructs an engine bound to a store and a registry. The caller
// decides when the loop runs via Start and Stop.
func New(db *pebblestore.DB, reg *queue.Registry, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		db:        db,
		reg:       reg,
		logger:    logger,
		tick:      defaultTick,
		lastWrite: make(map[string]time.Time),
	}
}

// ConfigureTick overrides the loop cadence. Effective only before Start.
func (e *Engine) ConfigureTick(d time.Duration) {
	if d > 0 {
		e.tick = d
	}
}

// Start launches the snapshot loop.
func (e *Engine) Start() {
	if e.stopCh != nil {
		return
	}
	e.stopCh = make(chan struct{})
	e.doneCh = make(chan struct{})
	go e.run(e.stopCh, e.doneCh)
}

// Stop halts the loop and flushes every dirty queue one final time.
func (e *Engine) Stop(ctx context.Context) error {
	if e.stopCh != nil {
		close(e.stopCh)
		<-e.doneCh
		e.stopCh = nil
		e.doneCh = nil
	}
	return e.Flush(ctx)
}

func (e *Engine) run(stopCh chan struct{}, doneCh chan struct{}) {
	defer close(doneCh)
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()
	for {
		select {
		case <-stopCh:
			return
		case now := <-ticker.C:
			e.snapshotDue(now)
		}
	}
}

// snapshotDue writes every dirty queue whose persist interval has elapsed
// since its last snapshot.
func (e *Engine) snapshotDue(now time.Time) {
	for _, st := range e.reg.States() {
		if !st.Dirty() {
			continue
		}
		e.mu.Lock()
		last := e.lastWrite[st.Name()]
		e.mu.Unlock()
		if !last.IsZero() && now.Sub(last) < st.Config().PersistInterval() {
			continue
		}
		if err := e.snapshotState(st); err != nil {
			e.logger.Error("queue snapshot failed", zap.String("queue", st.Name()), zap.Error(err))
		}
	}
}

// Flush snapshots every dirty queue immediately, ignoring intervals. Used on
// shutdown and by tests.
func (e *Engine) Flush(ctx context.Context) error {
	var firstErr error
	for _, st := range e.reg.States() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !st.Dirty() {
			continue
		}
		if err := e.snapshotState(st); err != nil {
			e.logger.Error("queue snapshot failed", zap.String("queue", st.Name()), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// snapshotState copies one queue under its guard, writes the record, and
// clears the dirty flag only when nothing mutated during the write.
func (e *Engine) snapshotState(st *queue.State) error {
	start := time.Now()
	snap := st.Snapshot()
	raw, err := encodeQueue(snap)
	if err == nil {
		err = e.db.Set(QueueKey(snap.Name), raw)
	}
	metrics.ObserveSnapshot(time.Since(start), err)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", snap.Name, err)
	}
	st.ClearDirty(snap.Version)
	e.mu.Lock()
	e.lastWrite[snap.Name] = time.Now()
	e.mu.Unlock()
	e.logger.Debug("queue snapshot written",
		zap.String("queue", snap.Name),
		zap.Int("messages", len(snap.Messages)),
	)
	return nil
}

// SaveRegistry rewrites the registry record from the live registry. Called
// after every create.
func (e *Engine) SaveRegistry() error {
	e.regMu.Lock()
	defer e.regMu.Unlock()
	raw, err := encodeRegistry(e.buildRegistryRecord())
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	if err := e.db.Set(RegistryKey(), raw); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}

// DropQueue removes a deleted queue's snapshot record and rewrites the
// registry record in one atomic batch.
func (e *Engine) DropQueue(ctx context.Context, name string) error {
	e.regMu.Lock()
	defer e.regMu.Unlock()
	raw, err := encodeRegistry(e.buildRegistryRecord())
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	b := e.db.NewBatch()
	defer b.Close()
	if err := b.Delete(QueueKey(name), nil); err != nil {
		return err
	}
	if err := b.Set(RegistryKey(), raw, nil); err != nil {
		return err
	}
	if err := e.db.CommitBatch(ctx, b); err != nil {
		return fmt.Errorf("drop queue %s: %w", name, err)
	}
	e.mu.Lock()
	delete(e.lastWrite, name)
	e.mu.Unlock()
	return nil
}

func (e *Engine) buildRegistryRecord() registryRecord {
	states := e.reg.States()
	rec := make(registryRecord, len(states))
	for _, st := range states {
		rec[st.Name()] = registryEntry{Config: st.Config(), CreatedAt: st.CreatedAt()}
	}
	return rec
}
