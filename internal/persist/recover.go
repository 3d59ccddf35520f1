package persist

import (
	"context"

	"go.uber.org/zap"

	pebblestore "github.com/midani-47/Message-Queues/internal/storage/pebble"
)

// Recover rebuilds the registry from durable records. It runs once at
// startup, before the broker serves traffic.
//
// Recovery never aborts on bad data: a missing registry record means a fresh
// store, a corrupt registry record or queue record degrades to an empty
// broker or queue with a logged warning. Only store-level failures surface
// as errors.
func (e *Engine) Recover(ctx context.Context) error {
	raw, err := e.db.Get(RegistryKey())
	if pebblestore.IsNotFound(err) {
		e.logger.Info("no registry record, starting empty")
		return e.sweepOrphans(ctx, nil)
	}
	if err != nil {
		return err
	}

	rec, err := decodeRegistry(raw)
	if err != nil {
		e.logger.Warn("registry record corrupt, starting empty", zap.Error(err))
		return e.sweepOrphans(ctx, nil)
	}

	for name, entry := range rec {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.recoverQueue(name, entry)
	}
	e.logger.Info("registry recovered", zap.Int("queues", e.reg.Len()))
	return e.sweepOrphans(ctx, rec)
}

// recoverQueue restores one queue from its snapshot record, or empty when the
// record is missing or unreadable.
func (e *Engine) recoverQueue(name string, entry registryEntry) {
	raw, err := e.db.Get(QueueKey(name))
	if pebblestore.IsNotFound(err) {
		e.logger.Warn("queue record missing, restoring empty", zap.String("queue", name))
		e.restore(name, entry, queueRecord{LastModified: entry.CreatedAt})
		return
	}
	if err != nil {
		e.logger.Warn("queue record unreadable, restoring empty", zap.String("queue", name), zap.Error(err))
		e.restore(name, entry, queueRecord{LastModified: entry.CreatedAt})
		return
	}
	rec, err := decodeQueue(raw)
	if err != nil {
		e.logger.Warn("queue record corrupt, restoring empty", zap.String("queue", name), zap.Error(err))
		e.restore(name, entry, queueRecord{LastModified: entry.CreatedAt})
		return
	}
	e.restore(name, entry, rec)
	e.logger.Debug("queue recovered", zap.String("queue", name), zap.Int("messages", len(rec.Messages)))
}

func (e *Engine) restore(name string, entry registryEntry, rec queueRecord) {
	if err := e.reg.Restore(name, entry.Config, rec.Messages, entry.CreatedAt, rec.LastModified); err != nil {
		e.logger.Warn("queue restore skipped", zap.String("queue", name), zap.Error(err))
	}
}

// sweepOrphans drops snapshot records that have no registry row. They are
// left behind when a crash lands between a queue record write and a delete's
// registry rewrite.
func (e *Engine) sweepOrphans(ctx context.Context, rec registryRecord) error {
	it, err := e.db.NewIter(pebblestore.PrefixIterOptions(QueuePrefix()))
	if err != nil {
		return err
	}
	var orphans []string
	for it.First(); it.Valid(); it.Next() {
		name, ok := QueueNameFromKey(it.Key())
		if !ok {
			continue
		}
		if _, live := rec[name]; !live {
			orphans = append(orphans, name)
		}
	}
	if err := it.Close(); err != nil {
		return err
	}
	for _, name := range orphans {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.logger.Warn("dropping orphan queue record", zap.String("queue", name))
		if err := e.db.Delete(QueueKey(name)); err != nil {
			return err
		}
	}
	return nil
}
