package queues

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/midani-47/Message-Queues/internal/message"
	"github.com/midani-47/Message-Queues/internal/metrics"
	"github.com/midani-47/Message-Queues/internal/persist"
	"github.com/midani-47/Message-Queues/internal/queue"
)

// Defaults fill queue configuration fields a create request leaves unset.
type Defaults struct {
	MaxMessages            int
	PersistIntervalSeconds int
}

// Service coordinates the queue registry, the persistence engine, and the
// broker metrics. It is the single entry point the transport layers call.
type Service struct {
	reg      *queue.Registry
	engine   *persist.Engine
	logger   *zap.Logger
	defaults Defaults
}

// New creates a queues service with a no-op logger.
func New(reg *queue.Registry, engine *persist.Engine, defaults Defaults) *Service {
	return NewWithLogger(reg, engine, defaults, nil)
}

// NewWithLogger creates a queues service with a custom logger.
func NewWithLogger(reg *queue.Registry, engine *persist.Engine, defaults Defaults, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		reg:      reg,
		engine:   engine,
		logger:   logger.Named("queues"),
		defaults: defaults,
	}
}

// Create registers a new queue and rewrites the registry record. Zero numeric
// fields in cfg take the service defaults; the type must be set explicitly.
func (s *Service) Create(ctx context.Context, name string, cfg queue.Config) (queue.Info, error) {
	if cfg.MaxMessages == 0 {
		cfg.MaxMessages = s.defaults.MaxMessages
	}
	if cfg.PersistIntervalSeconds == 0 {
		cfg.PersistIntervalSeconds = s.defaults.PersistIntervalSeconds
	}
	info, err := s.reg.Create(name, cfg)
	if err != nil {
		return queue.Info{}, err
	}
	if err := s.engine.SaveRegistry(); err != nil {
		// Roll back so memory and store stay consistent.
		_ = s.reg.Delete(name)
		s.logger.Error("registry record write failed", zap.String("queue", name), zap.Error(err))
		return queue.Info{}, err
	}
	metrics.SetQueueDepth(name, 0)
	s.logger.Info("queue created",
		zap.String("queue", name),
		zap.String("type", string(cfg.Type)),
		zap.Int("max_messages", cfg.MaxMessages),
		zap.Int("persist_interval_seconds", cfg.PersistIntervalSeconds),
	)
	return info, nil
}

// Delete removes a queue, its snapshot record, and its metric series.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.reg.Delete(name); err != nil {
		return err
	}
	if err := s.engine.DropQueue(ctx, name); err != nil {
		s.logger.Error("queue record drop failed", zap.String("queue", name), zap.Error(err))
		return err
	}
	metrics.RemoveQueue(name)
	s.logger.Info("queue deleted", zap.String("queue", name))
	return nil
}

// List returns all queues sorted by name.
func (s *Service) List(ctx context.Context) []queue.Info {
	return s.reg.List()
}

// Info returns one queue's current counters.
func (s *Service) Info(ctx context.Context, name string) (queue.Info, error) {
	return s.reg.Info(name)
}

// Push validates and appends one message to the named queue.
func (s *Service) Push(ctx context.Context, name string, declared message.Type, raw json.RawMessage) (message.Message, error) {
	st, err := s.reg.Get(name)
	if err != nil {
		return message.Message{}, err
	}
	msg, err := st.Push(declared, raw)
	if err != nil {
		return message.Message{}, err
	}
	metrics.IncPushed(name)
	metrics.SetQueueDepth(name, st.Len())
	s.logger.Debug("message pushed",
		zap.String("queue", name),
		zap.String("message_id", msg.ID),
	)
	return msg, nil
}

// Pull removes and returns the oldest message of the named queue. ok is false
// when the queue is empty.
func (s *Service) Pull(ctx context.Context, name string) (message.Message, bool, error) {
	st, err := s.reg.Get(name)
	if err != nil {
		return message.Message{}, false, err
	}
	msg, ok, err := st.Pull()
	if err != nil {
		return message.Message{}, false, err
	}
	if !ok {
		return message.Message{}, false, nil
	}
	metrics.IncPulled(name)
	metrics.SetQueueDepth(name, st.Len())
	s.logger.Debug("message pulled",
		zap.String("queue", name),
		zap.String("message_id", msg.ID),
	)
	return msg, true, nil
}
