package queue

import (
	"fmt"
	"sync"
	"time"

	"github.com/midani-47/Message-Queues/internal/message"
)

// Config fixes a queue's behavior at creation time. Type never changes for
// the life of the queue; the numeric fields default from process
// configuration when left zero by the caller.
type Config struct {
	MaxMessages            int          `json:"max_messages"`
	PersistIntervalSeconds int          `json:"persist_interval_seconds"`
	Type                   message.Type `json:"queue_type"`
}

// Validate rejects non-positive bounds and unknown types.
func (c Config) Validate() error {
	if c.MaxMessages <= 0 {
		return fmt.Errorf("%w: max_messages must be positive, got %d", ErrInvalidConfig, c.MaxMessages)
	}
	if c.PersistIntervalSeconds <= 0 {
		return fmt.Errorf("%w: persist_interval_seconds must be positive, got %d", ErrInvalidConfig, c.PersistIntervalSeconds)
	}
	if !c.Type.Valid() {
		return fmt.Errorf("%w: unknown queue type %q", ErrInvalidConfig, c.Type)
	}
	return nil
}

// PersistInterval returns the snapshot cadence as a duration.
func (c Config) PersistInterval() time.Duration {
	return time.Duration(c.PersistIntervalSeconds) * time.Second
}

// Info is a read-only snapshot view of one queue.
type Info struct {
	Name         string       `json:"name"`
	Type         message.Type `json:"queue_type"`
	MessageCount int          `json:"message_count"`
	MaxMessages  int          `json:"max_messages"`
	CreatedAt    time.Time    `json:"created_at"`
	LastModified time.Time    `json:"last_modified"`
}

// Snapshot is a point-in-time copy of a queue's contents, taken under the
// guard and safe to serialize outside it. Version feeds ClearDirty after a
// successful write.
type Snapshot struct {
	Name         string
	Config       Config
	CreatedAt    time.Time
	LastModified time.Time
	Messages     []message.Message
	Version      uint64
}

// State is one named queue: its config, its ordered messages (front =
// oldest), and the exclusive guard serializing mutations.
type State struct {
	name      string
	cfg       Config
	createdAt time.Time

	mu           sync.Mutex
	messages     []message.Message
	lastModified time.Time
	dirty        bool
	version      uint64
	deleted      bool
}

// NewState allocates an empty queue. It starts dirty so the first snapshot
// cycle records its existence even before any push.
func NewState(name string, cfg Config) *State {
	now := time.Now().UTC()
	return &State{
		name:         name,
		cfg:          cfg,
		createdAt:    now,
		lastModified: now,
		dirty:        true,
	}
}

// RestoreState rebuilds a queue from a durable record. It starts clean.
func RestoreState(name string, cfg Config, msgs []message.Message, createdAt, lastModified time.Time) *State {
	return &State{
		name:         name,
		cfg:          cfg,
		createdAt:    createdAt,
		messages:     msgs,
		lastModified: lastModified,
	}
}

// Name returns the immutable queue name.
func (s *State) Name() string { return s.name }

// Config returns the immutable queue configuration.
func (s *State) Config() Config { return s.cfg }

// CreatedAt returns the immutable creation timestamp.
func (s *State) CreatedAt() time.Time { return s.createdAt }

// Push validates raw under the declared type, then appends the message at
// the back. Validation runs before the guard so invalid messages are
// rejected without contending with other producers.
func (s *State) Push(declared message.Type, raw []byte) (message.Message, error) {
	content, err := message.Validate(declared, raw, s.cfg.Type)
	if err != nil {
		return message.Message{}, err
	}
	msg := message.New(declared, content)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleted {
		return message.Message{}, fmt.Errorf("%w: %s", ErrNotFound, s.name)
	}
	// The queue type is immutable; re-check while serialized anyway.
	if declared != s.cfg.Type {
		return message.Message{}, fmt.Errorf("%w: declared %q, queue accepts %q", message.ErrTypeMismatch, declared, s.cfg.Type)
	}
	if len(s.messages) >= s.cfg.MaxMessages {
		return message.Message{}, fmt.Errorf("%w: %s holds %d messages", ErrQueueFull, s.name, s.cfg.MaxMessages)
	}
	s.messages = append(s.messages, msg)
	s.touchLocked()
	return msg, nil
}

// Pull removes and returns the oldest message. ok is false when the queue is
// empty, which is a normal outcome, not a failure. err is non-nil only when
// the queue was deleted underneath the caller.
func (s *State) Pull() (message.Message, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleted {
		return message.Message{}, false, fmt.Errorf("%w: %s", ErrNotFound, s.name)
	}
	if len(s.messages) == 0 {
		return message.Message{}, false, nil
	}
	msg := s.messages[0]
	s.messages[0] = message.Message{}
	s.messages = s.messages[1:]
	s.touchLocked()
	return msg, true, nil
}

// Info reads the count and timestamps under the guard; it never copies
// messages.
func (s *State) Info() (Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleted {
		return Info{}, fmt.Errorf("%w: %s", ErrNotFound, s.name)
	}
	return s.infoLocked(), nil
}

// Len returns the current message count.
func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Dirty reports whether the queue has mutations not yet snapshotted.
func (s *State) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Snapshot copies messages and metadata under the guard. The copy is the
// caller's to serialize; the guard is held only for the copy.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := make([]message.Message, len(s.messages))
	copy(msgs, s.messages)
	return Snapshot{
		Name:         s.name,
		Config:       s.cfg,
		CreatedAt:    s.createdAt,
		LastModified: s.lastModified,
		Messages:     msgs,
		Version:      s.version,
	}
}

// ClearDirty clears the dirty flag only if no mutation happened since the
// snapshot carrying version was taken. Returns false when the queue mutated
// concurrently and must stay scheduled for the next cycle.
func (s *State) ClearDirty(version uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version != version {
		return false
	}
	s.dirty = false
	return true
}

func (s *State) touchLocked() {
	s.dirty = true
	s.version++
	s.lastModified = time.Now().UTC()
}

func (s *State) infoLocked() Info {
	return Info{
		Name:         s.name,
		Type:         s.cfg.Type,
		MessageCount: len(s.messages),
		MaxMessages:  s.cfg.MaxMessages,
		CreatedAt:    s.createdAt,
		LastModified: s.lastModified,
	}
}
