package persist

import (
	"encoding/json"
	"time"

	"github.com/midani-47/Message-Queues/internal/message"
	"github.com/midani-47/Message-Queues/internal/queue"
)

// registryEntry is one queue's row in the registry record. The row pins the
// queue's immutable configuration so recovery can rebuild the queue even when
// its snapshot record is missing.
type registryEntry struct {
	Config    queue.Config `json:"config"`
	CreatedAt time.Time    `json:"created_at"`
}

// registryRecord maps queue name to its registry row. The record is rewritten
// as a whole on every create and delete.
type registryRecord map[string]registryEntry

// queueRecord is the durable snapshot of one queue's contents, oldest message
// first.
type queueRecord struct {
	LastModified time.Time         `json:"last_modified"`
	Messages     []message.Message `json:"messages"`
}

func encodeRegistry(rec registryRecord) ([]byte, error) {
	return json.Marshal(rec)
}

func decodeRegistry(raw []byte) (registryRecord, error) {
	var rec registryRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func encodeQueue(snap queue.Snapshot) ([]byte, error) {
	return json.Marshal(queueRecord{
		LastModified: snap.LastModified,
		Messages:     snap.Messages,
	})
}

func decodeQueue(raw []byte) (queueRecord, error) {
	var rec queueRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return queueRecord{}, err
	}
	return rec, nil
}
