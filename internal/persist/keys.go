package persist

import "strings"

const (
	registryKeyName = "registry"
	queueKeyPrefix  = "queue/"
)

// RegistryKey returns the key of the single registry record.
func RegistryKey() []byte { return []byte(registryKeyName) }

// QueueKey returns the key of one queue's snapshot record.
func QueueKey(name string) []byte { return []byte(queueKeyPrefix + name) }

// QueuePrefix returns the shared prefix of all queue snapshot records.
func QueuePrefix() []byte { return []byte(queueKeyPrefix) }

// QueueNameFromKey extracts the queue name from a snapshot record key.
func QueueNameFromKey(key []byte) (string, bool) {
	s := string(key)
	if !strings.HasPrefix(s, queueKeyPrefix) {
		return "", false
	}
	return s[len(queueKeyPrefix):], true
}
