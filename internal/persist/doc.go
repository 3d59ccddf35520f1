// Package persist writes and recovers the broker's durable records.
//
// The store holds one registry record under the key "registry" (queue name to
// configuration and creation time) and one snapshot record per queue under
// "queue/<name>" (last-modified time plus the full ordered message list).
// The registry record is rewritten on every create and delete; queue records
// are written by a background loop that ticks once a second and snapshots
// each dirty queue whose persist interval has elapsed. Queue deletion removes
// the snapshot record and rewrites the registry record in one batch.
//
// Snapshots follow a copy-then-write protocol: the message list is copied
// under the queue guard, serialized and written with no lock held, then the
// queue's dirty flag is cleared only if its version still matches the copy.
// A queue that mutated mid-write simply stays dirty for the next cycle, so a
// crash at any point loses at most the mutations since the last completed
// snapshot.
package persist
