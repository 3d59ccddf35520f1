// Package queue implements the in-memory core of the broker: named, typed,
// capacity-bounded FIFO queues behind a registry.
//
// # Locking
//
// Locking is striped per queue, never global. The registry's own mutex only
// guards map structure (create, delete, lookup); each State carries the
// exclusive guard serializing push, pull, and delete for that one queue, so
// operations on different queues never contend. Delete acquires the state
// guard while still holding the registry lock, which makes map removal
// atomic with respect to lookups: a lookup that raced ahead of delete either
// completes against the old state or observes the tombstone.
//
// # Dirty tracking
//
// Every mutation bumps a version counter and sets the dirty flag. The
// persistence layer copies a Snapshot under the guard, writes it outside the
// guard, and clears dirty only if the version is still the one it copied, so
// a concurrent mutation keeps the queue scheduled for the next cycle.
package queue
