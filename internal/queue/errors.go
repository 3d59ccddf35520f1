package queue

import "errors"

var (
	// ErrNotFound reports an operation against a queue name that is not
	// registered (or was deleted mid-flight).
	ErrNotFound = errors.New("queue not found")
	// ErrAlreadyExists reports a create with a taken name.
	ErrAlreadyExists = errors.New("queue already exists")
	// ErrInvalidName reports a create with a name that is empty or not purely
	// alphanumeric.
	ErrInvalidName = errors.New("invalid queue name")
	// ErrInvalidConfig reports a create with a non-positive bound or interval,
	// or an unknown queue type.
	ErrInvalidConfig = errors.New("invalid queue config")
	// ErrQueueFull reports a push against a queue at capacity.
	ErrQueueFull = errors.New("queue is full")
)
