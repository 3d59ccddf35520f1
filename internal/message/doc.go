// Package message defines the unit of work carried by queues and the pure
// validation applied before any push.
//
// # Types
//
// A message is tagged with one of two closed types, transaction or
// prediction. Each type names a required field set; content is a union of
// the matching typed variant plus an Extra bag that preserves any JSON
// members outside that set, so producers may attach fields the broker does
// not interpret.
//
// # Validation
//
// Validate is deterministic, side-effect free, and safe to call without any
// lock. A declared type that differs from the queue's configured type is
// reported before any content inspection, so a message aimed at the wrong
// queue always fails with ErrTypeMismatch regardless of its fields.
package message
