package message

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch reports a declared type that differs from the queue's
	// configured type.
	ErrTypeMismatch = errors.New("message type does not match queue type")
	// ErrInvalidContent reports content that is malformed or missing required
	// fields for its declared type.
	ErrInvalidContent = errors.New("invalid message content")
)

// Validate checks declared against queueType, then decodes raw under the
// declared type's required field set. The mismatch check runs first: content
// problems never mask a routing problem.
func Validate(declared Type, raw []byte, queueType Type) (Content, error) {
	if declared != queueType {
		return Content{}, fmt.Errorf("%w: declared %q, queue accepts %q", ErrTypeMismatch, declared, queueType)
	}
	return DecodeContent(declared, raw)
}
