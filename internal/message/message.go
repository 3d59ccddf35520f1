package message

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/midani-47/Message-Queues/pkg/id"
)

// Type tags the two kinds of work items the broker carries.
type Type string

const (
	TypeTransaction Type = "transaction"
	TypePrediction  Type = "prediction"
)

// ParseType maps a wire tag to a Type.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeTransaction, TypePrediction:
		return Type(s), nil
	}
	return "", fmt.Errorf("message: unknown type %q", s)
}

// Valid reports whether t is a known tag.
func (t Type) Valid() bool { return t == TypeTransaction || t == TypePrediction }

// requiredFields drives validation and decides which members belong to the
// typed variant; everything else lands in Content.Extra.
var requiredFields = map[Type][]string{
	TypeTransaction: {"transaction_id", "customer_id", "amount", "vendor_id"},
	TypePrediction:  {"transaction_id", "prediction", "confidence"},
}

// RequiredFields returns the field names a content object must carry for typ.
func RequiredFields(typ Type) []string {
	return append([]string(nil), requiredFields[typ]...)
}

// Transaction is the typed field set of a transaction message.
type Transaction struct {
	TransactionID string  `json:"transaction_id"`
	CustomerID    string  `json:"customer_id"`
	Amount        float64 `json:"amount"`
	VendorID      string  `json:"vendor_id"`
}

// Prediction is the typed field set of a prediction message.
type Prediction struct {
	TransactionID string  `json:"transaction_id"`
	Prediction    bool    `json:"prediction"`
	Confidence    float64 `json:"confidence"`
}

// Content is a two-variant union of message payloads. Exactly one variant is
// set, matching the type the content was decoded under. JSON members outside
// the variant's field set are preserved byte-for-byte in Extra.
type Content struct {
	Transaction *Transaction
	Prediction  *Prediction
	Extra       map[string]json.RawMessage
}

// DecodeContent parses raw as the given variant. Every required field for
// typ must be present and must coerce to the variant's field type.
func DecodeContent(typ Type, raw []byte) (Content, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return Content{}, fmt.Errorf("%w: content is not a JSON object", ErrInvalidContent)
	}
	for _, f := range requiredFields[typ] {
		if _, ok := members[f]; !ok {
			return Content{}, fmt.Errorf("%w: missing required field %q", ErrInvalidContent, f)
		}
	}

	var c Content
	switch typ {
	case TypeTransaction:
		var v Transaction
		if err := json.Unmarshal(raw, &v); err != nil {
			return Content{}, fmt.Errorf("%w: %v", ErrInvalidContent, err)
		}
		c.Transaction = &v
	case TypePrediction:
		var v Prediction
		if err := json.Unmarshal(raw, &v); err != nil {
			return Content{}, fmt.Errorf("%w: %v", ErrInvalidContent, err)
		}
		c.Prediction = &v
	default:
		return Content{}, fmt.Errorf("message: unknown type %q", typ)
	}

	for _, f := range requiredFields[typ] {
		delete(members, f)
	}
	if len(members) > 0 {
		c.Extra = members
	}
	return c, nil
}

// MarshalJSON flattens the variant fields and Extra into a single object.
func (c Content) MarshalJSON() ([]byte, error) {
	members := make(map[string]json.RawMessage, len(c.Extra)+4)
	for k, v := range c.Extra {
		members[k] = v
	}
	var variant any
	switch {
	case c.Transaction != nil:
		variant = c.Transaction
	case c.Prediction != nil:
		variant = c.Prediction
	}
	if variant != nil {
		b, err := json.Marshal(variant)
		if err != nil {
			return nil, err
		}
		var vm map[string]json.RawMessage
		if err := json.Unmarshal(b, &vm); err != nil {
			return nil, err
		}
		for k, v := range vm {
			members[k] = v
		}
	}
	return json.Marshal(members)
}

// Message is one immutable unit of work. Ownership moves producer to queue
// at push and queue to consumer at pull; it is never duplicated.
type Message struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Content   Content   `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// New constructs a message with a fresh id and the current time.
func New(typ Type, content Content) Message {
	return Message{
		ID:        id.New(),
		Type:      typ,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// UnmarshalJSON decodes the type tag first so the content lands in the right
// variant.
func (m *Message) UnmarshalJSON(b []byte) error {
	var wire struct {
		ID        string          `json:"id"`
		Type      string          `json:"type"`
		Content   json.RawMessage `json:"content"`
		CreatedAt time.Time       `json:"created_at"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	typ, err := ParseType(wire.Type)
	if err != nil {
		return err
	}
	content, err := DecodeContent(typ, wire.Content)
	if err != nil {
		return err
	}
	*m = Message{ID: wire.ID, Type: typ, Content: content, CreatedAt: wire.CreatedAt}
	return nil
}
