package domain

import (
	"encoding/json"
	"time"
)

// Event is an append-only audit record of every inbound webhook delivery and
// user-submitted custom event, regardless of whether it was also mapped into
// a typed resource document. Events are write-once, never mutated or deleted.
type Event struct {
	ID         string          `json:"id" bson:"_id,omitempty"`
	ShopID     string          `json:"shop_id" bson:"shop_id"`
	Topic      string          `json:"topic" bson:"topic"`
	Payload    json.RawMessage `json:"payload" bson:"-"`
	ReceivedAt time.Time       `json:"received_at" bson:"received_at"`
}
