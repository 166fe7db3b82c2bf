package entity

import (
	"encoding/json"
	"time"

	"shopsync-core/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoEventDoc represents one audit event in MongoDB. The payload is stored
// as a native BSON document when it parses as JSON, and as a raw string
// otherwise, so a malformed delivery still leaves an audit trail.
type MongoEventDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ShopID     string             `bson:"shopId"`
	Topic      string             `bson:"topic"`
	Payload    interface{}        `bson:"payload,omitempty"`
	RawPayload string             `bson:"rawPayload,omitempty"`
	ReceivedAt time.Time          `bson:"receivedAt"`
}

// MongoEventDocFromDomain converts a domain event to a MongoDB document.
func MongoEventDocFromDomain(event *domain.Event) *MongoEventDoc {
	doc := &MongoEventDoc{
		ShopID:     event.ShopID,
		Topic:      event.Topic,
		ReceivedAt: event.ReceivedAt,
	}
	if len(event.Payload) > 0 {
		var parsed map[string]interface{}
		if err := json.Unmarshal(event.Payload, &parsed); err == nil {
			doc.Payload = bson.M(parsed)
		} else {
			doc.RawPayload = string(event.Payload)
		}
	}
	return doc
}
