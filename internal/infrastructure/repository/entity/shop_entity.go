package entity

import (
	"time"

	"shopsync-core/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoShopDoc represents a shop in MongoDB.
type MongoShopDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Domain       string             `bson:"domain"`
	AccessToken  string             `bson:"accessToken"`
	APIVersion   string             `bson:"apiVersion"`
	Status       string             `bson:"status"`
	LastSyncedAt *time.Time         `bson:"lastSyncedAt,omitempty"`
	LastError    *MongoSyncErrorDoc `bson:"lastError,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

// MongoSyncErrorDoc is the embedded diagnostic snapshot for a paused shop.
type MongoSyncErrorDoc struct {
	Message string    `bson:"message"`
	Status  int       `bson:"status,omitempty"`
	At      time.Time `bson:"at"`
}

// ToDomain converts the MongoDB document to a domain entity.
func (d *MongoShopDoc) ToDomain() *domain.Shop {
	shop := &domain.Shop{
		ID:           d.ID.Hex(),
		Domain:       d.Domain,
		AccessToken:  d.AccessToken,
		APIVersion:   d.APIVersion,
		Status:       d.Status,
		LastSyncedAt: d.LastSyncedAt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.LastError != nil {
		shop.LastError = &domain.SyncError{
			Message: d.LastError.Message,
			Status:  d.LastError.Status,
			At:      d.LastError.At,
		}
	}
	return shop
}

// MongoShopDocFromDomain converts a domain entity to a MongoDB document.
func MongoShopDocFromDomain(shop *domain.Shop) *MongoShopDoc {
	doc := &MongoShopDoc{
		Domain:       shop.Domain,
		AccessToken:  shop.AccessToken,
		APIVersion:   shop.APIVersion,
		Status:       shop.Status,
		LastSyncedAt: shop.LastSyncedAt,
		CreatedAt:    shop.CreatedAt,
		UpdatedAt:    shop.UpdatedAt,
	}
	if shop.LastError != nil {
		doc.LastError = &MongoSyncErrorDoc{
			Message: shop.LastError.Message,
			Status:  shop.LastError.Status,
			At:      shop.LastError.At,
		}
	}
	if shop.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(shop.ID); err == nil {
			doc.ID = objID
		}
	}
	return doc
}
