package repository

import (
	"context"
	"fmt"
	"time"

	"shopsync-core/internal/domain"
	"shopsync-core/internal/infrastructure/repository/entity"
	"shopsync-core/internal/ports"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoEventRepository implements EventRepository using MongoDB. Events are
// insert-only: there is no update or delete path.
type MongoEventRepository struct {
	collection *mongo.Collection
}

// NewMongoEventRepository creates a new MongoDB event repository.
func NewMongoEventRepository(db *mongo.Database) ports.EventRepository {
	return &MongoEventRepository{collection: db.Collection("events")}
}

// Append writes one audit event.
func (r *MongoEventRepository) Append(ctx context.Context, event *domain.Event) error {
	doc := entity.MongoEventDocFromDomain(event)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if doc.ReceivedAt.IsZero() {
		doc.ReceivedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	return nil
}
