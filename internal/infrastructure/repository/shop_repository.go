package repository

import (
	"context"
	"fmt"
	"time"

	"shopsync-core/internal/domain"
	"shopsync-core/internal/infrastructure/repository/entity"
	"shopsync-core/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoShopRepository implements ShopRepository using MongoDB.
type MongoShopRepository struct {
	collection *mongo.Collection
}

// NewMongoShopRepository creates a new MongoDB shop repository.
func NewMongoShopRepository(db *mongo.Database) ports.ShopRepository {
	collection := db.Collection("shops")

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "domain", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = collection.Indexes().CreateOne(context.Background(), indexModel)

	return &MongoShopRepository{collection: collection}
}

// Save creates or replaces a shop. Existing records are matched by id so a
// canonical-domain correction updates the record in place instead of
// spawning a second one under the new hostname.
func (r *MongoShopRepository) Save(ctx context.Context, shop *domain.Shop) error {
	doc := entity.MongoShopDocFromDomain(shop)
	doc.UpdatedAt = time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"domain": shop.Domain}
	if !doc.ID.IsZero() {
		filter = bson.M{"_id": doc.ID}
		doc.ID = primitive.NilObjectID
	}
	update := bson.M{"$set": doc}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save shop: %w", err)
	}

	return nil
}

// FindByDomain retrieves a shop by its canonical domain.
func (r *MongoShopRepository) FindByDomain(ctx context.Context, shopDomain string) (*domain.Shop, error) {
	var doc entity.MongoShopDoc
	filter := bson.M{"domain": shopDomain}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}

	return doc.ToDomain(), nil
}

// FindByAnyDomain resolves a shop by any of its candidate alias domains in a
// single lookup, so registrations arriving under a raw input, bare subdomain,
// or post-verification canonical form all reconcile to one record.
func (r *MongoShopRepository) FindByAnyDomain(ctx context.Context, candidates []string) (*domain.Shop, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	var doc entity.MongoShopDoc
	filter := bson.M{"domain": bson.M{"$in": candidates}}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve shop by aliases: %w", err)
	}

	return doc.ToDomain(), nil
}

// ListByStatus retrieves every shop in the given status, oldest-synced first
// so the scheduler sweeps the stalest shops before the rest.
func (r *MongoShopRepository) ListByStatus(ctx context.Context, status string) ([]*domain.Shop, error) {
	opts := options.Find().SetSort(bson.D{{Key: "lastSyncedAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	defer cursor.Close(ctx)

	var shops []*domain.Shop
	for cursor.Next(ctx) {
		var doc entity.MongoShopDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode shop: %w", err)
		}
		shops = append(shops, doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return shops, nil
}
