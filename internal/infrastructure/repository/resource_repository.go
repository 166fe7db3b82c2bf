package repository

import (
	"context"
	"fmt"

	"shopsync-core/internal/domain"
	"shopsync-core/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoResourceRepository implements ResourceRepository using MongoDB bulk
// writes. Every write is an unordered create-or-replace upsert keyed by
// (shopId, externalId): uniqueness is enforced at write time, never via
// read-then-insert, so concurrent scheduler- and webhook-driven writes for
// the same shop converge on the same key with last-write-wins semantics.
type MongoResourceRepository struct {
	customers *mongo.Collection
	orders    *mongo.Collection
	products  *mongo.Collection
}

// NewMongoResourceRepository creates a new MongoDB resource repository.
func NewMongoResourceRepository(db *mongo.Database) ports.ResourceRepository {
	repo := &MongoResourceRepository{
		customers: db.Collection("customers"),
		orders:    db.Collection("orders"),
		products:  db.Collection("products"),
	}

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "shop_id", Value: 1}, {Key: "external_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, collection := range []*mongo.Collection{repo.customers, repo.orders, repo.products} {
		_, _ = collection.Indexes().CreateOne(context.Background(), indexModel)
	}

	return repo
}

// UpsertCustomers bulk-upserts mapped customer documents.
func (r *MongoResourceRepository) UpsertCustomers(ctx context.Context, customers []*domain.Customer) (int64, error) {
	models := make([]mongo.WriteModel, 0, len(customers))
	for _, c := range customers {
		models = append(models, replaceModel(c.ShopID, c.ExternalID, c))
	}
	return r.bulkUpsert(ctx, r.customers, models)
}

// UpsertOrders bulk-upserts mapped order documents.
func (r *MongoResourceRepository) UpsertOrders(ctx context.Context, orders []*domain.Order) (int64, error) {
	models := make([]mongo.WriteModel, 0, len(orders))
	for _, o := range orders {
		models = append(models, replaceModel(o.ShopID, o.ExternalID, o))
	}
	return r.bulkUpsert(ctx, r.orders, models)
}

// UpsertProducts bulk-upserts mapped product documents.
func (r *MongoResourceRepository) UpsertProducts(ctx context.Context, products []*domain.Product) (int64, error) {
	models := make([]mongo.WriteModel, 0, len(products))
	for _, p := range products {
		models = append(models, replaceModel(p.ShopID, p.ExternalID, p))
	}
	return r.bulkUpsert(ctx, r.products, models)
}

func replaceModel(shopID, externalID string, doc interface{}) mongo.WriteModel {
	return mongo.NewReplaceOneModel().
		SetFilter(bson.M{"shop_id": shopID, "external_id": externalID}).
		SetReplacement(doc).
		SetUpsert(true)
}

// bulkUpsert executes a single unordered bulk operation: a failure on one
// record does not block persistence of the others in the batch. The returned
// count covers created, modified, and matched records.
func (r *MongoResourceRepository) bulkUpsert(ctx context.Context, collection *mongo.Collection, models []mongo.WriteModel) (int64, error) {
	if len(models) == 0 {
		return 0, nil
	}

	opts := options.BulkWrite().SetOrdered(false)
	result, err := collection.BulkWrite(ctx, models, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk upsert into %s: %w", collection.Name(), err)
	}

	return result.UpsertedCount + result.MatchedCount, nil
}
