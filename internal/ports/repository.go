package ports

import (
	"context"

	"shopsync-core/internal/domain"
)

// ShopRepository defines the interface for shop (tenant) persistence.
type ShopRepository interface {
	// Save creates or replaces a shop keyed by its canonical domain.
	Save(ctx context.Context, shop *domain.Shop) error
	// FindByDomain returns the shop for a canonical domain, nil when absent.
	FindByDomain(ctx context.Context, shopDomain string) (*domain.Shop, error)
	// FindByAnyDomain resolves a shop by any of its candidate alias domains
	// (raw input, bare subdomain, post-verification canonical form).
	FindByAnyDomain(ctx context.Context, candidates []string) (*domain.Shop, error)
	// ListByStatus returns every shop in the given status.
	ListByStatus(ctx context.Context, status string) ([]*domain.Shop, error)
}

// ResourceRepository persists mapped resource documents via unordered bulk
// upserts keyed by (shopId, externalId). Each call returns the number of
// affected records; an empty batch is a zero no-op.
type ResourceRepository interface {
	UpsertCustomers(ctx context.Context, customers []*domain.Customer) (int64, error)
	UpsertOrders(ctx context.Context, orders []*domain.Order) (int64, error)
	UpsertProducts(ctx context.Context, products []*domain.Product) (int64, error)
}

// EventRepository appends immutable audit events.
type EventRepository interface {
	Append(ctx context.Context, event *domain.Event) error
}

// DeliveryDeduper suppresses duplicate webhook deliveries by their upstream
// delivery id within a recent window.
type DeliveryDeduper interface {
	// MarkSeen records the delivery id and reports whether it was already
	// seen. An empty id is never considered seen.
	MarkSeen(ctx context.Context, deliveryID string) (bool, error)
}
