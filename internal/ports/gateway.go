package ports

import (
	"context"
	"net/url"

	"shopsync-core/internal/domain"
)

// StorefrontGateway is the outbound port to one platform's Admin API.
type StorefrontGateway interface {
	// FetchAll drives cursor pagination for a resource path to exhaustion and
	// returns every record in arrival order. resultKey names the array in
	// each page body (e.g. "orders" for "orders.json"). Failures carry
	// status, shop domain, path, and an actionable hint.
	FetchAll(ctx context.Context, shop *domain.Shop, path, resultKey string, params url.Values) ([]map[string]interface{}, error)

	// VerifyShop issues one lightweight identity call for the shop's
	// credentials and returns the platform's own canonical hostname, which
	// may differ from the stored one after a rename.
	VerifyShop(ctx context.Context, shop *domain.Shop) (string, error)
}
