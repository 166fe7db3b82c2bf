package shopify

import (
	"context"
	"net/url"

	"shopsync-core/internal/domain"
	"shopsync-core/internal/ports"

	"github.com/rs/zerolog"
)

// Gateway implements the storefront gateway port against the Shopify Admin
// REST API, building a fresh per-shop client for every call.
type Gateway struct {
	retry  RetryConfig
	logger zerolog.Logger
}

// NewGateway creates a gateway with the default retry policy.
func NewGateway(logger zerolog.Logger) *Gateway {
	return NewGatewayWithRetry(DefaultRetryConfig(), logger)
}

// NewGatewayWithRetry creates a gateway with an explicit retry policy.
func NewGatewayWithRetry(retry RetryConfig, logger zerolog.Logger) *Gateway {
	return &Gateway{retry: retry, logger: logger}
}

// FetchAll paginates one resource collection to exhaustion for a shop.
func (g *Gateway) FetchAll(ctx context.Context, shop *domain.Shop, path, resultKey string, params url.Values) ([]map[string]interface{}, error) {
	client, err := NewClient(shop, g.retry, g.logger)
	if err != nil {
		return nil, err
	}
	return client.FetchAll(ctx, path, resultKey, params)
}

var _ ports.StorefrontGateway = (*Gateway)(nil)
