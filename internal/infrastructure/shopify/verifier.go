package shopify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shopsync-core/internal/domain"

	goshopify "github.com/bold-commerce/go-shopify/v4"
)

// VerifyShop confirms a shop's domain+token pair is live with one lightweight
// shop identity call. On success it returns the platform's own canonical
// hostname, which is authoritative over the caller-supplied one (shops can be
// renamed). Failures carry the same structured error shape as pagination.
func (g *Gateway) VerifyShop(ctx context.Context, shop *domain.Shop) (string, error) {
	if !strings.HasSuffix(shop.Domain, domain.ShopDomainSuffix) {
		return "", fmt.Errorf("cannot verify %q: %w", shop.Domain, domain.ErrInvalidDomain)
	}

	version := shop.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}

	client, err := goshopify.NewClient(goshopify.App{}, shop.Domain, shop.AccessToken, goshopify.WithVersion(version))
	if err != nil {
		return "", fmt.Errorf("failed to create verification client: %w", err)
	}

	info, err := client.Shop.Get(ctx, nil)
	if err != nil {
		return "", verificationError(shop.Domain, err)
	}

	g.logger.Debug().
		Str("shop", shop.Domain).
		Str("canonical", info.MyshopifyDomain).
		Msg("Credential verification succeeded")

	if info.MyshopifyDomain != "" {
		return strings.ToLower(info.MyshopifyDomain), nil
	}
	return shop.Domain, nil
}

// verificationError lifts a go-shopify failure into the engine's error shape,
// preserving the upstream status when one exists.
func verificationError(shopDomain string, err error) error {
	status := 0
	var respErr goshopify.ResponseError
	if errors.As(err, &respErr) {
		status = respErr.Status
	}
	return &domain.APIError{
		Status: status,
		Domain: shopDomain,
		Path:   "shop.json",
		Hint:   domain.HintForStatus(status),
		Err:    err,
	}
}
