package application

import (
	"context"
	"net/url"
	"testing"
	"time"

	"shopsync-core/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduler(shops *fakeShopRepo, gateway *fakeGateway) *Scheduler {
	syncs := NewSyncService(gateway, &fakeResourceRepo{}, zerolog.Nop())
	return NewScheduler(shops, gateway, syncs, time.Minute, zerolog.Nop())
}

func TestSweepSuccessStampsLastSynced(t *testing.T) {
	shops := newFakeShopRepo(activeShop())
	gateway := &fakeGateway{pages: map[string][]map[string]interface{}{
		"customers.json": rawRecords("1"),
		"orders.json":    rawRecords("2"),
		"products.json":  rawRecords("3"),
	}}

	newScheduler(shops, gateway).Sweep(context.Background())

	shop, err := shops.FindByDomain(context.Background(), "acme.myshopify.com")
	require.NoError(t, err)
	require.NotNil(t, shop)
	assert.Equal(t, domain.ShopStatusActive, shop.Status)
	require.NotNil(t, shop.LastSyncedAt)
	assert.WithinDuration(t, time.Now(), *shop.LastSyncedAt, time.Minute)
}

func TestSweepPausesShopOnAuthFailure(t *testing.T) {
	shops := newFakeShopRepo(activeShop())
	gateway := &fakeGateway{
		verifyErr: &domain.APIError{Status: 401, Domain: "acme.myshopify.com", Path: "shop.json", Hint: domain.HintForStatus(401)},
	}

	newScheduler(shops, gateway).Sweep(context.Background())

	shop, err := shops.FindByDomain(context.Background(), "acme.myshopify.com")
	require.NoError(t, err)
	require.NotNil(t, shop)
	assert.Equal(t, domain.ShopStatusPaused, shop.Status)
	require.NotNil(t, shop.LastError)
	assert.NotEmpty(t, shop.LastError.Message)
	assert.Equal(t, 401, shop.LastError.Status)
	assert.False(t, shop.LastError.At.IsZero())
}

func TestSweepKeepsShopActiveOnTransientFailure(t *testing.T) {
	shops := newFakeShopRepo(activeShop())
	gateway := &fakeGateway{
		fetchErrs: map[string]error{
			"customers.json": &domain.APIError{Domain: "acme.myshopify.com", Path: "customers.json", Hint: "request did not complete, network error or timeout", Err: context.DeadlineExceeded},
		},
	}

	newScheduler(shops, gateway).Sweep(context.Background())

	shop, err := shops.FindByDomain(context.Background(), "acme.myshopify.com")
	require.NoError(t, err)
	require.NotNil(t, shop)
	assert.Equal(t, domain.ShopStatusActive, shop.Status)
	assert.Nil(t, shop.LastError)
	assert.Nil(t, shop.LastSyncedAt)
}

func TestSweepPausesShopWithInvalidStoredDomain(t *testing.T) {
	broken := activeShop()
	broken.Domain = "shop.example.com"
	shops := newFakeShopRepo(broken)

	newScheduler(shops, &fakeGateway{}).Sweep(context.Background())

	shop, err := shops.FindByDomain(context.Background(), "shop.example.com")
	require.NoError(t, err)
	require.NotNil(t, shop)
	assert.Equal(t, domain.ShopStatusPaused, shop.Status)
	require.NotNil(t, shop.LastError)
}

func TestSweepPersistsCanonicalDomainCorrection(t *testing.T) {
	shops := newFakeShopRepo(activeShop())
	gateway := &fakeGateway{
		verifyDomain: "acme-renamed.myshopify.com",
		pages:        map[string][]map[string]interface{}{},
	}

	newScheduler(shops, gateway).Sweep(context.Background())

	renamed, err := shops.FindByDomain(context.Background(), "acme-renamed.myshopify.com")
	require.NoError(t, err)
	require.NotNil(t, renamed)
	assert.Equal(t, domain.ShopStatusActive, renamed.Status)

	old, err := shops.FindByDomain(context.Background(), "acme.myshopify.com")
	require.NoError(t, err)
	assert.Nil(t, old)
}

func TestSweepIsolatesFailuresBetweenShops(t *testing.T) {
	healthy := activeShop()
	sick := &domain.Shop{
		ID:          "shop-2",
		Domain:      "broken.myshopify.com",
		AccessToken: "shpat_revoked",
		Status:      domain.ShopStatusActive,
	}
	shops := newFakeShopRepo(healthy, sick)
	gateway := &brokenShopGateway{
		inner:  &fakeGateway{pages: map[string][]map[string]interface{}{}},
		broken: "broken.myshopify.com",
	}

	syncs := NewSyncService(gateway, &fakeResourceRepo{}, zerolog.Nop())
	NewScheduler(shops, gateway, syncs, time.Minute, zerolog.Nop()).Sweep(context.Background())

	ok, _ := shops.FindByDomain(context.Background(), "acme.myshopify.com")
	require.NotNil(t, ok)
	assert.Equal(t, domain.ShopStatusActive, ok.Status)
	assert.NotNil(t, ok.LastSyncedAt)

	paused, _ := shops.FindByDomain(context.Background(), "broken.myshopify.com")
	require.NotNil(t, paused)
	assert.Equal(t, domain.ShopStatusPaused, paused.Status)
}

// brokenShopGateway fails verification for one shop and delegates the rest.
type brokenShopGateway struct {
	inner  *fakeGateway
	broken string
}

func (g *brokenShopGateway) FetchAll(ctx context.Context, shop *domain.Shop, path, resultKey string, params url.Values) ([]map[string]interface{}, error) {
	return g.inner.FetchAll(ctx, shop, path, resultKey, params)
}

func (g *brokenShopGateway) VerifyShop(ctx context.Context, shop *domain.Shop) (string, error) {
	if shop.Domain == g.broken {
		return "", &domain.APIError{Status: 404, Domain: shop.Domain, Path: "shop.json", Hint: domain.HintForStatus(404)}
	}
	return g.inner.VerifyShop(ctx, shop)
}
