package application

import (
	"context"
	"net/url"

	"shopsync-core/internal/domain"
)

// In-package fakes for the outbound ports. Kept deliberately dumb: they
// record calls and replay canned answers.

type fakeGateway struct {
	pages      map[string][]map[string]interface{} // keyed by resource path
	fetchErrs  map[string]error
	fetchCalls []string

	verifyDomain string
	verifyErr    error
	verifyCalls  int
}

func (g *fakeGateway) FetchAll(ctx context.Context, shop *domain.Shop, path, resultKey string, params url.Values) ([]map[string]interface{}, error) {
	g.fetchCalls = append(g.fetchCalls, path)
	if err := g.fetchErrs[path]; err != nil {
		return nil, err
	}
	return g.pages[path], nil
}

func (g *fakeGateway) VerifyShop(ctx context.Context, shop *domain.Shop) (string, error) {
	g.verifyCalls++
	if g.verifyErr != nil {
		return "", g.verifyErr
	}
	if g.verifyDomain != "" {
		return g.verifyDomain, nil
	}
	return shop.Domain, nil
}

// fakeResourceRepo honors the real writer's contract: a second write to the
// same (shop id, external id) replaces the stored record in place, so there
// is never more than one record per key.
type fakeResourceRepo struct {
	customers []*domain.Customer
	orders    []*domain.Order
	products  []*domain.Product
	upsertErr error
}

func (r *fakeResourceRepo) UpsertCustomers(ctx context.Context, customers []*domain.Customer) (int64, error) {
	if r.upsertErr != nil {
		return 0, r.upsertErr
	}
	for _, c := range customers {
		replaced := false
		for i, existing := range r.customers {
			if existing.ShopID == c.ShopID && existing.ExternalID == c.ExternalID {
				r.customers[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			r.customers = append(r.customers, c)
		}
	}
	return int64(len(customers)), nil
}

func (r *fakeResourceRepo) UpsertOrders(ctx context.Context, orders []*domain.Order) (int64, error) {
	if r.upsertErr != nil {
		return 0, r.upsertErr
	}
	for _, o := range orders {
		replaced := false
		for i, existing := range r.orders {
			if existing.ShopID == o.ShopID && existing.ExternalID == o.ExternalID {
				r.orders[i] = o
				replaced = true
				break
			}
		}
		if !replaced {
			r.orders = append(r.orders, o)
		}
	}
	return int64(len(orders)), nil
}

func (r *fakeResourceRepo) UpsertProducts(ctx context.Context, products []*domain.Product) (int64, error) {
	if r.upsertErr != nil {
		return 0, r.upsertErr
	}
	for _, p := range products {
		replaced := false
		for i, existing := range r.products {
			if existing.ShopID == p.ShopID && existing.ExternalID == p.ExternalID {
				r.products[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			r.products = append(r.products, p)
		}
	}
	return int64(len(products)), nil
}

type fakeShopRepo struct {
	shops map[string]*domain.Shop // keyed by domain
	saves []*domain.Shop
}

func newFakeShopRepo(shops ...*domain.Shop) *fakeShopRepo {
	repo := &fakeShopRepo{shops: make(map[string]*domain.Shop)}
	for _, s := range shops {
		copied := *s
		repo.shops[s.Domain] = &copied
	}
	return repo
}

func (r *fakeShopRepo) Save(ctx context.Context, shop *domain.Shop) error {
	copied := *shop
	if copied.ID == "" {
		copied.ID = "shop-" + copied.Domain
	}
	for d, existing := range r.shops {
		if existing.ID == copied.ID {
			delete(r.shops, d)
		}
	}
	r.shops[copied.Domain] = &copied
	r.saves = append(r.saves, &copied)
	return nil
}

func (r *fakeShopRepo) FindByDomain(ctx context.Context, shopDomain string) (*domain.Shop, error) {
	if shop, ok := r.shops[shopDomain]; ok {
		copied := *shop
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeShopRepo) FindByAnyDomain(ctx context.Context, candidates []string) (*domain.Shop, error) {
	for _, candidate := range candidates {
		if shop, ok := r.shops[candidate]; ok {
			copied := *shop
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeShopRepo) ListByStatus(ctx context.Context, status string) ([]*domain.Shop, error) {
	var out []*domain.Shop
	for _, shop := range r.shops {
		if shop.Status == status {
			copied := *shop
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeEventRepo struct {
	events    []*domain.Event
	appendErr error
}

func (r *fakeEventRepo) Append(ctx context.Context, event *domain.Event) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.events = append(r.events, event)
	return nil
}

type fakeDeduper struct {
	seen map[string]bool
	err  error
}

func (d *fakeDeduper) MarkSeen(ctx context.Context, deliveryID string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if deliveryID == "" {
		return false, nil
	}
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	was := d.seen[deliveryID]
	d.seen[deliveryID] = true
	return was, nil
}
