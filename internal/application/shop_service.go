package application

import (
	"context"
	"fmt"
	"time"

	"shopsync-core/internal/domain"
	"shopsync-core/internal/ports"

	"github.com/rs/zerolog"
)

// ShopService handles shop registration and lifecycle plumbing around the
// sync engine.
type ShopService struct {
	shops   ports.ShopRepository
	gateway ports.StorefrontGateway
	logger  zerolog.Logger
}

// NewShopService creates a new shop service.
func NewShopService(shops ports.ShopRepository, gateway ports.StorefrontGateway, logger zerolog.Logger) *ShopService {
	return &ShopService{
		shops:   shops,
		gateway: gateway,
		logger:  logger,
	}
}

// Register onboards (or re-onboards) a shop: normalize the supplied domain,
// verify the credential pair against the platform, and reconcile any alias
// the shop may already be registered under to a single record. The platform's
// canonical hostname wins over the caller's input. Re-registration
// reactivates a paused shop and clears its diagnostic snapshot.
func (s *ShopService) Register(ctx context.Context, rawDomain, accessToken, apiVersion string) (*domain.Shop, error) {
	canonical, err := domain.NormalizeShopDomain(rawDomain)
	if err != nil {
		return nil, err
	}

	shop := &domain.Shop{
		Domain:      canonical,
		AccessToken: accessToken,
		APIVersion:  apiVersion,
		Status:      domain.ShopStatusActive,
	}

	verified, err := s.gateway.VerifyShop(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("credential verification failed: %w", err)
	}

	candidates := domain.DomainCandidates(rawDomain, canonical)
	if verified != canonical {
		candidates = append(candidates, verified)
	}

	existing, err := s.shops.FindByAnyDomain(ctx, candidates)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		shop.ID = existing.ID
		shop.CreatedAt = existing.CreatedAt
		shop.LastSyncedAt = existing.LastSyncedAt
	}
	shop.Domain = verified
	shop.LastError = nil

	if err := s.shops.Save(ctx, shop); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("shop", shop.Domain).
		Bool("reconciled", existing != nil).
		Msg("Shop registered")

	// Re-read so a freshly created record comes back with its id.
	return s.shops.FindByDomain(ctx, shop.Domain)
}

// GetByDomain resolves a shop by canonical domain or any known alias form of
// the supplied input.
func (s *ShopService) GetByDomain(ctx context.Context, rawDomain string) (*domain.Shop, error) {
	canonical, err := domain.NormalizeShopDomain(rawDomain)
	if err != nil {
		return nil, err
	}
	return s.shops.FindByAnyDomain(ctx, domain.DomainCandidates(rawDomain, canonical))
}

// Resume is the external action that moves a paused shop back to active; the
// scheduler itself never un-pauses.
func (s *ShopService) Resume(ctx context.Context, rawDomain string) (*domain.Shop, error) {
	shop, err := s.GetByDomain(ctx, rawDomain)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, nil
	}

	shop.Status = domain.ShopStatusActive
	shop.LastError = nil
	shop.UpdatedAt = time.Now()
	if err := s.shops.Save(ctx, shop); err != nil {
		return nil, err
	}

	s.logger.Info().Str("shop", shop.Domain).Msg("Shop resumed")
	return shop, nil
}
