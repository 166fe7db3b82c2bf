package application

import (
	"context"
	"time"

	"shopsync-core/internal/domain"
	"shopsync-core/internal/infrastructure/metrics"
	"shopsync-core/internal/ports"

	"github.com/rs/zerolog"
)

// Scheduler periodically resyncs every active shop. Each tick runs one
// sequential sweep: shops are processed one at a time, and a failure on one
// is caught and classified before moving to the next, so a stuck shop delays
// but never corrupts its siblings' processing.
type Scheduler struct {
	shops    ports.ShopRepository
	gateway  ports.StorefrontGateway
	syncs    *SyncService
	interval time.Duration
	logger   zerolog.Logger
}

// NewScheduler creates a scheduler sweeping at the given interval.
func NewScheduler(shops ports.ShopRepository, gateway ports.StorefrontGateway, syncs *SyncService, interval time.Duration, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		shops:    shops,
		gateway:  gateway,
		syncs:    syncs,
		interval: interval,
		logger:   logger,
	}
}

// Start runs the sweep loop until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("Scheduler started")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Scheduler stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep resyncs every active shop once, sequentially.
func (s *Scheduler) Sweep(ctx context.Context) {
	shops, err := s.shops.ListByStatus(ctx, domain.ShopStatusActive)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list active shops for sweep")
		return
	}

	s.logger.Info().Int("shops", len(shops)).Msg("Starting scheduled sweep")
	for _, shop := range shops {
		s.syncOne(ctx, shop)
	}
}

// syncOne runs the full per-shop pipeline and classifies any failure:
// invalid domains and upstream 401/403/404 pause the shop (the only
// active → paused transition in the system, and one-way from here); all
// other failures leave it active for the next tick.
func (s *Scheduler) syncOne(ctx context.Context, shop *domain.Shop) {
	err := s.runShop(ctx, shop)
	if err == nil {
		metrics.SyncsTotal.WithLabelValues("ok").Inc()
		return
	}
	metrics.SyncsTotal.WithLabelValues("error").Inc()

	if !domain.IsFatalSyncError(err) {
		s.logger.Warn().
			Err(err).
			Str("shop", shop.Domain).
			Msg("Transient sync failure, shop stays active")
		return
	}

	shop.Status = domain.ShopStatusPaused
	shop.LastError = &domain.SyncError{
		Message: err.Error(),
		Status:  domain.ErrorStatus(err),
		At:      time.Now().UTC(),
	}
	if saveErr := s.shops.Save(ctx, shop); saveErr != nil {
		s.logger.Error().Err(saveErr).Str("shop", shop.Domain).Msg("Failed to persist pause")
		return
	}

	metrics.ShopsPaused.Inc()
	s.logger.Error().
		Err(err).
		Str("shop", shop.Domain).
		Int("status", shop.LastError.Status).
		Msg("Fatal sync failure, shop paused")
}

func (s *Scheduler) runShop(ctx context.Context, shop *domain.Shop) error {
	canonical, err := domain.NormalizeShopDomain(shop.Domain)
	if err != nil {
		return err
	}
	if canonical != shop.Domain {
		shop.Domain = canonical
		if err := s.shops.Save(ctx, shop); err != nil {
			return err
		}
	}

	verified, err := s.gateway.VerifyShop(ctx, shop)
	if err != nil {
		return err
	}
	if verified != shop.Domain {
		s.logger.Info().
			Str("shop", shop.Domain).
			Str("canonical", verified).
			Msg("Persisting canonical domain correction")
		shop.Domain = verified
		if err := s.shops.Save(ctx, shop); err != nil {
			return err
		}
	}

	if _, err := s.syncs.SyncShop(ctx, shop, nil); err != nil {
		return err
	}

	now := time.Now().UTC()
	shop.LastSyncedAt = &now
	return s.shops.Save(ctx, shop)
}
