package dedup

import (
	"context"
	"fmt"
	"time"

	"shopsync-core/internal/ports"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// seenTTL is how long a delivery id is remembered. Shopify redelivers failed
// webhooks for up to 48h, but duplicates in practice arrive within minutes.
const seenTTL = 24 * time.Hour

// RedisDeduper implements delivery dedup with a SETNX guard per delivery id.
type RedisDeduper struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisDeduper creates a Redis-backed delivery deduper.
func NewRedisDeduper(client *redis.Client, logger zerolog.Logger) ports.DeliveryDeduper {
	return &RedisDeduper{client: client, logger: logger}
}

// MarkSeen records the delivery id and reports whether it was already seen.
func (d *RedisDeduper) MarkSeen(ctx context.Context, deliveryID string) (bool, error) {
	if deliveryID == "" {
		return false, nil
	}

	key := "webhook:delivery:" + deliveryID
	created, err := d.client.SetNX(ctx, key, 1, seenTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check delivery id: %w", err)
	}

	return !created, nil
}

// NoopDeduper is used when no Redis instance is configured; every delivery
// is treated as first-seen and the upsert's natural idempotence applies.
type NoopDeduper struct{}

// MarkSeen always reports first-seen.
func (NoopDeduper) MarkSeen(ctx context.Context, deliveryID string) (bool, error) {
	return false, nil
}
