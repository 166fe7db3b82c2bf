package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"shopsync-core/internal/application/mapper"
	"shopsync-core/internal/domain"
	"shopsync-core/internal/infrastructure/metrics"
	"shopsync-core/internal/ports"

	"github.com/rs/zerolog"
)

// Webhook handling outcomes. "event-only" covers topics that are recorded
// but intentionally never mapped; "unhandled" flags unknown topics without
// failing the delivery.
const (
	WebhookHandledCustomer  = "customer"
	WebhookHandledOrder     = "order"
	WebhookHandledProduct   = "product"
	WebhookHandledEventOnly = "event-only"
	WebhookHandledUnknown   = "unhandled"
	WebhookHandledDuplicate = "duplicate"
	WebhookHandledError     = "error"
)

// WebhookResult reports how one delivery was handled.
type WebhookResult struct {
	Handled string `json:"handled"`
}

// WebhookService normalizes inbound webhook deliveries: every delivery is
// appended to the audit trail, then routed by topic prefix through the same
// mappers and upsert writer as a full sync, on the single payload record.
type WebhookService struct {
	events    ports.EventRepository
	resources ports.ResourceRepository
	deduper   ports.DeliveryDeduper
	logger    zerolog.Logger
}

// NewWebhookService creates a new webhook normalizer.
func NewWebhookService(events ports.EventRepository, resources ports.ResourceRepository, deduper ports.DeliveryDeduper, logger zerolog.Logger) *WebhookService {
	return &WebhookService{
		events:    events,
		resources: resources,
		deduper:   deduper,
		logger:    logger,
	}
}

// Process handles one inbound delivery for an already-resolved shop. The
// topic and shop hostname are assumed extracted (and the signature verified)
// by the routing layer. deliveryID, when present, suppresses redeliveries of
// the same event.
func (s *WebhookService) Process(ctx context.Context, shop *domain.Shop, topic, deliveryID string, payload []byte) (WebhookResult, error) {
	seen, err := s.deduper.MarkSeen(ctx, deliveryID)
	if err != nil {
		// Dedup is best-effort: the upsert key keeps typed writes idempotent
		// even when the guard is unavailable.
		s.logger.Warn().Err(err).Str("shop", shop.Domain).Msg("Delivery dedup check failed, processing anyway")
	} else if seen {
		s.logger.Info().
			Str("shop", shop.Domain).
			Str("topic", topic).
			Str("delivery_id", deliveryID).
			Msg("Skipping duplicate webhook delivery")
		metrics.WebhooksTotal.WithLabelValues(WebhookHandledDuplicate).Inc()
		return WebhookResult{Handled: WebhookHandledDuplicate}, nil
	}

	event := &domain.Event{
		ShopID:     shop.ID,
		Topic:      topic,
		Payload:    payload,
		ReceivedAt: time.Now().UTC(),
	}
	if err := s.events.Append(ctx, event); err != nil {
		metrics.WebhooksTotal.WithLabelValues(WebhookHandledError).Inc()
		return WebhookResult{}, fmt.Errorf("failed to record webhook event: %w", err)
	}

	result, err := s.routeTopic(ctx, shop, topic, payload)
	if err != nil {
		metrics.WebhooksTotal.WithLabelValues(WebhookHandledError).Inc()
		return result, err
	}
	metrics.WebhooksTotal.WithLabelValues(result.Handled).Inc()
	return result, nil
}

func (s *WebhookService) routeTopic(ctx context.Context, shop *domain.Shop, topic string, payload []byte) (WebhookResult, error) {
	switch {
	case strings.HasPrefix(topic, "customers/"):
		record, ok := decodeRecord(payload)
		if !ok {
			return s.eventOnly(shop, topic, "payload is not a JSON object"), nil
		}
		customer := mapper.Customer(record, shop.ID)
		if customer.ExternalID == "" {
			return s.eventOnly(shop, topic, "payload carries no id"), nil
		}
		if _, err := s.resources.UpsertCustomers(ctx, []*domain.Customer{customer}); err != nil {
			return WebhookResult{}, err
		}
		return WebhookResult{Handled: WebhookHandledCustomer}, nil

	case strings.HasPrefix(topic, "orders/"):
		record, ok := decodeRecord(payload)
		if !ok {
			return s.eventOnly(shop, topic, "payload is not a JSON object"), nil
		}
		order := mapper.Order(record, shop.ID)
		if order.ExternalID == "" {
			return s.eventOnly(shop, topic, "payload carries no id"), nil
		}
		if _, err := s.resources.UpsertOrders(ctx, []*domain.Order{order}); err != nil {
			return WebhookResult{}, err
		}
		return WebhookResult{Handled: WebhookHandledOrder}, nil

	case strings.HasPrefix(topic, "products/"):
		record, ok := decodeRecord(payload)
		if !ok {
			return s.eventOnly(shop, topic, "payload is not a JSON object"), nil
		}
		product := mapper.Product(record, shop.ID)
		if product.ExternalID == "" {
			return s.eventOnly(shop, topic, "payload carries no id"), nil
		}
		if _, err := s.resources.UpsertProducts(ctx, []*domain.Product{product}); err != nil {
			return WebhookResult{}, err
		}
		return WebhookResult{Handled: WebhookHandledProduct}, nil

	case strings.HasPrefix(topic, "carts/"), strings.HasPrefix(topic, "checkouts/"):
		// No stable external id contract exists for cart and checkout
		// payloads, so these stay audit-only.
		return WebhookResult{Handled: WebhookHandledEventOnly}, nil

	default:
		s.logger.Info().
			Str("shop", shop.Domain).
			Str("topic", topic).
			Msg("Webhook topic has no handler, recorded as event only")
		return WebhookResult{Handled: WebhookHandledUnknown}, nil
	}
}

func (s *WebhookService) eventOnly(shop *domain.Shop, topic, reason string) WebhookResult {
	s.logger.Warn().
		Str("shop", shop.Domain).
		Str("topic", topic).
		Str("reason", reason).
		Msg("Typed webhook payload not mappable, kept as event only")
	return WebhookResult{Handled: WebhookHandledEventOnly}
}

// decodeRecord parses a single webhook payload into the same record shape the
// paginator produces, numbers preserved, so one mapper serves both paths.
func decodeRecord(payload []byte) (map[string]interface{}, bool) {
	var record map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&record); err != nil {
		return nil, false
	}
	return record, true
}
