package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"shopsync-core/internal/application"
	"shopsync-core/internal/domain"
	"shopsync-core/internal/infrastructure/dedup"
	"shopsync-core/internal/infrastructure/repository"
	shopifyinfra "shopsync-core/internal/infrastructure/shopify"
	"shopsync-core/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	// Get configuration from environment
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDatabase := os.Getenv("MONGODB_DATABASE")
	if mongoDatabase == "" {
		mongoDatabase = "shopsync"
	}

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(mongoDatabase)

	// Initialize repositories
	shopRepo := repository.NewMongoShopRepository(db)
	resourceRepo := repository.NewMongoResourceRepository(db)
	eventRepo := repository.NewMongoEventRepository(db)

	// Webhook delivery dedup is optional: without Redis the upsert key alone
	// keeps typed writes idempotent, but audit events may duplicate.
	var deduper ports.DeliveryDeduper = dedup.NoopDeduper{}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient := goredis.NewClient(&goredis.Options{Addr: redisAddr})
		deduper = dedup.NewRedisDeduper(redisClient, logger)
		logger.Info().Str("addr", redisAddr).Msg("Webhook delivery dedup enabled")
	} else {
		logger.Warn().Msg("REDIS_ADDR not set, webhook delivery dedup disabled")
	}

	// Initialize the Admin API gateway
	gateway := shopifyinfra.NewGateway(logger)

	// Initialize application services
	shopService := application.NewShopService(shopRepo, gateway, logger)
	syncService := application.NewSyncService(gateway, resourceRepo, logger)
	webhookService := application.NewWebhookService(eventRepo, resourceRepo, deduper, logger)

	// Start the resync scheduler unless disabled
	schedulerEnabled := os.Getenv("SCHEDULER_ENABLED") != "false"
	if schedulerEnabled {
		interval := 30 * time.Minute
		if raw := os.Getenv("SYNC_INTERVAL"); raw != "" {
			parsed, err := time.ParseDuration(raw)
			if err != nil {
				logger.Fatal().Err(err).Str("value", raw).Msg("Invalid SYNC_INTERVAL")
			}
			interval = parsed
		}
		scheduler := application.NewScheduler(shopRepo, gateway, syncService, interval, logger)
		go scheduler.Start(context.Background())
	} else {
		logger.Warn().Msg("Scheduler disabled via SCHEDULER_ENABLED=false")
	}

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Health check - must be public for monitoring
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	// Shop registration and lifecycle
	r.Post("/shops", registerShopHandler(shopService, logger))
	r.Get("/shops", listShopsHandler(shopRepo, logger))
	r.Post("/shops/{domain}/resume", resumeShopHandler(shopService, logger))

	// On-demand sync
	r.Post("/shops/{domain}/sync", syncShopHandler(shopService, syncService, shopRepo, gateway, logger))

	// Custom audit events
	r.Post("/shops/{domain}/events", customEventHandler(shopService, eventRepo, logger))

	// Webhook endpoint: topic, shop domain and delivery id arrive as headers,
	// already extracted (and signature-verified) upstream.
	r.Post("/webhooks/shopify", webhookHandler(shopService, webhookService, logger))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("Starting sync API server")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

type registerShopRequest struct {
	Domain      string `json:"domain"`
	AccessToken string `json:"access_token"`
	APIVersion  string `json:"api_version"`
}

// registerShopHandler onboards a shop after verifying its credentials.
func registerShopHandler(shops *application.ShopService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerShopRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Domain == "" || req.AccessToken == "" {
			writeError(w, http.StatusBadRequest, "domain and access_token are required")
			return
		}

		shop, err := shops.Register(r.Context(), req.Domain, req.AccessToken, req.APIVersion)
		if err != nil {
			writeUpstreamError(w, logger, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(shop)
	}
}

func listShopsHandler(shopRepo ports.ShopRepository, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var shops []*domain.Shop
		for _, status := range []string{domain.ShopStatusActive, domain.ShopStatusPaused} {
			batch, err := shopRepo.ListByStatus(r.Context(), status)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to list shops")
				writeError(w, http.StatusInternalServerError, "failed to list shops")
				return
			}
			shops = append(shops, batch...)
		}
		if shops == nil {
			shops = []*domain.Shop{}
		}
		json.NewEncoder(w).Encode(shops)
	}
}

func resumeShopHandler(shops *application.ShopService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shop, err := shops.Resume(r.Context(), chi.URLParam(r, "domain"))
		if err != nil {
			writeUpstreamError(w, logger, err)
			return
		}
		if shop == nil {
			writeError(w, http.StatusNotFound, "shop not found")
			return
		}
		json.NewEncoder(w).Encode(shop)
	}
}

// syncShopHandler runs an interactive full sync. Upstream failures are
// returned with the enriched message and the upstream status verbatim.
func syncShopHandler(
	shops *application.ShopService,
	syncs *application.SyncService,
	shopRepo ports.ShopRepository,
	gateway ports.StorefrontGateway,
	logger zerolog.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shop, err := shops.GetByDomain(r.Context(), chi.URLParam(r, "domain"))
		if err != nil {
			writeUpstreamError(w, logger, err)
			return
		}
		if shop == nil {
			writeError(w, http.StatusNotFound, "shop not found")
			return
		}

		if _, err := gateway.VerifyShop(r.Context(), shop); err != nil {
			writeUpstreamError(w, logger, err)
			return
		}

		var kinds []string
		if raw := r.URL.Query().Get("resources"); raw != "" {
			for _, kind := range strings.Split(raw, ",") {
				if trimmed := strings.TrimSpace(kind); trimmed != "" {
					kinds = append(kinds, trimmed)
				}
			}
		}

		summary, err := syncs.SyncShop(r.Context(), shop, kinds)
		if err != nil {
			logger.Error().Err(err).Str("shop", shop.Domain).Msg("On-demand sync failed")
			status := domain.ErrorStatus(err)
			if status == 0 {
				status = http.StatusBadGateway
			}
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":   err.Error(),
				"summary": summary,
			})
			return
		}

		now := time.Now().UTC()
		shop.LastSyncedAt = &now
		if err := shopRepo.Save(r.Context(), shop); err != nil {
			logger.Error().Err(err).Str("shop", shop.Domain).Msg("Failed to stamp last sync time")
		}

		json.NewEncoder(w).Encode(summary)
	}
}

type customEventRequest struct {
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

func customEventHandler(shops *application.ShopService, events ports.EventRepository, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shop, err := shops.GetByDomain(r.Context(), chi.URLParam(r, "domain"))
		if err != nil {
			writeUpstreamError(w, logger, err)
			return
		}
		if shop == nil {
			writeError(w, http.StatusNotFound, "shop not found")
			return
		}

		var req customEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Topic == "" {
			writeError(w, http.StatusBadRequest, "topic is required")
			return
		}

		event := &domain.Event{
			ShopID:     shop.ID,
			Topic:      req.Topic,
			Payload:    req.Payload,
			ReceivedAt: time.Now().UTC(),
		}
		if err := events.Append(r.Context(), event); err != nil {
			logger.Error().Err(err).Str("shop", shop.Domain).Msg("Failed to record custom event")
			writeError(w, http.StatusInternalServerError, "failed to record event")
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"status": "recorded"})
	}
}

func webhookHandler(shops *application.ShopService, webhooks *application.WebhookService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topic := r.Header.Get("X-Shopify-Topic")
		shopDomain := r.Header.Get("X-Shopify-Shop-Domain")
		deliveryID := r.Header.Get("X-Shopify-Webhook-Id")

		if topic == "" || shopDomain == "" {
			writeError(w, http.StatusBadRequest, "X-Shopify-Topic and X-Shopify-Shop-Domain headers are required")
			return
		}

		shop, err := shops.GetByDomain(r.Context(), shopDomain)
		if err != nil {
			writeUpstreamError(w, logger, err)
			return
		}
		if shop == nil {
			writeError(w, http.StatusNotFound, "shop not registered")
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read payload")
			return
		}

		result, err := webhooks.Process(r.Context(), shop, topic, deliveryID, payload)
		if err != nil {
			logger.Error().Err(err).Str("shop", shop.Domain).Str("topic", topic).Msg("Webhook processing failed")
			writeError(w, http.StatusInternalServerError, "failed to process webhook")
			return
		}

		json.NewEncoder(w).Encode(result)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeUpstreamError maps classified engine errors onto the response: invalid
// domains are the caller's mistake, upstream statuses pass through verbatim,
// anything else is a gateway failure.
func writeUpstreamError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	if errors.Is(err, domain.ErrInvalidDomain) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if status := domain.ErrorStatus(err); status != 0 {
		logger.Warn().Err(err).Int("status", status).Msg("Upstream API error")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{
			"error":           err.Error(),
			"upstream_status": strconv.Itoa(status),
		})
		return
	}
	logger.Error().Err(err).Msg("Request failed")
	writeError(w, http.StatusBadGateway, err.Error())
}
