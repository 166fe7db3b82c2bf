package shopify

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"shopsync-core/internal/domain"

	"github.com/rs/zerolog"
)

const (
	// DefaultAPIVersion is used when a shop record carries no explicit
	// Admin API version.
	DefaultAPIVersion = "2024-01"

	// requestTimeout bounds every individual Admin API call so a stalled
	// upstream cannot block a sync indefinitely.
	requestTimeout = 15 * time.Second

	accessTokenHeader = "X-Shopify-Access-Token"
)

// RetryConfig bounds the per-page retry policy for transient upstream
// failures. Fatal failures (401/403/404) are never retried.
type RetryConfig struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryConfig returns the standard retry policy: 3 attempts with
// exponential backoff.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
	}
}

// Client is an authenticated Admin API client bound to one shop's versioned
// base path. Construction requires an already-canonicalized domain; this is
// not the place where validation happens.
type Client struct {
	shopDomain string
	baseURL    string
	token      string
	httpClient *http.Client
	retry      RetryConfig
	logger     zerolog.Logger
}

// NewClient builds a client for one shop. The domain must already be in
// canonical form; a malformed domain fails loudly rather than producing a
// client that can only 404.
func NewClient(shop *domain.Shop, retry RetryConfig, logger zerolog.Logger) (*Client, error) {
	if !strings.HasSuffix(shop.Domain, domain.ShopDomainSuffix) {
		return nil, fmt.Errorf("cannot build client for %q: %w", shop.Domain, domain.ErrInvalidDomain)
	}
	version := shop.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	baseURL := fmt.Sprintf("https://%s/admin/api/%s", shop.Domain, version)
	return newClientWithBaseURL(shop, baseURL, retry, logger), nil
}

// newClientWithBaseURL is the test seam: pagination tests point it at an
// httptest server.
func newClientWithBaseURL(shop *domain.Shop, baseURL string, retry RetryConfig, logger zerolog.Logger) *Client {
	return &Client{
		shopDomain: shop.Domain,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      shop.AccessToken,
		httpClient: &http.Client{Timeout: requestTimeout},
		retry:      retry,
		logger:     logger,
	}
}
