package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidDomain indicates a hostname that is not a valid *.myshopify.com
// admin hostname. Always fatal, never retried.
var ErrInvalidDomain = errors.New("invalid shop domain: expected a *.myshopify.com admin hostname")

// APIError is the enriched failure shape for every upstream Admin API call.
// It carries enough context (status, shop, path, actionable hint) that callers
// can classify and report it without any upstream-API-specific knowledge.
type APIError struct {
	Status int    // HTTP status, 0 for transport-level failures
	Domain string // shop the call was made for
	Path   string // resource path, e.g. "orders.json"
	Hint   string // human guidance, e.g. "access token invalid or missing scopes"
	Err    error  // underlying cause, if any
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("shopify request failed: shop=%s path=%s", e.Domain, e.Path)
	if e.Status != 0 {
		msg += fmt.Sprintf(" status=%d", e.Status)
	}
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// HintForStatus returns the operator guidance attached to upstream failures.
// The 404 and 401/403 cases get distinct hints because they call for
// different fixes.
func HintForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return "shop not found: wrong hostname or the app has no access"
	case http.StatusUnauthorized, http.StatusForbidden:
		return "access token invalid or missing scopes"
	case http.StatusTooManyRequests:
		return "rate limited by the Admin API"
	default:
		if status >= 500 {
			return "upstream error, retry later"
		}
		return ""
	}
}

// IsFatalSyncError reports whether a failure should pause the shop rather
// than be retried on the next tick: an invalid domain, or an upstream
// 401/403/404. Timeouts, 5xx and anything unclassified are transient.
func IsFatalSyncError(err error) bool {
	if errors.Is(err, ErrInvalidDomain) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return true
		}
	}
	return false
}

// ErrorStatus extracts the upstream HTTP status from a classified error,
// or 0 when none applies.
func ErrorStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
