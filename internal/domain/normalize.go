package domain

import (
	"net/url"
	"strings"
)

// ShopDomainSuffix is the only hostname suffix the Admin API serves.
// Custom storefront domains are categorically invalid for API access.
const ShopDomainSuffix = ".myshopify.com"

// NormalizeShopDomain canonicalizes a raw hostname-like string into an admin
// hostname: lowercase, bare subdomains expanded with the platform suffix.
// Anything that does not end in the suffix after canonicalization fails with
// ErrInvalidDomain. The function is idempotent over its own output.
func NormalizeShopDomain(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidDomain
	}

	// url.Parse puts scheme-less input in the path, so force a scheme first.
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return "", ErrInvalidDomain
	}

	host := strings.ToLower(u.Hostname())
	if !strings.Contains(host, ".") {
		// Bare subdomain, e.g. "acme" for "acme.myshopify.com".
		host += ShopDomainSuffix
	}
	if !strings.HasSuffix(host, ShopDomainSuffix) {
		return "", ErrInvalidDomain
	}
	if host == strings.TrimPrefix(ShopDomainSuffix, ".") || strings.HasPrefix(host, ".") {
		return "", ErrInvalidDomain
	}
	return host, nil
}

// DomainCandidates returns the deduplicated alias set under which one shop
// may already be registered: the raw input, its bare subdomain, and the
// canonical form. Used for resolve-or-create lookups at registration.
func DomainCandidates(raw, canonical string) []string {
	seen := make(map[string]struct{}, 3)
	var out []string
	for _, d := range []string{strings.ToLower(strings.TrimSpace(raw)), strings.TrimSuffix(canonical, ShopDomainSuffix), canonical} {
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
