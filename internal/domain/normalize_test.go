package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeShopDomain(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"canonical form", "acme.myshopify.com", "acme.myshopify.com"},
		{"bare subdomain", "acme", "acme.myshopify.com"},
		{"full URL", "https://acme.myshopify.com/admin", "acme.myshopify.com"},
		{"uppercase", "ACME.MyShopify.COM", "acme.myshopify.com"},
		{"with port", "acme.myshopify.com:443", "acme.myshopify.com"},
		{"surrounding whitespace", "  acme  ", "acme.myshopify.com"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeShopDomain(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeShopDomainIsIdempotent(t *testing.T) {
	for _, input := range []string{"acme", "https://Acme.myshopify.com", "acme.myshopify.com"} {
		once, err := NormalizeShopDomain(input)
		require.NoError(t, err)
		twice, err := NormalizeShopDomain(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestNormalizeShopDomainRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"custom storefront domain", "shop.example.com"},
		{"platform apex only", "myshopify.com"},
		{"empty", ""},
		{"whitespace only", "   "},
		{"unparsable", "http://[::1]:namedport"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeShopDomain(tc.input)
			assert.ErrorIs(t, err, ErrInvalidDomain)
		})
	}
}

func TestDomainCandidates(t *testing.T) {
	candidates := DomainCandidates("Acme", "acme.myshopify.com")
	assert.Equal(t, []string{"acme", "acme.myshopify.com"}, candidates)

	candidates = DomainCandidates("acme.myshopify.com", "acme.myshopify.com")
	assert.Equal(t, []string{"acme.myshopify.com", "acme"}, candidates)
}
