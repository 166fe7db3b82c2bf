package domain

import "time"

// Shop statuses. Paused shops are skipped by the scheduler and can only be
// resumed through an explicit external action.
const (
	ShopStatusActive = "active"
	ShopStatusPaused = "paused"
)

// Shop represents one onboarded storefront with its own credential and
// canonical admin hostname. The canonical domain is the unique key: a
// registration may arrive under an alias (raw input, bare subdomain, or the
// post-verification canonical form) and must be reconciled to one record.
type Shop struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	Domain       string     `json:"domain" bson:"domain"`             // Canonical *.myshopify.com admin hostname
	AccessToken  string     `json:"-" bson:"access_token"`            // Admin API token, immutable input to every call
	APIVersion   string     `json:"api_version" bson:"api_version"`   // e.g. "2024-01"
	Status       string     `json:"status" bson:"status"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty" bson:"last_synced_at,omitempty"`
	LastError    *SyncError `json:"last_error,omitempty" bson:"last_error,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// SyncError is the diagnostic snapshot persisted when the scheduler pauses a
// shop after a fatal verification or sync failure.
type SyncError struct {
	Message string    `json:"message" bson:"message"`
	Status  int       `json:"status,omitempty" bson:"status,omitempty"`
	At      time.Time `json:"at" bson:"at"`
}
