package mapper

import (
	"time"

	"shopsync-core/internal/domain"
)

// Customer maps one raw Admin API customer record into the local document.
func Customer(record map[string]interface{}, shopID string) *domain.Customer {
	return &domain.Customer{
		ShopID:        shopID,
		ExternalID:    externalID(record["id"]),
		Email:         str(record, "email"),
		FirstName:     str(record, "first_name"),
		LastName:      str(record, "last_name"),
		Phone:         str(record, "phone"),
		State:         str(record, "state"),
		Currency:      str(record, "currency"),
		VerifiedEmail: boolean(record, "verified_email"),
		TotalSpent:    optFloat(record["total_spent"]),
		OrdersCount:   optInt(record["orders_count"]),
		Tags:          tagList(record["tags"]),
		CreatedAt:     optTime(record["created_at"]),
		UpdatedAt:     optTime(record["updated_at"]),
		SyncedAt:      time.Now().UTC(),
	}
}
