package mapper

import (
	"time"

	"shopsync-core/internal/domain"
)

// Product maps one raw Admin API product record into the local document with
// its variants.
func Product(record map[string]interface{}, shopID string) *domain.Product {
	product := &domain.Product{
		ShopID:      shopID,
		ExternalID:  externalID(record["id"]),
		Title:       str(record, "title"),
		Handle:      str(record, "handle"),
		Vendor:      str(record, "vendor"),
		ProductType: str(record, "product_type"),
		Status:      str(record, "status"),
		Tags:        tagList(record["tags"]),
		CreatedAt:   optTime(record["created_at"]),
		UpdatedAt:   optTime(record["updated_at"]),
		SyncedAt:    time.Now().UTC(),
	}

	for _, variant := range subRecords(record["variants"]) {
		product.Variants = append(product.Variants, domain.Variant{
			ExternalID:        externalID(variant["id"]),
			Title:             str(variant, "title"),
			SKU:               str(variant, "sku"),
			Price:             optFloat(variant["price"]),
			InventoryQuantity: optInt(variant["inventory_quantity"]),
		})
	}

	return product
}
