package mapper

import (
	"time"

	"shopsync-core/internal/domain"
)

// Order maps one raw Admin API order record into the local document,
// including the denormalized customer snapshot and line items.
func Order(record map[string]interface{}, shopID string) *domain.Order {
	order := &domain.Order{
		ShopID:            shopID,
		ExternalID:        externalID(record["id"]),
		OrderNumber:       optInt(record["order_number"]),
		Email:             str(record, "email"),
		Currency:          str(record, "currency"),
		TotalPrice:        optFloat(record["total_price"]),
		SubtotalPrice:     optFloat(record["subtotal_price"]),
		TotalTax:          optFloat(record["total_tax"]),
		TotalDiscounts:    optFloat(record["total_discounts"]),
		FinancialStatus:   str(record, "financial_status"),
		FulfillmentStatus: str(record, "fulfillment_status"),
		Tags:              tagList(record["tags"]),
		ProcessedAt:       optTime(record["processed_at"]),
		CancelledAt:       optTime(record["cancelled_at"]),
		CreatedAt:         optTime(record["created_at"]),
		SyncedAt:          time.Now().UTC(),
	}

	if customer, ok := record["customer"].(map[string]interface{}); ok {
		order.Customer = &domain.OrderCustomer{
			ExternalID: externalID(customer["id"]),
			Email:      str(customer, "email"),
			FirstName:  str(customer, "first_name"),
			LastName:   str(customer, "last_name"),
		}
	}

	for _, item := range subRecords(record["line_items"]) {
		order.LineItems = append(order.LineItems, domain.LineItem{
			ExternalID: externalID(item["id"]),
			ProductID:  externalID(item["product_id"]),
			VariantID:  externalID(item["variant_id"]),
			Title:      str(item, "title"),
			SKU:        str(item, "sku"),
			Vendor:     str(item, "vendor"),
			Quantity:   optInt(item["quantity"]),
			Price:      optFloat(item["price"]),
		})
	}

	return order
}
