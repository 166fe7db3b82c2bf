package domain

import "time"

// Resource kinds the sync engine knows how to pull and persist.
const (
	ResourceCustomers = "customers"
	ResourceOrders    = "orders"
	ResourceProducts  = "products"
)

// AllResourceKinds is the default set for a full sync.
func AllResourceKinds() []string {
	return []string{ResourceCustomers, ResourceOrders, ResourceProducts}
}

// Customer is the local document for one storefront customer, keyed by
// (shopId, externalId).
type Customer struct {
	ShopID        string     `json:"shop_id" bson:"shop_id"`
	ExternalID    string     `json:"external_id" bson:"external_id"`
	Email         string     `json:"email,omitempty" bson:"email,omitempty"`
	FirstName     string     `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName      string     `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Phone         string     `json:"phone,omitempty" bson:"phone,omitempty"`
	State         string     `json:"state,omitempty" bson:"state,omitempty"`
	Currency      string     `json:"currency,omitempty" bson:"currency,omitempty"`
	VerifiedEmail bool       `json:"verified_email" bson:"verified_email"`
	TotalSpent    *float64   `json:"total_spent,omitempty" bson:"total_spent,omitempty"`
	OrdersCount   *int64     `json:"orders_count,omitempty" bson:"orders_count,omitempty"`
	Tags          []string   `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
	SyncedAt      time.Time  `json:"synced_at" bson:"synced_at"`
}

// Order is the local document for one storefront order. Line items and the
// customer are denormalized point-in-time snapshots, not references.
type Order struct {
	ShopID            string         `json:"shop_id" bson:"shop_id"`
	ExternalID        string         `json:"external_id" bson:"external_id"`
	OrderNumber       *int64         `json:"order_number,omitempty" bson:"order_number,omitempty"`
	Email             string         `json:"email,omitempty" bson:"email,omitempty"`
	Currency          string         `json:"currency,omitempty" bson:"currency,omitempty"`
	TotalPrice        *float64       `json:"total_price,omitempty" bson:"total_price,omitempty"`
	SubtotalPrice     *float64       `json:"subtotal_price,omitempty" bson:"subtotal_price,omitempty"`
	TotalTax          *float64       `json:"total_tax,omitempty" bson:"total_tax,omitempty"`
	TotalDiscounts    *float64       `json:"total_discounts,omitempty" bson:"total_discounts,omitempty"`
	FinancialStatus   string         `json:"financial_status,omitempty" bson:"financial_status,omitempty"`
	FulfillmentStatus string         `json:"fulfillment_status,omitempty" bson:"fulfillment_status,omitempty"`
	Tags              []string       `json:"tags,omitempty" bson:"tags,omitempty"`
	Customer          *OrderCustomer `json:"customer,omitempty" bson:"customer,omitempty"`
	LineItems         []LineItem     `json:"line_items,omitempty" bson:"line_items,omitempty"`
	ProcessedAt       *time.Time     `json:"processed_at,omitempty" bson:"processed_at,omitempty"`
	CancelledAt       *time.Time     `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
	CreatedAt         *time.Time     `json:"created_at,omitempty" bson:"created_at,omitempty"`
	SyncedAt          time.Time      `json:"synced_at" bson:"synced_at"`
}

// OrderCustomer is the snapshot of the customer embedded in an order at sync
// time.
type OrderCustomer struct {
	ExternalID string `json:"external_id,omitempty" bson:"external_id,omitempty"`
	Email      string `json:"email,omitempty" bson:"email,omitempty"`
	FirstName  string `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty" bson:"last_name,omitempty"`
}

// LineItem is one denormalized order line.
type LineItem struct {
	ExternalID string   `json:"external_id,omitempty" bson:"external_id,omitempty"`
	ProductID  string   `json:"product_id,omitempty" bson:"product_id,omitempty"`
	VariantID  string   `json:"variant_id,omitempty" bson:"variant_id,omitempty"`
	Title      string   `json:"title,omitempty" bson:"title,omitempty"`
	SKU        string   `json:"sku,omitempty" bson:"sku,omitempty"`
	Vendor     string   `json:"vendor,omitempty" bson:"vendor,omitempty"`
	Quantity   *int64   `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Price      *float64 `json:"price,omitempty" bson:"price,omitempty"`
}

// Product is the local document for one storefront product with its variants.
type Product struct {
	ShopID      string     `json:"shop_id" bson:"shop_id"`
	ExternalID  string     `json:"external_id" bson:"external_id"`
	Title       string     `json:"title,omitempty" bson:"title,omitempty"`
	Handle      string     `json:"handle,omitempty" bson:"handle,omitempty"`
	Vendor      string     `json:"vendor,omitempty" bson:"vendor,omitempty"`
	ProductType string     `json:"product_type,omitempty" bson:"product_type,omitempty"`
	Status      string     `json:"status,omitempty" bson:"status,omitempty"`
	Tags        []string   `json:"tags,omitempty" bson:"tags,omitempty"`
	Variants    []Variant  `json:"variants,omitempty" bson:"variants,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
	SyncedAt    time.Time  `json:"synced_at" bson:"synced_at"`
}

// Variant is one denormalized product variant.
type Variant struct {
	ExternalID        string   `json:"external_id,omitempty" bson:"external_id,omitempty"`
	Title             string   `json:"title,omitempty" bson:"title,omitempty"`
	SKU               string   `json:"sku,omitempty" bson:"sku,omitempty"`
	Price             *float64 `json:"price,omitempty" bson:"price,omitempty"`
	InventoryQuantity *int64   `json:"inventory_quantity,omitempty" bson:"inventory_quantity,omitempty"`
}
