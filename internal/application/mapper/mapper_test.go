package mapper

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode mimics the paginator's decoding: numbers preserved as json.Number.
func decode(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var record map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&record))
	return record
}

func TestCustomerMapping(t *testing.T) {
	record := decode(t, `{
		"id": 7234567890123456789,
		"email": "jo@example.com",
		"first_name": "Jo",
		"last_name": "Smith",
		"verified_email": true,
		"total_spent": "199.90",
		"orders_count": 4,
		"tags": "vip, wholesale , ",
		"created_at": "2024-03-01T10:00:00Z"
	}`)

	customer := Customer(record, "shop-1")

	assert.Equal(t, "shop-1", customer.ShopID)
	// Large ids survive without float rounding.
	assert.Equal(t, "7234567890123456789", customer.ExternalID)
	assert.Equal(t, "jo@example.com", customer.Email)
	require.NotNil(t, customer.TotalSpent)
	assert.Equal(t, 199.90, *customer.TotalSpent)
	require.NotNil(t, customer.OrdersCount)
	assert.Equal(t, int64(4), *customer.OrdersCount)
	assert.Equal(t, []string{"vip", "wholesale"}, customer.Tags)
	require.NotNil(t, customer.CreatedAt)
	assert.True(t, customer.VerifiedEmail)
	assert.False(t, customer.SyncedAt.IsZero())
}

func TestMappingDegradesMalformedFieldsToAbsent(t *testing.T) {
	record := decode(t, `{
		"id": "123",
		"email": "x@example.com",
		"total_spent": "not-a-number",
		"orders_count": "",
		"tags": 42,
		"created_at": "yesterday"
	}`)

	customer := Customer(record, "shop-1")

	// One bad field never drops the record.
	assert.Equal(t, "123", customer.ExternalID)
	assert.Equal(t, "x@example.com", customer.Email)
	assert.Nil(t, customer.TotalSpent)
	assert.Nil(t, customer.OrdersCount)
	assert.Nil(t, customer.Tags)
	assert.Nil(t, customer.CreatedAt)
}

func TestMappingIsTotalOnEmptyRecord(t *testing.T) {
	assert.NotPanics(t, func() {
		customer := Customer(map[string]interface{}{}, "shop-1")
		assert.Empty(t, customer.ExternalID)

		order := Order(map[string]interface{}{}, "shop-1")
		assert.Empty(t, order.ExternalID)

		product := Product(map[string]interface{}{}, "shop-1")
		assert.Empty(t, product.ExternalID)
	})
}

func TestOrderMappingWithLineItemsAndCustomerSnapshot(t *testing.T) {
	record := decode(t, `{
		"id": 450789469,
		"order_number": 1001,
		"email": "bob@example.com",
		"currency": "EUR",
		"total_price": "409.94",
		"subtotal_price": "398.00",
		"total_tax": "11.94",
		"financial_status": "paid",
		"tags": ["rush", "gift"],
		"processed_at": "2024-04-02T09:30:00Z",
		"customer": {"id": 207119551, "email": "bob@example.com", "first_name": "Bob"},
		"line_items": [
			{"id": 669751112, "product_id": 7513594, "variant_id": 4264112, "title": "IPod Nano", "sku": "IPOD-342", "quantity": 1, "price": "199.00"},
			{"id": 669751113, "title": "Mystery item", "quantity": "two", "price": ""}
		]
	}`)

	order := Order(record, "shop-1")

	assert.Equal(t, "450789469", order.ExternalID)
	require.NotNil(t, order.OrderNumber)
	assert.Equal(t, int64(1001), *order.OrderNumber)
	require.NotNil(t, order.TotalPrice)
	assert.Equal(t, 409.94, *order.TotalPrice)
	assert.Equal(t, []string{"rush", "gift"}, order.Tags)

	require.NotNil(t, order.Customer)
	assert.Equal(t, "207119551", order.Customer.ExternalID)
	assert.Equal(t, "Bob", order.Customer.FirstName)

	require.Len(t, order.LineItems, 2)
	first := order.LineItems[0]
	assert.Equal(t, "669751112", first.ExternalID)
	assert.Equal(t, "7513594", first.ProductID)
	assert.Equal(t, "4264112", first.VariantID)
	require.NotNil(t, first.Quantity)
	assert.Equal(t, int64(1), *first.Quantity)
	require.NotNil(t, first.Price)
	assert.Equal(t, 199.00, *first.Price)

	// Malformed nested numerics degrade to absent, same as top level.
	second := order.LineItems[1]
	assert.Nil(t, second.Quantity)
	assert.Nil(t, second.Price)
}

func TestProductMappingWithVariants(t *testing.T) {
	record := decode(t, `{
		"id": 632910392,
		"title": "IPod Nano - 8GB",
		"handle": "ipod-nano",
		"vendor": "Apple",
		"product_type": "Cult Products",
		"status": "active",
		"tags": "Emotive, Flash Memory",
		"variants": [
			{"id": 808950810, "title": "Pink", "sku": "IPOD2008PINK", "price": "199.00", "inventory_quantity": 10},
			{"id": 49148385, "title": "Red", "sku": "IPOD2008RED", "price": "oops"}
		]
	}`)

	product := Product(record, "shop-1")

	assert.Equal(t, "632910392", product.ExternalID)
	assert.Equal(t, "ipod-nano", product.Handle)
	assert.Equal(t, []string{"Emotive", "Flash Memory"}, product.Tags)

	require.Len(t, product.Variants, 2)
	require.NotNil(t, product.Variants[0].Price)
	assert.Equal(t, 199.00, *product.Variants[0].Price)
	require.NotNil(t, product.Variants[0].InventoryQuantity)
	assert.Equal(t, int64(10), *product.Variants[0].InventoryQuantity)
	assert.Nil(t, product.Variants[1].Price)
	assert.Nil(t, product.Variants[1].InventoryQuantity)
}
