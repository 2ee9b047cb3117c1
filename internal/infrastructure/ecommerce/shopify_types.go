package ecommerce

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Shopify Admin REST API wire types. Only the fields the conversion needs
// are declared; everything else in the payload is ignored.

// ShopifyOrdersResponse is the envelope of GET /orders.json
type ShopifyOrdersResponse struct {
	Orders []ShopifyOrder `json:"orders"`
}

// ShopifyCustomerResponse is the envelope of GET /customers/{id}.json
type ShopifyCustomerResponse struct {
	Customer ShopifyCustomer `json:"customer"`
}

// ShopifyCustomersResponse is the envelope of GET /customers.json
type ShopifyCustomersResponse struct {
	Customers []ShopifyCustomer `json:"customers"`
}

// ShopifyProductsResponse is the envelope of GET /products.json
type ShopifyProductsResponse struct {
	Products []ShopifyProduct `json:"products"`
}

// ShopifyShopResponse is the envelope of GET /shop.json
type ShopifyShopResponse struct {
	Shop struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"shop"`
}

// ShopifyOrder is one order as returned by the Admin API
type ShopifyOrder struct {
	ID              int64                `json:"id"`
	Name            string               `json:"name"`
	OrderNumber     int64                `json:"order_number"`
	Email           string               `json:"email"`
	Phone           string               `json:"phone"`
	Note            string               `json:"note"`
	TotalPrice      string               `json:"total_price"`
	FinancialStatus string               `json:"financial_status"`
	FulfillmentStat string               `json:"fulfillment_status"`
	CancelledAt     string               `json:"cancelled_at"`
	CreatedAt       string               `json:"created_at"`
	Customer        *ShopifyCustomer     `json:"customer"`
	BillingAddress  *ShopifyAddress      `json:"billing_address"`
	ShippingAddress *ShopifyAddress      `json:"shipping_address"`
	LineItems       []ShopifyLineItem    `json:"line_items"`
	Fulfillments    []ShopifyFulfillment `json:"fulfillments"`
}

// ShopifyCustomer is the customer object embedded in orders or fetched via
// the customers endpoint
type ShopifyCustomer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ShopifyAddress is a billing or shipping address
type ShopifyAddress struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// ShopifyLineItem is one purchased line on an order
type ShopifyLineItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	ProductID int64  `json:"product_id"`
	VariantID int64  `json:"variant_id"`
}

// ShopifyFulfillment is a shipment attached to an order
type ShopifyFulfillment struct {
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// ShopifyProduct is one catalog product
type ShopifyProduct struct {
	ID       int64            `json:"id"`
	Title    string           `json:"title"`
	Status   string           `json:"status"`
	Variants []ShopifyVariant `json:"variants"`
	Images   []ShopifyImage   `json:"images"`
}

// ShopifyVariant is one product variant
type ShopifyVariant struct {
	ID    int64  `json:"id"`
	Price string `json:"price"`
	SKU   string `json:"sku"`
}

// ShopifyImage is one product image
type ShopifyImage struct {
	Src string `json:"src"`
}

// ParseDecimal converts a platform money string to a decimal, treating
// unparsable or empty input as zero
func ParseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseUpstreamTime parses a platform timestamp, returning the zero time for
// anything unparsable so date sorting treats it as oldest. WooCommerce emits
// local timestamps without a zone, so that layout is tried after RFC3339.
func parseUpstreamTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}
