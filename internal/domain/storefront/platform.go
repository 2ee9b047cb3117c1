package storefront

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Platform abstracts a remote e-commerce storefront (Shopify, WooCommerce).
// Implementations live in infrastructure/ecommerce. All calls are scoped to
// one merchant via the Credentials argument; adapters hold no per-store state.
type Platform interface {
	// Code returns the platform identifier
	Code() PlatformCode

	// FetchOrders retrieves all orders, paginating until exhausted or the
	// record cap is reached, converted to the canonical order shape
	FetchOrders(ctx context.Context, creds Credentials) ([]Order, error)

	// FetchProducts retrieves the product catalog
	FetchProducts(ctx context.Context, creds Credentials) ([]Product, error)

	// FetchCustomers retrieves the customer list
	FetchCustomers(ctx context.Context, creds Credentials) ([]CustomerRecord, error)

	// FetchCustomerByID retrieves a single customer record.
	// A missing customer returns (nil, nil), not an error.
	FetchCustomerByID(ctx context.Context, creds Credentials, customerID string) (*CustomerRecord, error)

	// VerifyCredentials makes a cheap authenticated call to prove the
	// credentials work before a store marks the platform as connected
	VerifyCredentials(ctx context.Context, creds Credentials) error
}

// Registry resolves platform adapters by code
type Registry interface {
	Get(code PlatformCode) (Platform, error)
	All() []Platform
}

// Platform error taxonomy. Adapters wrap these so callers can classify
// failures without knowing platform specifics. Wrapped messages must never
// include credentials.
var (
	ErrPlatformUnavailable     = errors.New("platform temporarily unavailable")
	ErrPlatformRequestFailed   = errors.New("platform request failed")
	ErrPlatformAuthFailed      = errors.New("platform authentication failed")
	ErrPlatformInvalidResponse = errors.New("invalid response from platform")
	ErrPlatformMisconfigured   = errors.New("platform credentials are not configured")
	ErrPlatformNotRegistered   = errors.New("platform not registered")
)

// PlatformCode identifies a supported e-commerce platform
type PlatformCode string

const (
	PlatformShopify     PlatformCode = "shopify"
	PlatformWooCommerce PlatformCode = "woocommerce"
)

// IsValid checks if the platform code is supported
func (p PlatformCode) IsValid() bool {
	switch p {
	case PlatformShopify, PlatformWooCommerce:
		return true
	}
	return false
}

// String returns the string representation
func (p PlatformCode) String() string {
	return string(p)
}

// Credentials carries the per-merchant secrets for one platform connection.
// BaseURL is the shop domain (Shopify) or the site URL (WooCommerce); Key and
// Secret hold the access token or the consumer key/secret pair.
type Credentials struct {
	Platform PlatformCode
	BaseURL  string
	Key      string
	Secret   string
}

// OrderStatus is the canonical order status shared by every platform
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusInTransit  OrderStatus = "In Transit"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// IsValid checks if the status is one of the canonical values
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s OrderStatus) String() string {
	return string(s)
}

// PaymentMethod is how the buyer paid
type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "COD"
	PaymentPrepaid PaymentMethod = "Prepaid"
)

// Source records where an order instance came from
type Source string

const (
	SourceAPI      Source = "api"
	SourceDatabase Source = "database"
)

// Customer is the buyer identity attached to a canonical order
type Customer struct {
	Name  string
	Email string
	Phone string
}

// OrderItem is a single purchased line
type OrderItem struct {
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// Address is a shipping destination
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// Order is the canonical order produced by every adapter
type Order struct {
	// PlatformOrderID is the upstream numeric/string id, unique per platform
	PlatformOrderID string
	// OrderNumber is the human-facing identifier ("#1001", "1001")
	OrderNumber string
	// AltOrderNumber is a secondary upstream number when the platform keeps
	// one (Shopify's numeric order_number next to the display name)
	AltOrderNumber string
	// CustomerID is the upstream customer id; empty for guest checkouts
	CustomerID string

	Customer        Customer
	Items           []OrderItem
	Amount          decimal.Decimal
	PaymentMethod   PaymentMethod
	Status          OrderStatus
	PlacedDate      time.Time
	DeliveredDate   *time.Time
	ShippingAddress *Address
	Notes           string

	Platform PlatformCode
	Source   Source

	// Contacts keeps every raw contact field the upstream payload carried,
	// used by identity verification and enrichment
	Contacts ContactSources
}

// Product is a catalog entry, used for store setup verification and listing
type Product struct {
	PlatformProductID string
	Name              string
	Price             decimal.Decimal
	ImageURL          string
	Status            string
	Platform          PlatformCode
}

// CustomerRecord is an upstream customer profile fetched separately from
// orders, used to enrich orders that reference a customer by id only
type CustomerRecord struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// FullName joins the name parts, tolerating either being empty
func (c CustomerRecord) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// NeedsCustomerEnrichment reports whether the order references an upstream
// customer but carries no usable email for them
func (o *Order) NeedsCustomerEnrichment() bool {
	return o.CustomerID != "" && o.Contacts.CustomerEmail == ""
}

// ApplyCustomer merges an enriched customer record into the order without
// regressing fields that already have a value
func (o *Order) ApplyCustomer(rec *CustomerRecord) {
	if rec == nil {
		return
	}
	if o.Contacts.CustomerEmail == "" {
		o.Contacts.CustomerEmail = rec.Email
	}
	if o.Contacts.CustomerPhone == "" {
		o.Contacts.CustomerPhone = rec.Phone
	}
	if o.Customer.Name == "" {
		o.Customer.Name = rec.FullName()
	}
	o.Customer.Email = o.Contacts.BestEmail()
	if o.Customer.Phone == "" {
		o.Customer.Phone = o.Contacts.BestPhone()
	}
}
