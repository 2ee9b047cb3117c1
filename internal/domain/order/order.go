package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/backo/backend/internal/domain/shared"
	"github.com/backo/backend/internal/domain/storefront"
)

// Order is the locally persisted copy of an upstream order. It exists so
// listings and returns keep working when the platform is slow or the
// connection was removed; the live API copy always wins on conflict.
type Order struct {
	shared.BaseEntity

	StoreID uuid.UUID

	Platform        storefront.PlatformCode
	PlatformOrderID string
	OrderNumber     string

	Customer storefront.Customer
	Items    []storefront.OrderItem

	Amount        decimal.Decimal
	PaymentMethod storefront.PaymentMethod
	Status        storefront.OrderStatus

	PlacedDate      time.Time
	DeliveredDate   *time.Time
	ShippingAddress *storefront.Address
	Notes           string
}

// FromCanonical builds a persistable order from an adapter order
func FromCanonical(storeID uuid.UUID, o storefront.Order) *Order {
	return &Order{
		BaseEntity:      shared.NewBaseEntity(),
		StoreID:         storeID,
		Platform:        o.Platform,
		PlatformOrderID: o.PlatformOrderID,
		OrderNumber:     NormalizeOrderNumber(o.OrderNumber),
		Customer:        o.Customer,
		Items:           o.Items,
		Amount:          o.Amount,
		PaymentMethod:   o.PaymentMethod,
		Status:          o.Status,
		PlacedDate:      o.PlacedDate,
		DeliveredDate:   o.DeliveredDate,
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
	}
}

// ApplyCanonical refreshes the persisted copy from a newer API order
func (o *Order) ApplyCanonical(c storefront.Order) {
	o.Platform = c.Platform
	o.PlatformOrderID = c.PlatformOrderID
	o.OrderNumber = NormalizeOrderNumber(c.OrderNumber)
	o.Customer = c.Customer
	o.Items = c.Items
	o.Amount = c.Amount
	o.PaymentMethod = c.PaymentMethod
	o.Status = c.Status
	o.PlacedDate = c.PlacedDate
	o.DeliveredDate = c.DeliveredDate
	o.ShippingAddress = c.ShippingAddress
	o.Notes = c.Notes
	o.Touch()
}

// ToCanonical converts the persisted copy back to the canonical shape with
// Source marked as database
func (o *Order) ToCanonical() storefront.Order {
	return storefront.Order{
		PlatformOrderID: o.PlatformOrderID,
		OrderNumber:     o.OrderNumber,
		Customer:        o.Customer,
		Items:           o.Items,
		Amount:          o.Amount,
		PaymentMethod:   o.PaymentMethod,
		Status:          o.Status,
		PlacedDate:      o.PlacedDate,
		DeliveredDate:   o.DeliveredDate,
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
		Platform:        o.Platform,
		Source:          storefront.SourceDatabase,
		Contacts: storefront.ContactSources{
			CustomerEmail: o.Customer.Email,
			CustomerPhone: o.Customer.Phone,
		},
	}
}

// NormalizeOrderNumber strips the display prefix so "#1001" and "1001"
// share one persisted key
func NormalizeOrderNumber(number string) string {
	return strings.TrimPrefix(strings.TrimSpace(number), "#")
}
