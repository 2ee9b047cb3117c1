package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/backo/backend/internal/domain/order"
	"github.com/backo/backend/internal/domain/storefront"
)

// OrderModel is the GORM model for locally cached upstream orders
type OrderModel struct {
	BaseModel
	StoreID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_orders_platform_key,priority:1"`

	Platform        string `gorm:"type:varchar(20);not null;uniqueIndex:idx_orders_platform_key,priority:2"`
	PlatformOrderID string `gorm:"type:varchar(64);not null;uniqueIndex:idx_orders_platform_key,priority:3"`
	OrderNumber     string `gorm:"type:varchar(64);not null;index"`

	CustomerName  string `gorm:"type:varchar(255)"`
	CustomerEmail string `gorm:"type:varchar(255);index"`
	CustomerPhone string `gorm:"type:varchar(64)"`

	ItemsJSON string `gorm:"column:items;type:jsonb;default:'[]'"`

	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaymentMethod string          `gorm:"type:varchar(20)"`
	Status        string          `gorm:"type:varchar(20);not null;index"`

	PlacedDate          time.Time `gorm:"index"`
	DeliveredDate       *time.Time
	ShippingAddressJSON string `gorm:"column:shipping_address;type:jsonb"`
	Notes               string `gorm:"type:text"`
}

// TableName specifies the table name
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the model to a domain order
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseEntity:      m.BaseModel.ToDomain(),
		StoreID:         m.StoreID,
		Platform:        storefront.PlatformCode(m.Platform),
		PlatformOrderID: m.PlatformOrderID,
		OrderNumber:     m.OrderNumber,
		Customer: storefront.Customer{
			Name:  m.CustomerName,
			Email: m.CustomerEmail,
			Phone: m.CustomerPhone,
		},
		Amount:        m.Amount,
		PaymentMethod: storefront.PaymentMethod(m.PaymentMethod),
		Status:        storefront.OrderStatus(m.Status),
		PlacedDate:    m.PlacedDate,
		DeliveredDate: m.DeliveredDate,
		Notes:         m.Notes,
	}

	if m.ItemsJSON != "" && m.ItemsJSON != "[]" {
		var items []storefront.OrderItem
		if err := json.Unmarshal([]byte(m.ItemsJSON), &items); err == nil {
			o.Items = items
		}
	}

	if m.ShippingAddressJSON != "" {
		var addr storefront.Address
		if err := json.Unmarshal([]byte(m.ShippingAddressJSON), &addr); err == nil {
			o.ShippingAddress = &addr
		}
	}

	return o
}

// OrderModelFromDomain converts a domain order to the model
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{
		StoreID:         o.StoreID,
		Platform:        string(o.Platform),
		PlatformOrderID: o.PlatformOrderID,
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.Customer.Name,
		CustomerEmail:   o.Customer.Email,
		CustomerPhone:   o.Customer.Phone,
		Amount:          o.Amount,
		PaymentMethod:   string(o.PaymentMethod),
		Status:          string(o.Status),
		PlacedDate:      o.PlacedDate,
		DeliveredDate:   o.DeliveredDate,
		Notes:           o.Notes,
	}
	m.FromDomainBaseEntity(o.BaseEntity)

	if jsonBytes, err := json.Marshal(o.Items); err == nil {
		m.ItemsJSON = string(jsonBytes)
	} else {
		m.ItemsJSON = "[]"
	}

	if o.ShippingAddress != nil {
		if jsonBytes, err := json.Marshal(o.ShippingAddress); err == nil {
			m.ShippingAddressJSON = string(jsonBytes)
		}
	}

	return m
}
