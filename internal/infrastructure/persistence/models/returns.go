package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/backo/backend/internal/domain/returns"
)

// ReturnModel is the GORM model for return requests
type ReturnModel struct {
	BaseModel
	ReturnID string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_returns_store_return_id,priority:2"`
	StoreID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_returns_store_return_id,priority:1"`

	OrderID  string `gorm:"type:varchar(64);not null;index"`
	StoreURL string `gorm:"type:varchar(500);index"`

	CustomerName  string `gorm:"type:varchar(255)"`
	CustomerEmail string `gorm:"type:varchar(255);index"`
	CustomerPhone string `gorm:"type:varchar(64)"`

	ProductName     string          `gorm:"type:varchar(255)"`
	ProductSKU      string          `gorm:"type:varchar(64)"`
	ProductQuantity int             `gorm:"not null;default:1"`
	ProductPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Status              string          `gorm:"type:varchar(30);not null;index"`
	Reason              string          `gorm:"type:varchar(255)"`
	PreferredResolution string          `gorm:"type:varchar(64)"`
	RefundMethod        string          `gorm:"type:varchar(30)"`
	Amount              decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Notes               string          `gorm:"type:text"`
	PhotosJSON          string          `gorm:"column:photos;type:jsonb;default:'[]'"`
	ReturnAddress       string          `gorm:"type:varchar(500)"`

	FiledAt      time.Time `gorm:"not null;index"`
	TimelineJSON string    `gorm:"column:timeline;type:jsonb;default:'[]'"`
}

// TableName specifies the table name
func (ReturnModel) TableName() string {
	return "returns"
}

// ToDomain converts the model to a domain return request
func (m *ReturnModel) ToDomain() *returns.ReturnRequest {
	r := &returns.ReturnRequest{
		BaseEntity: m.BaseModel.ToDomain(),
		ReturnID:   m.ReturnID,
		StoreID:    m.StoreID,
		OrderID:    m.OrderID,
		StoreURL:   m.StoreURL,
		Customer: returns.CustomerRef{
			Name:  m.CustomerName,
			Email: m.CustomerEmail,
			Phone: m.CustomerPhone,
		},
		Product: returns.ProductRef{
			Name:     m.ProductName,
			SKU:      m.ProductSKU,
			Quantity: m.ProductQuantity,
			Price:    m.ProductPrice,
		},
		Status:              returns.Status(m.Status),
		Reason:              m.Reason,
		PreferredResolution: m.PreferredResolution,
		RefundMethod:        returns.RefundMethod(m.RefundMethod),
		Amount:              m.Amount,
		Notes:               m.Notes,
		ReturnAddress:       m.ReturnAddress,
		FiledAt:             m.FiledAt,
	}

	if m.PhotosJSON != "" && m.PhotosJSON != "[]" {
		var photos []string
		if err := json.Unmarshal([]byte(m.PhotosJSON), &photos); err == nil {
			r.Photos = photos
		}
	}

	if m.TimelineJSON != "" && m.TimelineJSON != "[]" {
		var timeline []returns.TimelineStep
		if err := json.Unmarshal([]byte(m.TimelineJSON), &timeline); err == nil {
			r.Timeline = timeline
		}
	}

	return r
}

// ReturnModelFromDomain converts a domain return request to the model
func ReturnModelFromDomain(r *returns.ReturnRequest) *ReturnModel {
	m := &ReturnModel{
		ReturnID: r.ReturnID,
		StoreID:  r.StoreID,
		OrderID:  r.OrderID,
		StoreURL: r.StoreURL,

		CustomerName:  r.Customer.Name,
		CustomerEmail: r.Customer.Email,
		CustomerPhone: r.Customer.Phone,

		ProductName:     r.Product.Name,
		ProductSKU:      r.Product.SKU,
		ProductQuantity: r.Product.Quantity,
		ProductPrice:    r.Product.Price,

		Status:              string(r.Status),
		Reason:              r.Reason,
		PreferredResolution: r.PreferredResolution,
		RefundMethod:        string(r.RefundMethod),
		Amount:              r.Amount,
		Notes:               r.Notes,
		ReturnAddress:       r.ReturnAddress,
		FiledAt:             r.FiledAt,
	}
	m.FromDomainBaseEntity(r.BaseEntity)

	if jsonBytes, err := json.Marshal(r.Photos); err == nil && r.Photos != nil {
		m.PhotosJSON = string(jsonBytes)
	} else {
		m.PhotosJSON = "[]"
	}

	if jsonBytes, err := json.Marshal(r.Timeline); err == nil && r.Timeline != nil {
		m.TimelineJSON = string(jsonBytes)
	} else {
		m.TimelineJSON = "[]"
	}

	return m
}
