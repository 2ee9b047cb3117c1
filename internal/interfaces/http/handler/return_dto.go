package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/backo/backend/internal/domain/returns"
)

// ReturnResponse is the wire shape of a return request
type ReturnResponse struct {
	ID                  string             `json:"id"`
	ReturnID            string             `json:"return_id"`
	OrderID             string             `json:"order_id"`
	Customer            CustomerInfo       `json:"customer"`
	Product             ReturnProductInfo  `json:"product"`
	Status              string             `json:"status"`
	Reason              string             `json:"reason"`
	PreferredResolution string             `json:"preferred_resolution,omitempty"`
	RefundMethod        string             `json:"refund_method"`
	Amount              decimal.Decimal    `json:"amount"`
	Notes               string             `json:"notes,omitempty"`
	Photos              []string           `json:"photos,omitempty"`
	ReturnAddress       string             `json:"return_address"`
	FiledAt             time.Time          `json:"filed_at"`
	Timeline            []TimelineStepInfo `json:"timeline"`
}

// ReturnProductInfo is the returned item
type ReturnProductInfo struct {
	Name     string          `json:"name"`
	SKU      string          `json:"sku,omitempty"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// TimelineStepInfo is one customer-visible timeline stage
type TimelineStepInfo struct {
	Step        string     `json:"step"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Date        *time.Time `json:"date,omitempty"`
}

func toReturnResponse(ret *returns.ReturnRequest) ReturnResponse {
	timeline := make([]TimelineStepInfo, len(ret.Timeline))
	for i, step := range ret.Timeline {
		timeline[i] = TimelineStepInfo{
			Step:        step.Step,
			Description: step.Description,
			Completed:   step.Completed,
			Date:        step.Date,
		}
	}

	return ReturnResponse{
		ID:       ret.ID.String(),
		ReturnID: ret.ReturnID,
		OrderID:  ret.OrderID,
		Customer: CustomerInfo{
			Name:  ret.Customer.Name,
			Email: ret.Customer.Email,
			Phone: ret.Customer.Phone,
		},
		Product: ReturnProductInfo{
			Name:     ret.Product.Name,
			SKU:      ret.Product.SKU,
			Quantity: ret.Product.Quantity,
			Price:    ret.Product.Price,
		},
		Status:              string(ret.Status),
		Reason:              ret.Reason,
		PreferredResolution: ret.PreferredResolution,
		RefundMethod:        string(ret.RefundMethod),
		Amount:              ret.Amount,
		Notes:               ret.Notes,
		Photos:              ret.Photos,
		ReturnAddress:       ret.ReturnAddress,
		FiledAt:             ret.FiledAt,
		Timeline:            timeline,
	}
}

func toReturnResponses(rets []*returns.ReturnRequest) []ReturnResponse {
	out := make([]ReturnResponse, len(rets))
	for i, ret := range rets {
		out[i] = toReturnResponse(ret)
	}
	return out
}
