package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/backo/backend/internal/domain/storefront"
)

// OrderResponse is the wire shape of a canonical order
type OrderResponse struct {
	PlatformOrderID string            `json:"platform_order_id"`
	OrderNumber     string            `json:"order_number"`
	Customer        CustomerInfo      `json:"customer"`
	Items           []OrderItemInfo   `json:"items"`
	Amount          decimal.Decimal   `json:"amount"`
	PaymentMethod   string            `json:"payment_method"`
	Status          string            `json:"status"`
	PlacedDate      time.Time         `json:"placed_date"`
	DeliveredDate   *time.Time        `json:"delivered_date,omitempty"`
	ShippingAddress *AddressInfo      `json:"shipping_address,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Platform        string            `json:"platform"`
	Source          storefront.Source `json:"source"`
}

// CustomerInfo is the buyer identity on an order
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrderItemInfo is one purchased line
type OrderItemInfo struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// AddressInfo is a shipping destination
type AddressInfo struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// ProductResponse is the wire shape of a catalog product
type ProductResponse struct {
	PlatformProductID string          `json:"platform_product_id"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	ImageURL          string          `json:"image_url,omitempty"`
	Status            string          `json:"status,omitempty"`
	Platform          string          `json:"platform"`
}

func toOrderResponse(o storefront.Order) OrderResponse {
	items := make([]OrderItemInfo, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemInfo{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	resp := OrderResponse{
		PlatformOrderID: o.PlatformOrderID,
		OrderNumber:     o.OrderNumber,
		Customer: CustomerInfo{
			Name:  o.Customer.Name,
			Email: o.Customer.Email,
			Phone: o.Customer.Phone,
		},
		Items:         items,
		Amount:        o.Amount,
		PaymentMethod: string(o.PaymentMethod),
		Status:        string(o.Status),
		PlacedDate:    o.PlacedDate,
		DeliveredDate: o.DeliveredDate,
		Notes:         o.Notes,
		Platform:      o.Platform.String(),
		Source:        o.Source,
	}

	if o.ShippingAddress != nil {
		resp.ShippingAddress = &AddressInfo{
			Street:  o.ShippingAddress.Street,
			City:    o.ShippingAddress.City,
			State:   o.ShippingAddress.State,
			ZipCode: o.ShippingAddress.ZipCode,
			Country: o.ShippingAddress.Country,
		}
	}
	return resp
}

func toOrderResponses(orders []storefront.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return out
}

func toProductResponses(products []storefront.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ProductResponse{
			PlatformProductID: p.PlatformProductID,
			Name:              p.Name,
			Price:             p.Price,
			ImageURL:          p.ImageURL,
			Status:            p.Status,
			Platform:          p.Platform.String(),
		}
	}
	return out
}
