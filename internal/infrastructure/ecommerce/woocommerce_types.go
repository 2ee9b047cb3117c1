package ecommerce

// WooCommerce v3 REST wire types. Endpoints return bare JSON arrays, so
// there are no envelope structs here.

// WooOrder is one order as returned by GET /orders
type WooOrder struct {
	ID                 int64         `json:"id"`
	Number             string        `json:"number"`
	Status             string        `json:"status"`
	Total              string        `json:"total"`
	DateCreated        string        `json:"date_created"`
	DateCompleted      string        `json:"date_completed"`
	PaymentMethod      string        `json:"payment_method"`
	PaymentMethodTitle string        `json:"payment_method_title"`
	CustomerID         int64         `json:"customer_id"`
	CustomerNote       string        `json:"customer_note"`
	Billing            WooAddress    `json:"billing"`
	Shipping           WooAddress    `json:"shipping"`
	LineItems          []WooLineItem `json:"line_items"`
}

// WooAddress is a billing or shipping block; email/phone only exist on
// billing in the Woo schema but decoding tolerates either
type WooAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// WooLineItem is one purchased line on an order
type WooLineItem struct {
	Name        string      `json:"name"`
	Quantity    int         `json:"quantity"`
	Price       interface{} `json:"price"`
	ProductID   int64       `json:"product_id"`
	VariationID int64       `json:"variation_id"`
}

// WooCustomer is one customer as returned by GET /customers
type WooCustomer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Billing   struct {
		Phone string `json:"phone"`
		Email string `json:"email"`
	} `json:"billing"`
}

// WooProduct is one catalog product
type WooProduct struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Price  string `json:"price"`
	Images []struct {
		Src string `json:"src"`
	} `json:"images"`
}
