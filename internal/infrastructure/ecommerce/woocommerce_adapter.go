package ecommerce

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/backo/backend/internal/domain/storefront"
)

// errWooNotFound marks a 404 so customer lookups can report absence
var errWooNotFound = errors.New("woocommerce: resource not found")

// WooCommerceAdapter implements the storefront.Platform port against the
// WooCommerce v3 REST API using Basic auth
type WooCommerceAdapter struct {
	config     *WooCommerceConfig
	httpClient *http.Client
	logger     *zap.Logger
}

var _ storefront.Platform = (*WooCommerceAdapter)(nil)

// NewWooCommerceAdapter creates a WooCommerce adapter with the given
// configuration
func NewWooCommerceAdapter(config *WooCommerceConfig, logger *zap.Logger) (*WooCommerceAdapter, error) {
	if config == nil {
		config = DefaultWooCommerceConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &WooCommerceAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}, nil
}

// Code returns the platform code this adapter handles
func (a *WooCommerceAdapter) Code() storefront.PlatformCode {
	return storefront.PlatformWooCommerce
}

// FetchOrders retrieves all orders, walking page numbers until the
// X-WP-TotalPages header is exhausted or the record cap is reached
func (a *WooCommerceAdapter) FetchOrders(ctx context.Context, creds storefront.Credentials) ([]storefront.Order, error) {
	if err := validateWooCredentials(creds.BaseURL, creds.Key, creds.Secret); err != nil {
		return nil, fmt.Errorf("%w: %v", storefront.ErrPlatformMisconfigured, err)
	}

	var orders []storefront.Order
	for page := 1; ; page++ {
		endpoint := wooEndpoint(creds.BaseURL, fmt.Sprintf("orders?per_page=%d&page=%d&status=any", a.config.PageSize, page))
		body, header, err := a.doRequest(ctx, creds, endpoint)
		if err != nil {
			return nil, err
		}

		var raw []WooOrder
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("%w: failed to parse orders: %v", storefront.ErrPlatformInvalidResponse, err)
		}

		for _, o := range raw {
			orders = append(orders, ConvertWooOrder(o))
		}

		if len(orders) >= a.config.MaxRecords {
			a.logger.Warn("woocommerce order fetch hit record cap",
				zap.Int("cap", a.config.MaxRecords),
				zap.Int("fetched", len(orders)))
			orders = orders[:a.config.MaxRecords]
			break
		}

		if page >= wooTotalPages(header) || len(raw) == 0 {
			break
		}
	}
	return orders, nil
}

// FetchProducts retrieves the product catalog
func (a *WooCommerceAdapter) FetchProducts(ctx context.Context, creds storefront.Credentials) ([]storefront.Product, error) {
	if err := validateWooCredentials(creds.BaseURL, creds.Key, creds.Secret); err != nil {
		return nil, fmt.Errorf("%w: %v", storefront.ErrPlatformMisconfigured, err)
	}

	var products []storefront.Product
	for page := 1; ; page++ {
		endpoint := wooEndpoint(creds.BaseURL, fmt.Sprintf("products?per_page=%d&page=%d", a.config.PageSize, page))
		body, header, err := a.doRequest(ctx, creds, endpoint)
		if err != nil {
			return nil, err
		}

		var raw []WooProduct
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("%w: failed to parse products: %v", storefront.ErrPlatformInvalidResponse, err)
		}

		for _, p := range raw {
			products = append(products, convertWooProduct(p))
		}

		if len(products) >= a.config.MaxRecords {
			a.logger.Warn("woocommerce product fetch hit record cap", zap.Int("cap", a.config.MaxRecords))
			products = products[:a.config.MaxRecords]
			break
		}

		if page >= wooTotalPages(header) || len(raw) == 0 {
			break
		}
	}
	return products, nil
}

// FetchCustomers retrieves the customer list
func (a *WooCommerceAdapter) FetchCustomers(ctx context.Context, creds storefront.Credentials) ([]storefront.CustomerRecord, error) {
	if err := validateWooCredentials(creds.BaseURL, creds.Key, creds.Secret); err != nil {
		return nil, fmt.Errorf("%w: %v", storefront.ErrPlatformMisconfigured, err)
	}

	var customers []storefront.CustomerRecord
	for page := 1; ; page++ {
		endpoint := wooEndpoint(creds.BaseURL, fmt.Sprintf("customers?per_page=%d&page=%d", a.config.PageSize, page))
		body, header, err := a.doRequest(ctx, creds, endpoint)
		if err != nil {
			return nil, err
		}

		var raw []WooCustomer
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("%w: failed to parse customers: %v", storefront.ErrPlatformInvalidResponse, err)
		}

		for _, c := range raw {
			customers = append(customers, convertWooCustomer(c))
		}

		if len(customers) >= a.config.MaxRecords {
			a.logger.Warn("woocommerce customer fetch hit record cap", zap.Int("cap", a.config.MaxRecords))
			customers = customers[:a.config.MaxRecords]
			break
		}

		if page >= wooTotalPages(header) || len(raw) == 0 {
			break
		}
	}
	return customers, nil
}

// FetchCustomerByID retrieves one customer record; 404 yields (nil, nil)
func (a *WooCommerceAdapter) FetchCustomerByID(ctx context.Context, creds storefront.Credentials, customerID string) (*storefront.CustomerRecord, error) {
	if err := validateWooCredentials(creds.BaseURL, creds.Key, creds.Secret); err != nil {
		return nil, fmt.Errorf("%w: %v", storefront.ErrPlatformMisconfigured, err)
	}
	if customerID == "" {
		return nil, nil
	}

	endpoint := wooEndpoint(creds.BaseURL, "customers/"+url.PathEscape(customerID))
	body, _, err := a.doRequest(ctx, creds, endpoint)
	if err != nil {
		if errors.Is(err, errWooNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var raw WooCustomer
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse customer: %v", storefront.ErrPlatformInvalidResponse, err)
	}

	rec := convertWooCustomer(raw)
	return &rec, nil
}

// VerifyCredentials probes a cheap authenticated endpoint to prove the key
// pair works and the REST API is reachable
func (a *WooCommerceAdapter) VerifyCredentials(ctx context.Context, creds storefront.Credentials) error {
	if err := validateWooCredentials(creds.BaseURL, creds.Key, creds.Secret); err != nil {
		return fmt.Errorf("%w: %v", storefront.ErrPlatformMisconfigured, err)
	}

	endpoint := wooEndpoint(creds.BaseURL, "products?per_page=1")
	body, _, err := a.doRequest(ctx, creds, endpoint)
	if err != nil {
		return err
	}

	var probe []json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return fmt.Errorf("%w: products probe returned malformed payload", storefront.ErrPlatformInvalidResponse)
	}
	return nil
}

// doRequest performs an authenticated GET. An HTML content type means the
// URL points at a WordPress page instead of the REST API, which is reported
// as a misconfiguration rather than a transport failure. Error messages
// carry the HTTP status only, never the consumer key or secret.
func (a *WooCommerceAdapter) doRequest(ctx context.Context, creds storefront.Credentials, endpoint string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("woocommerce: failed to create request: %w", err)
	}
	auth := base64.StdEncoding.EncodeToString([]byte(creds.Key + ":" + creds.Secret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", storefront.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, nil, fmt.Errorf("woocommerce: failed to read response: %w", err)
	}

	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "text/html") {
		return nil, nil, fmt.Errorf("%w: API returned HTML instead of JSON, check the store URL and that the REST API is enabled", storefront.ErrPlatformMisconfigured)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil, errWooNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, nil, fmt.Errorf("%w: HTTP %d", storefront.ErrPlatformAuthFailed, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, nil, fmt.Errorf("%w: HTTP %d", storefront.ErrPlatformRequestFailed, resp.StatusCode)
	}

	return body, resp.Header, nil
}

// wooTotalPages reads the X-WP-TotalPages pagination header, defaulting to 1
func wooTotalPages(header http.Header) int {
	v := header.Get("X-WP-TotalPages")
	if v == "" {
		return 1
	}
	pages, err := strconv.Atoi(v)
	if err != nil || pages < 1 {
		return 1
	}
	return pages
}

// ConvertWooOrder maps a raw WooCommerce order onto the canonical shape
func ConvertWooOrder(o WooOrder) storefront.Order {
	contacts := storefront.ContactSources{
		BillingEmail:  o.Billing.Email,
		BillingPhone:  o.Billing.Phone,
		ShippingEmail: o.Shipping.Email,
		ShippingPhone: o.Shipping.Phone,
	}

	name := strings.TrimSpace(o.Billing.FirstName + " " + o.Billing.LastName)
	if name == "" {
		name = firstOf(o.Billing.Company, "Guest")
	}

	orderNumber := o.Number
	if orderNumber == "" {
		orderNumber = strconv.FormatInt(o.ID, 10)
	}

	customerID := ""
	if o.CustomerID > 0 {
		customerID = strconv.FormatInt(o.CustomerID, 10)
	}

	items := make([]storefront.OrderItem, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		items = append(items, storefront.OrderItem{
			ProductName: li.Name,
			Quantity:    li.Quantity,
			Price:       parseWooPrice(li.Price),
		})
	}

	var deliveredDate *time.Time
	if t := parseUpstreamTime(o.DateCompleted); !t.IsZero() {
		deliveredDate = &t
	}

	var shipping *storefront.Address
	if o.Shipping != (WooAddress{}) {
		shipping = &storefront.Address{
			Street:  o.Shipping.Address1,
			City:    o.Shipping.City,
			State:   o.Shipping.State,
			ZipCode: o.Shipping.Postcode,
			Country: o.Shipping.Country,
		}
	}

	return storefront.Order{
		PlatformOrderID: strconv.FormatInt(o.ID, 10),
		OrderNumber:     orderNumber,
		CustomerID:      customerID,
		Customer: storefront.Customer{
			Name:  name,
			Email: contacts.BestEmail(),
			Phone: contacts.BestPhone(),
		},
		Items:           items,
		Amount:          ParseDecimal(o.Total),
		PaymentMethod:   mapWooPaymentMethod(o.PaymentMethod),
		Status:          MapWooOrderStatus(o.Status),
		PlacedDate:      parseUpstreamTime(o.DateCreated),
		DeliveredDate:   deliveredDate,
		ShippingAddress: shipping,
		Notes:           o.CustomerNote,
		Platform:        storefront.PlatformWooCommerce,
		Source:          storefront.SourceAPI,
		Contacts:        contacts,
	}
}

// MapWooOrderStatus maps a WooCommerce order status string to the canonical
// status; anything unknown falls back to Pending
func MapWooOrderStatus(status string) storefront.OrderStatus {
	switch strings.ToLower(status) {
	case "pending":
		return storefront.StatusPending
	case "processing", "on-hold":
		return storefront.StatusProcessing
	case "completed":
		return storefront.StatusDelivered
	case "cancelled", "refunded", "failed":
		return storefront.StatusCancelled
	}
	return storefront.StatusPending
}

// mapWooPaymentMethod reduces the gateway id to the canonical pair: cash on
// delivery stays COD, every other gateway is a prepaid capture
func mapWooPaymentMethod(gateway string) storefront.PaymentMethod {
	if strings.EqualFold(gateway, "cod") {
		return storefront.PaymentCOD
	}
	return storefront.PaymentPrepaid
}

func convertWooCustomer(c WooCustomer) storefront.CustomerRecord {
	email := c.Email
	if email == "" {
		email = c.Billing.Email
	}
	phone := c.Phone
	if phone == "" {
		phone = c.Billing.Phone
	}
	return storefront.CustomerRecord{
		ID:        strconv.FormatInt(c.ID, 10),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     email,
		Phone:     phone,
	}
}

func convertWooProduct(p WooProduct) storefront.Product {
	product := storefront.Product{
		PlatformProductID: strconv.FormatInt(p.ID, 10),
		Name:              p.Name,
		Price:             ParseDecimal(p.Price),
		Status:            p.Status,
		Platform:          storefront.PlatformWooCommerce,
	}
	if len(p.Images) > 0 {
		product.ImageURL = p.Images[0].Src
	}
	return product
}

// parseWooPrice tolerates the API returning line prices as either JSON
// numbers or strings
func parseWooPrice(v interface{}) decimal.Decimal {
	switch p := v.(type) {
	case string:
		return ParseDecimal(p)
	case float64:
		return decimal.NewFromFloat(p)
	case json.Number:
		return ParseDecimal(p.String())
	}
	return decimal.Zero
}
