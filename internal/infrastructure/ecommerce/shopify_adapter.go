package ecommerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/backo/backend/internal/domain/storefront"
)

// maxResponseSize is the maximum allowed response size from a platform API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// errShopifyNotFound marks a 404 from the Admin API so callers can treat a
// missing customer as absence instead of failure
var errShopifyNotFound = errors.New("shopify: resource not found")

// ShopifyAdapter implements the storefront.Platform port against the
// Shopify Admin REST API
type ShopifyAdapter struct {
	config     *ShopifyConfig
	httpClient *http.Client
	logger     *zap.Logger
}

var _ storefront.Platform = (*ShopifyAdapter)(nil)

// NewShopifyAdapter creates a Shopify adapter with the given configuration
func NewShopifyAdapter(config *ShopifyConfig, logger *zap.Logger) (*ShopifyAdapter, error) {
	if config == nil {
		config = DefaultShopifyConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &ShopifyAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}, nil
}

// Code returns the platform code this adapter handles
func (a *ShopifyAdapter) Code() storefront.PlatformCode {
	return storefront.PlatformShopify
}

// FetchOrders retrieves all orders, following the Link-header cursor until
// exhausted or the record cap is reached
func (a *ShopifyAdapter) FetchOrders(ctx context.Context, creds storefront.Credentials) ([]storefront.Order, error) {
	if err := validateShopifyCredentials(creds.BaseURL, creds.Key); err != nil {
		return nil, fmt.Errorf("%w: %v", storefront.ErrPlatformMisconfigured, err)
	}

	var orders []storefront.Order
	pageInfo := ""
	for {
		endpoint := a.config.shopifyEndpoint(creds.BaseURL, fmt.Sprintf("orders.json?status=any&limit=%d", a.config.PageSize))
		if pageInfo != "" {
			endpoint += "&page_info=" + url.QueryEscape(pageInfo)
		}

		body, header, err := a.doRequest(ctx, creds, endpoint)
		if err != nil {
			return nil, err
		}

		var resp ShopifyOrdersResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("%w: failed to parse orders: %v", storefront.ErrPlatformInvalidResponse, err)
		}

		for _, raw := range resp.Orders {
			orders = append(orders, ConvertShopifyOrder(raw))
		}

		if len(orders) >= a.config.MaxRecords {
			a.logger.Warn("shopify order fetch hit record cap",
				zap.Int("cap", a.config.MaxRecords),
				zap.Int("fetched", len(orders)))
			orders = orders[:a.config.MaxRecords]
			break
		}

		pageInfo = parseNextPageInfo(header.Get("Link"))
		if pageInfo == "" || len(resp.Orders) == 0 {
			break
		}
	}
	return orders, nil
}

// FetchProducts retrieves the product catalog with cursor pagination
func (a *ShopifyAdapter) FetchProducts(ctx context.Context, creds storefront.Credentials) ([]storefront.Product, error) {
	if err := validateShopifyCredentials(creds.BaseURL, creds.Key); err != nil {
		return nil, fmt.Errorf("%w: %v", storefront.ErrPlatformMisconfigured, err)
	}

	var products []storefront.Product
	pageInfo := ""
	for {
		endpoint := a.config.shopifyEndpoint(creds.BaseURL, fmt.Sprintf("products.json?limit=%d", a.config.PageSize))
		if pageInfo != "" {
			endpoint += "&page_info=" + url.QueryEscape(pageInfo)
		}

		body, header, err := a.doRequest(ctx, creds, endpoint)
		if err != nil {
			return nil, err
		}

		var resp ShopifyProductsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("%w: failed to parse products: %v", storefront.ErrPlatformInvalidResponse, err)
		}

		for _, raw := range resp.Products {
			products = append(products, convertShopifyProduct(raw))
		}

		if len(products) >= a.config.MaxRecords {
			a.logger.Warn("shopify product fetch hit record cap", zap.Int("cap", a.config.MaxRecords))
			products = products[:a.config.MaxRecords]
			break
		}

		pageInfo = parseNextPageInfo(header.Get("Link"))
		if pageInfo == "" || len(resp.Products) == 0 {
			break
		}
	}
	return products, nil
}

// FetchCustomers retrieves the customer list with cursor pagination
func (a *ShopifyAdapter) FetchCustomers(ctx context.Context, creds storefront.Credentials) ([]storefront.CustomerRecord, error) {
	if err := validateShopifyCredentials(creds.BaseURL, creds.Key); err != nil {
		return nil, fmt.Errorf("%w: %v", storefront.ErrPlatformMisconfigured, err)
	}

	var customers []storefront.CustomerRecord
	pageInfo := ""
	for {
		endpoint := a.config.shopifyEndpoint(creds.BaseURL, fmt.Sprintf("customers.json?limit=%d", a.config.PageSize))
		if pageInfo != "" {
			endpoint += "&page_info=" + url.QueryEscape(pageInfo)
		}

		body, header, err := a.doRequest(ctx, creds, endpoint)
		if err != nil {
			return nil, err
		}

		var resp ShopifyCustomersResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("%w: failed to parse customers: %v", storefront.ErrPlatformInvalidResponse, err)
		}

		for _, raw := range resp.Customers {
			customers = append(customers, convertShopifyCustomer(raw))
		}

		if len(customers) >= a.config.MaxRecords {
			a.logger.Warn("shopify customer fetch hit record cap", zap.Int("cap", a.config.MaxRecords))
			customers = customers[:a.config.MaxRecords]
			break
		}

		pageInfo = parseNextPageInfo(header.Get("Link"))
		if pageInfo == "" || len(resp.Customers) == 0 {
			break
		}
	}
	return customers, nil
}

// FetchCustomerByID retrieves one customer record. A 404 means the customer
// no longer exists upstream and yields (nil, nil).
func (a *ShopifyAdapter) FetchCustomerByID(ctx context.Context, creds storefront.Credentials, customerID string) (*storefront.CustomerRecord, error) {
	if err := validateShopifyCredentials(creds.BaseURL, creds.Key); err != nil {
		return nil, fmt.Errorf("%w: %v", storefront.ErrPlatformMisconfigured, err)
	}
	if customerID == "" {
		return nil, nil
	}

	endpoint := a.config.shopifyEndpoint(creds.BaseURL, fmt.Sprintf("customers/%s.json", url.PathEscape(customerID)))
	body, _, err := a.doRequest(ctx, creds, endpoint)
	if err != nil {
		if errors.Is(err, errShopifyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var resp ShopifyCustomerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse customer: %v", storefront.ErrPlatformInvalidResponse, err)
	}

	rec := convertShopifyCustomer(resp.Customer)
	return &rec, nil
}

// VerifyCredentials proves the token works by loading the shop resource
func (a *ShopifyAdapter) VerifyCredentials(ctx context.Context, creds storefront.Credentials) error {
	if err := validateShopifyCredentials(creds.BaseURL, creds.Key); err != nil {
		return fmt.Errorf("%w: %v", storefront.ErrPlatformMisconfigured, err)
	}

	endpoint := a.config.shopifyEndpoint(creds.BaseURL, "shop.json")
	body, _, err := a.doRequest(ctx, creds, endpoint)
	if err != nil {
		return err
	}

	var resp ShopifyShopResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("%w: failed to parse shop: %v", storefront.ErrPlatformInvalidResponse, err)
	}
	if resp.Shop.ID == 0 {
		return fmt.Errorf("%w: shop payload missing id", storefront.ErrPlatformInvalidResponse)
	}
	return nil
}

// doRequest performs an authenticated GET against the Admin API. Error
// messages carry the HTTP status only, never the token.
func (a *ShopifyAdapter) doRequest(ctx context.Context, creds storefront.Credentials, endpoint string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", creds.Key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", storefront.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, nil, fmt.Errorf("shopify: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil, errShopifyNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, nil, fmt.Errorf("%w: HTTP %d", storefront.ErrPlatformAuthFailed, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, nil, fmt.Errorf("%w: HTTP %d", storefront.ErrPlatformRequestFailed, resp.StatusCode)
	}

	return body, resp.Header, nil
}

// parseNextPageInfo extracts the page_info cursor from the rel="next" entry
// of a Link header, or returns "" when there is no next page
func parseNextPageInfo(linkHeader string) string {
	if linkHeader == "" {
		return ""
	}
	for _, part := range strings.Split(linkHeader, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start < 0 || end < 0 || end <= start {
			continue
		}
		u, err := url.Parse(part[start+1 : end])
		if err != nil {
			continue
		}
		return u.Query().Get("page_info")
	}
	return ""
}

// ConvertShopifyOrder maps a raw Shopify order onto the canonical shape
func ConvertShopifyOrder(o ShopifyOrder) storefront.Order {
	contacts := storefront.ContactSources{
		OrderEmail: o.Email,
		OrderPhone: o.Phone,
	}
	customerName := ""
	customerID := ""
	if o.Customer != nil {
		contacts.CustomerEmail = o.Customer.Email
		contacts.CustomerPhone = o.Customer.Phone
		customerName = strings.TrimSpace(o.Customer.FirstName + " " + o.Customer.LastName)
		if o.Customer.ID > 0 {
			customerID = strconv.FormatInt(o.Customer.ID, 10)
		}
	}
	if o.BillingAddress != nil {
		contacts.BillingEmail = o.BillingAddress.Email
		contacts.BillingPhone = o.BillingAddress.Phone
	}
	if o.ShippingAddress != nil {
		contacts.ShippingEmail = o.ShippingAddress.Email
		contacts.ShippingPhone = o.ShippingAddress.Phone
	}

	if customerName == "" {
		customerName = firstOf(
			o.Email,
			addressName(o.ShippingAddress),
			addressName(o.BillingAddress),
			"Guest",
		)
	}

	orderNumber := o.Name
	if orderNumber == "" && o.OrderNumber > 0 {
		orderNumber = strconv.FormatInt(o.OrderNumber, 10)
	}
	altNumber := ""
	if o.OrderNumber > 0 {
		altNumber = strconv.FormatInt(o.OrderNumber, 10)
	}

	items := make([]storefront.OrderItem, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		items = append(items, storefront.OrderItem{
			ProductName: li.Name,
			Quantity:    li.Quantity,
			Price:       ParseDecimal(li.Price),
		})
	}

	payment := storefront.PaymentPrepaid
	if strings.EqualFold(o.FinancialStatus, "pending") {
		payment = storefront.PaymentCOD
	}

	var deliveredDate *time.Time
	if len(o.Fulfillments) > 0 {
		if t := parseUpstreamTime(o.Fulfillments[0].CreatedAt); !t.IsZero() {
			deliveredDate = &t
		}
	}

	var shipping *storefront.Address
	if o.ShippingAddress != nil {
		shipping = &storefront.Address{
			Street:  o.ShippingAddress.Address1,
			City:    o.ShippingAddress.City,
			State:   o.ShippingAddress.Province,
			ZipCode: o.ShippingAddress.Zip,
			Country: o.ShippingAddress.Country,
		}
	}

	return storefront.Order{
		PlatformOrderID: strconv.FormatInt(o.ID, 10),
		OrderNumber:     orderNumber,
		AltOrderNumber:  altNumber,
		CustomerID:      customerID,
		Customer: storefront.Customer{
			Name:  customerName,
			Email: contacts.BestEmail(),
			Phone: contacts.BestPhone(),
		},
		Items:           items,
		Amount:          ParseDecimal(o.TotalPrice),
		PaymentMethod:   payment,
		Status:          MapShopifyOrderStatus(o.FulfillmentStat, o.FinancialStatus, o.CancelledAt, o.Fulfillments),
		PlacedDate:      parseUpstreamTime(o.CreatedAt),
		DeliveredDate:   deliveredDate,
		ShippingAddress: shipping,
		Notes:           o.Note,
		Platform:        storefront.PlatformShopify,
		Source:          storefront.SourceAPI,
		Contacts:        contacts,
	}
}

// MapShopifyOrderStatus reduces Shopify's status triple to the canonical
// status. Precedence: cancellation, then fulfillment state, then financial
// state, then Pending.
func MapShopifyOrderStatus(fulfillmentStatus, financialStatus, cancelledAt string, fulfillments []ShopifyFulfillment) storefront.OrderStatus {
	if cancelledAt != "" {
		return storefront.StatusCancelled
	}
	fin := strings.ToLower(financialStatus)
	if fin == "refunded" || fin == "voided" {
		return storefront.StatusCancelled
	}

	// A recorded fulfillment counts as delivered unless it failed, even
	// when the order-level summary is still blank
	for _, f := range fulfillments {
		switch strings.ToLower(f.Status) {
		case "cancelled", "error", "failure":
		default:
			return storefront.StatusDelivered
		}
	}

	switch strings.ToLower(fulfillmentStatus) {
	case "fulfilled":
		return storefront.StatusDelivered
	case "partial":
		return storefront.StatusInTransit
	}

	if fin == "paid" || fin == "authorized" {
		return storefront.StatusProcessing
	}
	return storefront.StatusPending
}

func convertShopifyCustomer(c ShopifyCustomer) storefront.CustomerRecord {
	return storefront.CustomerRecord{
		ID:        strconv.FormatInt(c.ID, 10),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

func convertShopifyProduct(p ShopifyProduct) storefront.Product {
	product := storefront.Product{
		PlatformProductID: strconv.FormatInt(p.ID, 10),
		Name:              p.Title,
		Status:            p.Status,
		Platform:          storefront.PlatformShopify,
	}
	if len(p.Variants) > 0 {
		product.Price = ParseDecimal(p.Variants[0].Price)
	}
	if len(p.Images) > 0 {
		product.ImageURL = p.Images[0].Src
	}
	return product
}

func addressName(a *ShopifyAddress) string {
	if a == nil {
		return ""
	}
	return a.Name
}

func firstOf(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
