package ecommerce

import (
	"errors"
	"fmt"
	"strings"
)

// Shopify configuration errors
var (
	ErrShopifyShopDomainRequired  = errors.New("shopify: shop domain is required")
	ErrShopifyAccessTokenRequired = errors.New("shopify: access token is required")
)

// ShopifyConfig holds the adapter-level settings shared by every merchant.
// Per-merchant credentials travel with each call.
type ShopifyConfig struct {
	// APIVersion selects the Admin REST API version path segment
	APIVersion string

	// TimeoutSeconds is the HTTP client timeout
	TimeoutSeconds int

	// PageSize is the per-page limit passed to list endpoints (max 250)
	PageSize int

	// MaxRecords caps how many records one fetch may accumulate across pages
	MaxRecords int
}

// DefaultShopifyConfig returns production defaults
func DefaultShopifyConfig() *ShopifyConfig {
	return &ShopifyConfig{
		APIVersion:     "2024-10",
		TimeoutSeconds: 30,
		PageSize:       250,
		MaxRecords:     1000,
	}
}

// Validate checks the configuration and applies bounds
func (c *ShopifyConfig) Validate() error {
	if c.APIVersion == "" {
		c.APIVersion = "2024-10"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.PageSize <= 0 || c.PageSize > 250 {
		c.PageSize = 250
	}
	if c.MaxRecords <= 0 {
		c.MaxRecords = 1000
	}
	return nil
}

// CleanShopDomain normalizes a merchant-entered shop domain: scheme, "www."
// and trailing slashes are stripped, and a bare store handle gets the
// ".myshopify.com" suffix. A domain given with an explicit scheme is kept
// verbatim minus trailing slashes so non-TLS test endpoints keep working.
func CleanShopDomain(domain string) string {
	d := strings.TrimSpace(domain)
	if strings.HasPrefix(d, "http://") || strings.HasPrefix(d, "https://") {
		return strings.TrimRight(d, "/")
	}
	d = strings.TrimPrefix(d, "www.")
	d = strings.TrimRight(d, "/")
	if d != "" && !strings.Contains(d, ".") {
		d += ".myshopify.com"
	}
	return d
}

// shopifyEndpoint builds the versioned Admin API URL for a resource path
func (c *ShopifyConfig) shopifyEndpoint(shopDomain, resource string) string {
	base := CleanShopDomain(shopDomain)
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return fmt.Sprintf("%s/admin/api/%s/%s", base, c.APIVersion, resource)
}

// validateShopifyCredentials checks the per-merchant credential set
func validateShopifyCredentials(baseURL, key string) error {
	if strings.TrimSpace(baseURL) == "" {
		return ErrShopifyShopDomainRequired
	}
	if strings.TrimSpace(key) == "" {
		return ErrShopifyAccessTokenRequired
	}
	return nil
}
