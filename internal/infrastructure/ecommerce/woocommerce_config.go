package ecommerce

import (
	"errors"
	"fmt"
	"strings"
)

// WooCommerce configuration errors
var (
	ErrWooStoreURLRequired    = errors.New("woocommerce: store url is required")
	ErrWooConsumerKeyRequired = errors.New("woocommerce: consumer key and secret are required")
)

// WooCommerceConfig holds the adapter-level settings shared by every
// merchant
type WooCommerceConfig struct {
	// TimeoutSeconds is the HTTP client timeout
	TimeoutSeconds int

	// PageSize is the per_page value passed to list endpoints (max 100)
	PageSize int

	// MaxRecords caps how many records one fetch may accumulate across pages
	MaxRecords int
}

// DefaultWooCommerceConfig returns production defaults
func DefaultWooCommerceConfig() *WooCommerceConfig {
	return &WooCommerceConfig{
		TimeoutSeconds: 30,
		PageSize:       100,
		MaxRecords:     1000,
	}
}

// Validate checks the configuration and applies bounds
func (c *WooCommerceConfig) Validate() error {
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.PageSize <= 0 || c.PageSize > 100 {
		c.PageSize = 100
	}
	if c.MaxRecords <= 0 {
		c.MaxRecords = 1000
	}
	return nil
}

// CleanWooStoreURL normalizes a merchant-entered site URL: whitespace and
// trailing slashes go, and a missing scheme defaults to https
func CleanWooStoreURL(storeURL string) string {
	u := strings.TrimSpace(storeURL)
	u = strings.TrimRight(u, "/")
	if u == "" {
		return ""
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return u
}

// wooEndpoint builds a WooCommerce v3 REST URL for a resource path
func wooEndpoint(storeURL, resource string) string {
	return fmt.Sprintf("%s/wp-json/wc/v3/%s", CleanWooStoreURL(storeURL), resource)
}

// validateWooCredentials checks the per-merchant credential set
func validateWooCredentials(baseURL, key, secret string) error {
	if strings.TrimSpace(baseURL) == "" {
		return ErrWooStoreURLRequired
	}
	if strings.TrimSpace(key) == "" || strings.TrimSpace(secret) == "" {
		return ErrWooConsumerKeyRequired
	}
	return nil
}
