package store

import (
	"strings"

	"github.com/backo/backend/internal/domain/shared"
	"github.com/backo/backend/internal/domain/storefront"
)

// Store is the merchant aggregate: login identity, storefront metadata and
// the per-platform credentials used by the upstream adapters.
type Store struct {
	shared.BaseEntity

	Email        string
	PasswordHash string

	StoreName string
	StoreURL  string
	StoreLogo string

	IsStoreSetup bool

	Shopify     ShopifyConnection
	WooCommerce WooCommerceConnection

	ReturnPolicy ReturnPolicy
	Branding     Branding
}

// ShopifyConnection holds Shopify Admin API credentials for one merchant
type ShopifyConnection struct {
	ShopDomain  string
	AccessToken string
	IsConnected bool
}

// WooCommerceConnection holds WooCommerce REST credentials for one merchant.
// SecretKey is the portal-generated shared secret embedded in the webhook URL.
type WooCommerceConnection struct {
	StoreURL       string
	ConsumerKey    string
	ConsumerSecret string
	SecretKey      string
	IsConnected    bool
}

// ReturnPolicy configures how the merchant handles incoming returns
type ReturnPolicy struct {
	ReturnWindowDays           int
	AutomaticApprovalThreshold int
	RefundViaBankTransfer      bool
	RefundViaDigitalWallet     bool
	RefundViaStoreCredit       bool
}

// DefaultReturnPolicy mirrors the defaults applied to new merchants
func DefaultReturnPolicy() ReturnPolicy {
	return ReturnPolicy{
		ReturnWindowDays:           30,
		AutomaticApprovalThreshold: 50,
		RefundViaBankTransfer:      true,
		RefundViaDigitalWallet:     true,
		RefundViaStoreCredit:       true,
	}
}

// Branding is the public return-portal appearance
type Branding struct {
	PrimaryColor string
}

// NewStore creates a merchant with policy defaults. The password must
// already be hashed by the caller.
func NewStore(email, passwordHash string) *Store {
	return &Store{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		ReturnPolicy: DefaultReturnPolicy(),
		Branding:     Branding{PrimaryColor: "#FF7F14"},
	}
}

// CompleteSetup records the storefront metadata captured during onboarding
func (s *Store) CompleteSetup(name, url, logo string) {
	s.StoreName = strings.TrimSpace(name)
	s.StoreURL = strings.TrimSpace(url)
	if logo != "" {
		s.StoreLogo = logo
	}
	s.IsStoreSetup = true
	s.Touch()
}

// ConnectShopify stores verified Shopify credentials
func (s *Store) ConnectShopify(shopDomain, accessToken string) {
	s.Shopify = ShopifyConnection{
		ShopDomain:  strings.TrimSpace(shopDomain),
		AccessToken: accessToken,
		IsConnected: true,
	}
	s.Touch()
}

// DisconnectShopify drops the Shopify credentials
func (s *Store) DisconnectShopify() {
	s.Shopify = ShopifyConnection{}
	s.Touch()
}

// ConnectWooCommerce stores verified WooCommerce credentials
func (s *Store) ConnectWooCommerce(storeURL, consumerKey, consumerSecret, secretKey string) {
	s.WooCommerce = WooCommerceConnection{
		StoreURL:       strings.TrimSpace(storeURL),
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
		SecretKey:      secretKey,
		IsConnected:    true,
	}
	s.Touch()
}

// DisconnectWooCommerce drops the WooCommerce credentials
func (s *Store) DisconnectWooCommerce() {
	s.WooCommerce = WooCommerceConnection{}
	s.Touch()
}

// HasShopify reports whether a usable Shopify connection exists
func (s *Store) HasShopify() bool {
	return s.Shopify.IsConnected && s.Shopify.ShopDomain != "" && s.Shopify.AccessToken != ""
}

// HasWooCommerce reports whether a usable WooCommerce connection exists
func (s *Store) HasWooCommerce() bool {
	return s.WooCommerce.IsConnected && s.WooCommerce.StoreURL != "" &&
		s.WooCommerce.ConsumerKey != "" && s.WooCommerce.ConsumerSecret != ""
}

// HasAnyPlatform reports whether at least one platform is connected
func (s *Store) HasAnyPlatform() bool {
	return s.HasShopify() || s.HasWooCommerce()
}

// PlatformCredentials lists the credential sets for every connected
// platform, Shopify first. The slice feeds the upstream adapters directly.
func (s *Store) PlatformCredentials() []storefront.Credentials {
	var creds []storefront.Credentials
	if s.HasShopify() {
		creds = append(creds, storefront.Credentials{
			Platform: storefront.PlatformShopify,
			BaseURL:  s.Shopify.ShopDomain,
			Key:      s.Shopify.AccessToken,
		})
	}
	if s.HasWooCommerce() {
		creds = append(creds, storefront.Credentials{
			Platform: storefront.PlatformWooCommerce,
			BaseURL:  s.WooCommerce.StoreURL,
			Key:      s.WooCommerce.ConsumerKey,
			Secret:   s.WooCommerce.ConsumerSecret,
		})
	}
	return creds
}
