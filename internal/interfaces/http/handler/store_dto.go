package handler

import (
	"github.com/backo/backend/internal/domain/store"
)

// StoreResponse is the merchant's own view of their store. Platform access
// tokens and consumer secrets never appear here; the Woo webhook secret does,
// because the merchant needs it to build the webhook URL.
type StoreResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	StoreName    string `json:"store_name"`
	StoreURL     string `json:"store_url"`
	StoreLogo    string `json:"store_logo,omitempty"`
	IsStoreSetup bool   `json:"is_store_setup"`

	Shopify     ShopifyConnectionInfo `json:"shopify"`
	WooCommerce WooConnectionInfo     `json:"woocommerce"`

	ReturnPolicy ReturnPolicyInfo `json:"return_policy"`
	Branding     BrandingInfo     `json:"branding"`
}

// ShopifyConnectionInfo is the Shopify connection state without the token
type ShopifyConnectionInfo struct {
	ShopDomain string `json:"shop_domain,omitempty"`
	Connected  bool   `json:"connected"`
}

// WooConnectionInfo is the WooCommerce connection state without the key pair
type WooConnectionInfo struct {
	StoreURL      string `json:"store_url,omitempty"`
	WebhookSecret string `json:"webhook_secret,omitempty"`
	Connected     bool   `json:"connected"`
}

// ReturnPolicyInfo mirrors the store's return policy settings
type ReturnPolicyInfo struct {
	ReturnWindowDays           int  `json:"return_window_days"`
	AutomaticApprovalThreshold int  `json:"automatic_approval_threshold"`
	RefundViaBankTransfer      bool `json:"refund_via_bank_transfer"`
	RefundViaDigitalWallet     bool `json:"refund_via_digital_wallet"`
	RefundViaStoreCredit       bool `json:"refund_via_store_credit"`
}

// BrandingInfo is the portal appearance settings
type BrandingInfo struct {
	PrimaryColor string `json:"primary_color"`
}

func toStoreResponse(st *store.Store) StoreResponse {
	return StoreResponse{
		ID:           st.ID.String(),
		Email:        st.Email,
		StoreName:    st.StoreName,
		StoreURL:     st.StoreURL,
		StoreLogo:    st.StoreLogo,
		IsStoreSetup: st.IsStoreSetup,
		Shopify: ShopifyConnectionInfo{
			ShopDomain: st.Shopify.ShopDomain,
			Connected:  st.Shopify.IsConnected,
		},
		WooCommerce: WooConnectionInfo{
			StoreURL:      st.WooCommerce.StoreURL,
			WebhookSecret: st.WooCommerce.SecretKey,
			Connected:     st.WooCommerce.IsConnected,
		},
		ReturnPolicy: ReturnPolicyInfo{
			ReturnWindowDays:           st.ReturnPolicy.ReturnWindowDays,
			AutomaticApprovalThreshold: st.ReturnPolicy.AutomaticApprovalThreshold,
			RefundViaBankTransfer:      st.ReturnPolicy.RefundViaBankTransfer,
			RefundViaDigitalWallet:     st.ReturnPolicy.RefundViaDigitalWallet,
			RefundViaStoreCredit:       st.ReturnPolicy.RefundViaStoreCredit,
		},
		Branding: BrandingInfo{
			PrimaryColor: st.Branding.PrimaryColor,
		},
	}
}
