package models

import (
	"github.com/backo/backend/internal/domain/store"
)

// StoreModel is the GORM model for merchant stores
type StoreModel struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`

	StoreName    string `gorm:"type:varchar(255)"`
	StoreURL     string `gorm:"type:varchar(500);index"`
	StoreLogo    string `gorm:"type:text"`
	IsStoreSetup bool   `gorm:"not null;default:false"`

	ShopifyShopDomain  string `gorm:"type:varchar(255)"`
	ShopifyAccessToken string `gorm:"type:varchar(255)"`
	ShopifyConnected   bool   `gorm:"not null;default:false"`

	WooStoreURL       string `gorm:"type:varchar(500)"`
	WooConsumerKey    string `gorm:"type:varchar(255)"`
	WooConsumerSecret string `gorm:"type:varchar(255)"`
	WooSecretKey      string `gorm:"type:varchar(255);index"`
	WooConnected      bool   `gorm:"not null;default:false"`

	ReturnWindowDays           int  `gorm:"not null;default:30"`
	AutomaticApprovalThreshold int  `gorm:"not null;default:50"`
	RefundViaBankTransfer      bool `gorm:"not null;default:true"`
	RefundViaDigitalWallet     bool `gorm:"not null;default:true"`
	RefundViaStoreCredit       bool `gorm:"not null;default:true"`

	PrimaryColor string `gorm:"type:varchar(32)"`
}

// TableName specifies the table name
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the model to a domain store
func (m *StoreModel) ToDomain() *store.Store {
	return &store.Store{
		BaseEntity:   m.BaseModel.ToDomain(),
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		StoreName:    m.StoreName,
		StoreURL:     m.StoreURL,
		StoreLogo:    m.StoreLogo,
		IsStoreSetup: m.IsStoreSetup,
		Shopify: store.ShopifyConnection{
			ShopDomain:  m.ShopifyShopDomain,
			AccessToken: m.ShopifyAccessToken,
			IsConnected: m.ShopifyConnected,
		},
		WooCommerce: store.WooCommerceConnection{
			StoreURL:       m.WooStoreURL,
			ConsumerKey:    m.WooConsumerKey,
			ConsumerSecret: m.WooConsumerSecret,
			SecretKey:      m.WooSecretKey,
			IsConnected:    m.WooConnected,
		},
		ReturnPolicy: store.ReturnPolicy{
			ReturnWindowDays:           m.ReturnWindowDays,
			AutomaticApprovalThreshold: m.AutomaticApprovalThreshold,
			RefundViaBankTransfer:      m.RefundViaBankTransfer,
			RefundViaDigitalWallet:     m.RefundViaDigitalWallet,
			RefundViaStoreCredit:       m.RefundViaStoreCredit,
		},
		Branding: store.Branding{PrimaryColor: m.PrimaryColor},
	}
}

// StoreModelFromDomain converts a domain store to the model
func StoreModelFromDomain(s *store.Store) *StoreModel {
	m := &StoreModel{
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		StoreName:    s.StoreName,
		StoreURL:     s.StoreURL,
		StoreLogo:    s.StoreLogo,
		IsStoreSetup: s.IsStoreSetup,

		ShopifyShopDomain:  s.Shopify.ShopDomain,
		ShopifyAccessToken: s.Shopify.AccessToken,
		ShopifyConnected:   s.Shopify.IsConnected,

		WooStoreURL:       s.WooCommerce.StoreURL,
		WooConsumerKey:    s.WooCommerce.ConsumerKey,
		WooConsumerSecret: s.WooCommerce.ConsumerSecret,
		WooSecretKey:      s.WooCommerce.SecretKey,
		WooConnected:      s.WooCommerce.IsConnected,

		ReturnWindowDays:           s.ReturnPolicy.ReturnWindowDays,
		AutomaticApprovalThreshold: s.ReturnPolicy.AutomaticApprovalThreshold,
		RefundViaBankTransfer:      s.ReturnPolicy.RefundViaBankTransfer,
		RefundViaDigitalWallet:     s.ReturnPolicy.RefundViaDigitalWallet,
		RefundViaStoreCredit:       s.ReturnPolicy.RefundViaStoreCredit,

		PrimaryColor: s.Branding.PrimaryColor,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}
