package entity

import (
	"time"

	"github.com/sangkips/jewelbill-api/internal/domain/enum"
	"gorm.io/datatypes"
)

// SettingsID is the primary key of the single settings row
const SettingsID uint = 1

// Feature toggle names stored in BusinessSettings.Features
const (
	FeatureEstimates        = "estimates"
	FeatureDeliveryVouchers = "delivery_vouchers"
	FeaturePurchaseBills    = "purchase_bills"
	FeatureGSTReport        = "gst_report"
)

// BusinessSettings holds the process-wide billing configuration
type BusinessSettings struct {
	ID             uint   `gorm:"primaryKey" json:"-"`
	CompanyName    string `gorm:"size:255;not null" json:"company_name"`
	CompanyAddress string `gorm:"type:text" json:"company_address"`
	CompanyPhone   string `gorm:"size:30" json:"company_phone"`
	CompanyEmail   string `gorm:"size:255" json:"company_email"`
	GSTIN          string `gorm:"size:20" json:"gstin"`

	// Tax
	CGSTRate float64 `gorm:"type:decimal(5,2);default:1.5" json:"cgst_rate"`
	SGSTRate float64 `gorm:"type:decimal(5,2);default:1.5" json:"sgst_rate"`

	// Pricing defaults applied to new items
	DefaultMakingChargeType   enum.MakingChargeType `gorm:"size:20" json:"default_making_charge_type"`
	DefaultMakingCharge       float64               `gorm:"type:decimal(15,2);default:0" json:"default_making_charge"`
	DefaultPurchaseNetType    enum.PurchaseNetType  `gorm:"size:20" json:"default_purchase_net_type"`
	DefaultPurchaseNetPercent float64               `gorm:"type:decimal(7,3);default:0" json:"default_purchase_net_percent"`
	DefaultPurchaseNetFixed   float64               `gorm:"type:decimal(15,2);default:0" json:"default_purchase_net_fixed"`

	// Display
	CurrencySymbol string `gorm:"size:8;default:'₹'" json:"currency_symbol"`
	BillTerms      string `gorm:"type:text" json:"bill_terms"`

	Features datatypes.JSONMap `json:"features"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the BusinessSettings model
func (BusinessSettings) TableName() string {
	return "business_settings"
}

// FeatureEnabled reports whether a feature toggle is on. Missing toggles are on.
func (s *BusinessSettings) FeatureEnabled(name string) bool {
	v, ok := s.Features[name]
	if !ok {
		return true
	}
	enabled, ok := v.(bool)
	return !ok || enabled
}
