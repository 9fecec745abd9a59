package request

import "github.com/sangkips/jewelbill-api/internal/domain/enum"

// UpdateSettingsRequest represents a business settings update
type UpdateSettingsRequest struct {
	CompanyName               string                `json:"company_name" binding:"required,max=255"`
	CompanyAddress            string                `json:"company_address" binding:"omitempty,max=1000"`
	CompanyPhone              string                `json:"company_phone" binding:"omitempty,phone"`
	CompanyEmail              string                `json:"company_email" binding:"omitempty,email"`
	GSTIN                     string                `json:"gstin" binding:"omitempty,gstin"`
	CGSTRate                  float64               `json:"cgst_rate" binding:"gte=0,lte=100"`
	SGSTRate                  float64               `json:"sgst_rate" binding:"gte=0,lte=100"`
	DefaultMakingChargeType   enum.MakingChargeType `json:"default_making_charge_type" binding:"makingchargetype"`
	DefaultMakingCharge       float64               `json:"default_making_charge" binding:"gte=0"`
	DefaultPurchaseNetType    enum.PurchaseNetType  `json:"default_purchase_net_type" binding:"purchasenettype"`
	DefaultPurchaseNetPercent float64               `json:"default_purchase_net_percent" binding:"gte=0,lte=100"`
	DefaultPurchaseNetFixed   float64               `json:"default_purchase_net_fixed" binding:"gte=0"`
	CurrencySymbol            string                `json:"currency_symbol" binding:"omitempty,max=8"`
	BillTerms                 string                `json:"bill_terms" binding:"omitempty,max=4000"`
	Features                  map[string]bool       `json:"features"`
}
