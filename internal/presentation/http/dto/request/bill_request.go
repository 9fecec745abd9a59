package request

import "github.com/sangkips/jewelbill-api/internal/domain/enum"

// BillItemRequest is one item line of a bill
type BillItemRequest struct {
	ValuableID              string                `json:"valuable_id" binding:"required,max=64"`
	Name                    string                `json:"name" binding:"omitempty,max=255"`
	HSNCode                 string                `json:"hsn_code" binding:"omitempty,hsn"`
	WeightOrQuantity        float64               `json:"weight_or_quantity" binding:"gte=0"`
	Unit                    string                `json:"unit" binding:"omitempty,max=20"`
	Rate                    float64               `json:"rate" binding:"gte=0"`
	MakingChargeType        enum.MakingChargeType `json:"making_charge_type" binding:"makingchargetype"`
	MakingCharge            float64               `json:"making_charge" binding:"gte=0"`
	PurchaseNetType         enum.PurchaseNetType  `json:"purchase_net_type" binding:"purchasenettype"`
	PurchaseNetPercentValue float64               `json:"purchase_net_percent_value" binding:"gte=0,lte=100"`
	PurchaseNetFixedValue   float64               `json:"purchase_net_fixed_value" binding:"gte=0"`
}

// BillRequest represents a bill creation or update request
type BillRequest struct {
	Type            enum.BillType     `json:"type" binding:"required,billtype"`
	CustomerName    string            `json:"customer_name" binding:"omitempty,max=255"`
	CustomerPhone   string            `json:"customer_phone" binding:"omitempty,phone"`
	CustomerAddress string            `json:"customer_address" binding:"omitempty,max=1000"`
	CustomerGSTIN   string            `json:"customer_gstin" binding:"omitempty,gstin"`
	Notes           string            `json:"notes" binding:"omitempty,max=2000"`
	Items           []BillItemRequest `json:"items" binding:"required,min=1,dive"`
	ApplyDefaults   bool              `json:"apply_defaults"`
}

// DraftRequest represents a preview or estimate request. Items with no
// quantity yet are priced at zero.
type DraftRequest struct {
	Type          enum.BillType     `json:"type" binding:"omitempty,billtype"`
	Items         []BillItemRequest `json:"items" binding:"dive"`
	ApplyDefaults bool              `json:"apply_defaults"`
}

// BillFilterRequest represents bill list parameters
type BillFilterRequest struct {
	Search    string `form:"search"`
	Type      string `form:"type" binding:"omitempty,billtype"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Limit     int    `form:"limit"` // For cursor-based pagination
}

// NextNumberRequest asks for the next bill number of a type
type NextNumberRequest struct {
	Type string `form:"type" binding:"required,billtype"`
}

// PeriodRequest selects a reporting window
type PeriodRequest struct {
	Period    string `form:"period"`
	Year      int    `form:"year" binding:"omitempty,gte=1900,lte=9999"`
	Month     int    `form:"month" binding:"omitempty,gte=1,lte=12"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}
