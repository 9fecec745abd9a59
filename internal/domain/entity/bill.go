package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Bill represents a saved sales bill, purchase bill or delivery voucher.
// The customer fields hold the supplier for purchase bills.
type Bill struct {
	ID              uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	BillNumber      string         `gorm:"size:50;index" json:"bill_number"`
	Type            enum.BillType  `gorm:"size:30;not null;index" json:"type"`
	Date            time.Time      `gorm:"not null;index" json:"date"`
	CustomerName    string         `gorm:"size:255" json:"customer_name"`
	CustomerPhone   string         `gorm:"size:30" json:"customer_phone"`
	CustomerAddress string         `gorm:"type:text" json:"customer_address"`
	CustomerGSTIN   string         `gorm:"size:20" json:"customer_gstin"`
	Notes           string         `gorm:"type:text" json:"notes"`
	CGSTRate        float64        `gorm:"type:decimal(5,2);default:0" json:"cgst_rate"`
	SGSTRate        float64        `gorm:"type:decimal(5,2);default:0" json:"sgst_rate"`
	SubTotal        float64        `gorm:"type:decimal(15,2);default:0" json:"sub_total"`
	CGSTAmount      float64        `gorm:"type:decimal(15,2);default:0" json:"cgst_amount"`
	SGSTAmount      float64        `gorm:"type:decimal(15,2);default:0" json:"sgst_amount"`
	TotalAmount     float64        `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []BillItem `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"items"`
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// BillItem represents one line of a bill. Name, Unit and Rate are snapshots
// taken at entry time; ValuableID is a non-owning reference to a Material
// that may no longer exist.
type BillItem struct {
	ID                      uuid.UUID             `gorm:"type:char(36);primaryKey" json:"id"`
	BillID                  uuid.UUID             `gorm:"type:char(36);not null;index" json:"bill_id"`
	Position                int                   `gorm:"default:0" json:"position"`
	ValuableID              string                `gorm:"size:64;index" json:"valuable_id"`
	Name                    string                `gorm:"size:255" json:"name"`
	HSNCode                 string                `gorm:"size:20" json:"hsn_code"`
	WeightOrQuantity        float64               `gorm:"type:decimal(15,3);default:0" json:"weight_or_quantity"`
	Unit                    string                `gorm:"size:20" json:"unit"`
	Rate                    float64               `gorm:"type:decimal(15,2);default:0" json:"rate"`
	MakingChargeType        enum.MakingChargeType `gorm:"size:20" json:"making_charge_type"`
	MakingCharge            float64               `gorm:"type:decimal(15,2);default:0" json:"making_charge"`
	PurchaseNetType         enum.PurchaseNetType  `gorm:"size:20" json:"purchase_net_type"`
	PurchaseNetPercentValue float64               `gorm:"type:decimal(7,3);default:0" json:"purchase_net_percent_value"`
	PurchaseNetFixedValue   float64               `gorm:"type:decimal(15,2);default:0" json:"purchase_net_fixed_value"`
	Amount                  float64               `gorm:"type:decimal(15,2);default:0" json:"amount"`
	ItemCGSTAmount          float64               `gorm:"type:decimal(15,2);default:0" json:"item_cgst_amount"`
	ItemSGSTAmount          float64               `gorm:"type:decimal(15,2);default:0" json:"item_sgst_amount"`
	CreatedAt               time.Time             `json:"created_at"`
	UpdatedAt               time.Time             `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new bill item
func (bi *BillItem) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}
