package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Material represents a priced commodity such as 22K gold or diamond.
// Price always holds the current market price per Unit.
type Material struct {
	ID               string    `gorm:"size:64;primaryKey" json:"id"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	Price            float64   `gorm:"type:decimal(15,2);default:0" json:"price"`
	Unit             string    `gorm:"size:20;not null" json:"unit"`
	Icon             string    `gorm:"size:50" json:"icon"`
	HSNCode          string    `gorm:"size:20" json:"hsn_code"`
	IsDefault        bool      `gorm:"default:false" json:"is_default"`
	FixedUnit        bool      `gorm:"default:false" json:"fixed_unit"`
	SelectedInHeader bool      `gorm:"default:false" json:"selected_in_header"`
	SortOrder        int       `gorm:"default:0" json:"sort_order"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate generates an ID for custom materials
func (m *Material) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// TableName returns the table name for the Material model
func (Material) TableName() string {
	return "materials"
}

// CanRename reports whether the display name may be changed
func (m *Material) CanRename() bool {
	return !m.IsDefault
}

// CanChangeUnit reports whether the unit of measure may be changed
func (m *Material) CanChangeUnit() bool {
	return !(m.IsDefault && m.FixedUnit)
}

// CanDelete reports whether the material may be removed
func (m *Material) CanDelete() bool {
	return !m.IsDefault
}

// DefaultMaterials returns the built-in materials seeded on first start
func DefaultMaterials() []Material {
	return []Material{
		{ID: "gold-24k", Name: "24K Gold", Unit: "g", Icon: "gold", HSNCode: "7108", IsDefault: true, SelectedInHeader: true, SortOrder: 1},
		{ID: "gold-22k", Name: "22K Gold", Unit: "g", Icon: "gold", HSNCode: "7113", IsDefault: true, SelectedInHeader: true, SortOrder: 2},
		{ID: "gold-18k", Name: "18K Gold", Unit: "g", Icon: "gold", HSNCode: "7113", IsDefault: true, SortOrder: 3},
		{ID: "silver", Name: "Silver", Unit: "g", Icon: "silver", HSNCode: "7113", IsDefault: true, SelectedInHeader: true, SortOrder: 4},
		{ID: "diamond", Name: "Diamond", Unit: "ct", Icon: "diamond", HSNCode: "7102", IsDefault: true, FixedUnit: true, SortOrder: 5},
		{ID: "platinum", Name: "Platinum", Unit: "g", Icon: "platinum", HSNCode: "7113", IsDefault: true, SortOrder: 6},
	}
}
