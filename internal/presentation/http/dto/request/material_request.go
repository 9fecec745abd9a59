package request

// CreateMaterialRequest represents a custom material creation request
type CreateMaterialRequest struct {
	Name             string  `json:"name" binding:"required,min=1,max=100"`
	Price            float64 `json:"price" binding:"gte=0"`
	Unit             string  `json:"unit" binding:"omitempty,max=20"`
	Icon             string  `json:"icon" binding:"omitempty,max=50"`
	HSNCode          string  `json:"hsn_code" binding:"omitempty,hsn"`
	SelectedInHeader bool    `json:"selected_in_header"`
	SortOrder        int     `json:"sort_order"`
}

// UpdateMaterialRequest represents a partial material update
type UpdateMaterialRequest struct {
	Name             *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Price            *float64 `json:"price" binding:"omitempty,gte=0"`
	Unit             *string  `json:"unit" binding:"omitempty,min=1,max=20"`
	Icon             *string  `json:"icon" binding:"omitempty,max=50"`
	HSNCode          *string  `json:"hsn_code" binding:"omitempty,hsn"`
	SelectedInHeader *bool    `json:"selected_in_header"`
	SortOrder        *int     `json:"sort_order"`
}

// UpdatePriceRequest sets the market price of a material
type UpdatePriceRequest struct {
	Price *float64 `json:"price" binding:"required,gte=0"`
}

// HeaderSelectionRequest shows or hides a material in the billing header
type HeaderSelectionRequest struct {
	Selected *bool `json:"selected" binding:"required"`
}

// MaterialFilterRequest represents material list parameters
type MaterialFilterRequest struct {
	HeaderOnly bool `form:"header_only"`
}
