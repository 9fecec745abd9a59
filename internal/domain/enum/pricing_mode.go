package enum

// PricingMode selects the rate derivation rules for a bill item
type PricingMode string

const (
	PricingModeSales    PricingMode = "sales"
	PricingModePurchase PricingMode = "purchase"
	// PricingModeNone prices nothing; used for delivery vouchers
	PricingModeNone PricingMode = "none"
)

func (m PricingMode) String() string {
	return string(m)
}
