package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// BillType represents the kind of bill being raised
type BillType string

const (
	BillTypeSales           BillType = "sales-bill"
	BillTypePurchase        BillType = "purchase"
	BillTypeDeliveryVoucher BillType = "delivery-voucher"
)

// AllBillTypes lists the bill types accepted by the API
var AllBillTypes = []BillType{BillTypeSales, BillTypePurchase, BillTypeDeliveryVoucher}

func (t BillType) String() string {
	return string(t)
}

// IsValid reports whether t is one of the known bill types
func (t BillType) IsValid() bool {
	switch t {
	case BillTypeSales, BillTypePurchase, BillTypeDeliveryVoucher:
		return true
	}
	return false
}

// PricingMode returns the item pricing rules used for this bill type
func (t BillType) PricingMode() PricingMode {
	switch t {
	case BillTypeSales:
		return PricingModeSales
	case BillTypePurchase:
		return PricingModePurchase
	}
	return PricingModeNone
}

// IsNumbered reports whether bills of this type receive a bill number
func (t BillType) IsNumbered() bool {
	return t == BillTypeSales || t == BillTypePurchase
}

func (t BillType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *BillType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = BillType(str)
	return nil
}

func (t BillType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *BillType) Scan(value interface{}) error {
	if value == nil {
		*t = BillTypeSales
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = BillType(v)
	case []byte:
		*t = BillType(string(v))
	}
	return nil
}
