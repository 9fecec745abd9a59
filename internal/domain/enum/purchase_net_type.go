package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PurchaseNetType represents how a purchase net rate is derived from market price
type PurchaseNetType string

const (
	PurchaseNetNone       PurchaseNetType = ""
	PurchaseNetPercentage PurchaseNetType = "net_percentage"
	PurchaseNetFixedPrice PurchaseNetType = "fixed_net_price"
)

func (t PurchaseNetType) String() string {
	return string(t)
}

// IsValid reports whether t is empty or a known purchase net type
func (t PurchaseNetType) IsValid() bool {
	switch t {
	case PurchaseNetNone, PurchaseNetPercentage, PurchaseNetFixedPrice:
		return true
	}
	return false
}

func (t PurchaseNetType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *PurchaseNetType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = PurchaseNetType(str)
	return nil
}

func (t PurchaseNetType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *PurchaseNetType) Scan(value interface{}) error {
	if value == nil {
		*t = PurchaseNetNone
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = PurchaseNetType(v)
	case []byte:
		*t = PurchaseNetType(string(v))
	}
	return nil
}
