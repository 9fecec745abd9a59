package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// MakingChargeType represents how a sales making charge is applied
type MakingChargeType string

const (
	MakingChargeNone       MakingChargeType = ""
	MakingChargePercentage MakingChargeType = "percentage"
	MakingChargeFixed      MakingChargeType = "fixed"
)

func (t MakingChargeType) String() string {
	return string(t)
}

// IsValid reports whether t is empty or a known making charge type
func (t MakingChargeType) IsValid() bool {
	switch t {
	case MakingChargeNone, MakingChargePercentage, MakingChargeFixed:
		return true
	}
	return false
}

func (t MakingChargeType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *MakingChargeType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = MakingChargeType(str)
	return nil
}

func (t MakingChargeType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *MakingChargeType) Scan(value interface{}) error {
	if value == nil {
		*t = MakingChargeNone
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = MakingChargeType(v)
	case []byte:
		*t = MakingChargeType(string(v))
	}
	return nil
}
