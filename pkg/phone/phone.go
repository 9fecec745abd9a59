// Package phone validates and normalises customer phone numbers
package phone

import (
	"fmt"
	"strings"

	"github.com/ttacon/libphonenumber"
)

// DefaultRegion is used for numbers written without a country code
const DefaultRegion = "IN"

// Normalize parses a phone number and returns it in E.164 form.
// An empty number is returned unchanged.
func Normalize(number, region string) (string, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return "", nil
	}
	if region == "" {
		region = DefaultRegion
	}

	p, err := libphonenumber.Parse(number, region)
	if err != nil {
		return "", err
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", fmt.Errorf("phone number is not valid")
	}
	return libphonenumber.Format(p, libphonenumber.E164), nil
}

// IsValid reports whether number parses as a valid phone number
func IsValid(number, region string) bool {
	_, err := Normalize(number, region)
	return err == nil
}
