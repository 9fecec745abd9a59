package request

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
	"github.com/sangkips/jewelbill-api/pkg/phone"
)

var (
	hsnPattern   = regexp.MustCompile(`^[0-9]{2,8}$`)
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
)

// RegisterValidators installs the billing tags on gin's validator and
// reports field errors by their json names.
func RegisterValidators(phoneRegion string) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return registerOn(v, phoneRegion)
}

func registerOn(v *validator.Validate, phoneRegion string) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})

	validations := map[string]validator.Func{
		"billtype": func(fl validator.FieldLevel) bool {
			return enum.BillType(fl.Field().String()).IsValid()
		},
		"makingchargetype": func(fl validator.FieldLevel) bool {
			return enum.MakingChargeType(fl.Field().String()).IsValid()
		},
		"purchasenettype": func(fl validator.FieldLevel) bool {
			return enum.PurchaseNetType(fl.Field().String()).IsValid()
		},
		"hsn": func(fl validator.FieldLevel) bool {
			return hsnPattern.MatchString(fl.Field().String())
		},
		"gstin": func(fl validator.FieldLevel) bool {
			return gstinPattern.MatchString(strings.ToUpper(fl.Field().String()))
		},
		"phone": func(fl validator.FieldLevel) bool {
			return phone.IsValid(fl.Field().String(), phoneRegion)
		},
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
