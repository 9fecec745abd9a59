package request

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/jewelbill-api/pkg/apperror"
)

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	if err := registerOn(v, "IN"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return v
}

func validBill() BillRequest {
	return BillRequest{
		Type:          "sales-bill",
		CustomerPhone: "9876543210",
		CustomerGSTIN: "29ABCDE1234F1Z5",
		Items: []BillItemRequest{{
			ValuableID:       "gold-22k",
			WeightOrQuantity: 10,
			Rate:             6000,
			HSNCode:          "7113",
			MakingChargeType: "percentage",
		}},
	}
}

func TestBillRequestValidation(t *testing.T) {
	v := newTestValidator(t)

	cases := []struct {
		name   string
		mutate func(*BillRequest)
		field  string
	}{
		{"valid", func(*BillRequest) {}, ""},
		{"unknown type", func(b *BillRequest) { b.Type = "invoice" }, "type"},
		{"bad phone", func(b *BillRequest) { b.CustomerPhone = "12" }, "customer_phone"},
		{"bad gstin", func(b *BillRequest) { b.CustomerGSTIN = "29ABCDE" }, "customer_gstin"},
		{"no items", func(b *BillRequest) { b.Items = nil }, "items"},
		{"bad making charge type", func(b *BillRequest) { b.Items[0].MakingChargeType = "weight" }, "items[0].making_charge_type"},
		{"bad hsn", func(b *BillRequest) { b.Items[0].HSNCode = "71A3" }, "items[0].hsn_code"},
		{"negative rate", func(b *BillRequest) { b.Items[0].Rate = -1 }, "items[0].rate"},
		{"net over 100", func(b *BillRequest) { b.Items[0].PurchaseNetPercentValue = 120 }, "items[0].purchase_net_percent_value"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validBill()
			tc.mutate(&req)
			err := v.Struct(req)
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error on %s, got none", tc.field)
			}

			appErr := apperror.FromBindingError(err)
			if appErr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", appErr.Code)
			}
			if len(appErr.Errors) == 0 || appErr.Errors[0].Field != tc.field {
				t.Fatalf("expected error on %s, got %+v", tc.field, appErr.Errors)
			}
		})
	}
}

func TestEmptyEnumsAreAccepted(t *testing.T) {
	v := newTestValidator(t)
	req := validBill()
	req.Items[0].MakingChargeType = ""
	req.Items[0].PurchaseNetType = ""
	req.CustomerPhone = ""
	req.CustomerGSTIN = ""

	if err := v.Struct(req); err != nil {
		var ve validator.ValidationErrors
		errors.As(err, &ve)
		t.Fatalf("unexpected error: %v", ve)
	}
}

func TestRegisterValidatorsOnGinEngine(t *testing.T) {
	if err := RegisterValidators("IN"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := validBill()
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req.Type = "invoice"
	req.Items[0].Rate = -1
	err := binding.Validator.ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr := apperror.FromBindingError(err)
	if appErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", appErr.Code)
	}
	fields := map[string]bool{}
	for _, fe := range appErr.Errors {
		fields[fe.Field] = true
	}
	if !fields["type"] || !fields["items[0].rate"] {
		t.Fatalf("expected errors on type and items[0].rate, got %+v", appErr.Errors)
	}
}
