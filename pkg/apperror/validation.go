package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FromBindingError converts a gin binding error into an AppError.
// Validator failures become a field list, malformed JSON a bad request.
// A nil error yields nil.
func FromBindingError(err error) *AppError {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]FieldError, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, FieldError{
				Field:   fieldPath(fe),
				Message: validationMessage(fe),
			})
		}
		return NewValidationError(fields)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return NewBadRequestError("Malformed JSON body")
	case errors.As(err, &typeErr):
		return NewValidationError([]FieldError{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("must be of type %s", typeErr.Type.String()),
		}})
	}
	return NewBadRequestError(err.Error())
}

// fieldPath drops the top level struct name from the namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "billtype":
		return "must be one of: sales-bill purchase delivery-voucher"
	case "makingchargetype":
		return "must be one of: percentage fixed"
	case "purchasenettype":
		return "must be one of: net_percentage fixed_net_price"
	case "hsn":
		return "must be a 2 to 8 digit HSN code"
	case "phone":
		return "must be a valid phone number"
	case "gstin":
		return "must be a valid 15 character GSTIN"
	}
	return "failed on " + fe.Tag()
}
