// Package validator registers the ledger binding validators on gin's validator engine.
package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/bitbank/ledger/internal/domain/entity"
	domainerror "github.com/bitbank/ledger/internal/domain/error"
)

// Register adds the custom validators. It is safe to call more than once.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("ledger_kind", validateLedgerKind)
		_ = v.RegisterValidation("integral_amount", validateIntegralAmount)
	}
}

// decimalValue exposes decimal fields to the validators as their string form.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func validateLedgerKind(fl validator.FieldLevel) bool {
	kind := entity.EntryKind(strings.ToLower(strings.TrimSpace(fl.Field().String())))
	return kind.IsValid()
}

func validateIntegralAmount(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !amount.IsNegative() && amount.Equal(amount.Truncate(0))
}

// CodeFor maps a binding failure to the error code of the first offending field.
func CodeFor(err error) domainerror.LedgerErrorCode {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return domainerror.ErrCodeInvalidRequest
	}

	switch validationErrs[0].Field() {
	case "Kind":
		return domainerror.ErrCodeInvalidKind
	case "Amount":
		return domainerror.ErrCodeInvalidAmount
	case "OccurredAt":
		return domainerror.ErrCodeMissingOccurredAt
	case "Category":
		return domainerror.ErrCodeInvalidCategory
	default:
		return domainerror.ErrCodeInvalidRequest
	}
}
