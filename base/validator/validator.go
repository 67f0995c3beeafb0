package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/yieldfarm/domain"
)

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	return domain.IsValidAddress(address)
}

// IsValidCoinType accepts <address>::<module>::<name>, optionally with type params
func IsValidCoinType(coinType string) bool {
	s := coinType
	if i := strings.Index(s, "<"); i >= 0 {
		if !strings.HasSuffix(s, ">") {
			return false
		}
		s = s[:i]
	}
	parts := strings.Split(s, "::")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return false
	}
	return IsValidAddress(parts[0])
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	// tags are only ever registered with valid names, errors here are programming errors
	_ = v.RegisterValidation("address", func(fl validator.FieldLevel) bool {
		return IsValidAddress(fl.Field().String())
	})
	_ = v.RegisterValidation("cointype", func(fl validator.FieldLevel) bool {
		return IsValidCoinType(fl.Field().String())
	})
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
