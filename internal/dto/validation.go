package dto

import (
	"fmt"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs the custom binding tags used by the DTOs on
// gin's validator. It must run before the router serves requests.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return registerOn(v)
}

func registerOn(v *validator.Validate) error {
	if err := v.RegisterValidation("monthyear", validateMonthYear); err != nil {
		return fmt.Errorf("register monthyear validation: %w", err)
	}
	return nil
}

func validateMonthYear(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := domain.ParseMonthYear(s)
	return err == nil
}
