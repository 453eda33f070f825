// Package validator provides the shared validator instance with custom
// rules for mgao input structs.
package validator

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"mgao/internal/allocation"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// Get returns the shared validator with all custom rules registered.
func Get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		_ = instance.RegisterValidation("allocation_method", validateAllocationMethod)
	})
	return instance
}

func validateAllocationMethod(fl validator.FieldLevel) bool {
	return allocation.Method(fl.Field().String()).Valid()
}
