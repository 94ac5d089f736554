// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound request DTOs.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps a validator.Validate for use as echo's Validator
type CustomValidator struct {
	v *validator.Validate
}

// New returns a validator ready to be assigned to echo.Echo.Validator
func New() *CustomValidator {
	return &CustomValidator{v: validator.New()}
}

// Validate checks the struct tags of i and returns the first violation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
