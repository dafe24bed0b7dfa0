package validators

import (
	"github.com/go-playground/validator/v10"
	"github.com/tastebook/backend/internal/apperr"
)

// CustomValidator wires go-playground/validator into Echo's binding pipeline.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate checks struct tags and converts failures to validation errors.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request payload", err)
	}
	return nil
}
