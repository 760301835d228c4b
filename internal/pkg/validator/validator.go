// Package validator wraps go-playground/validator with error formatting shared by the
// configuration layer.
package validator

import (
	"errors"
	"fmt"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed is the first error of the joined chain returned by Validate.
var ErrValidationFailed = errors.New("struct validation failed")

var validate = gvalidator.New(gvalidator.WithRequiredStructEnabled())

const errStringFormat = "'%s': value '%v' does not meet the requirements for the '%s' validation"

// Validate checks v against its `validate` tags and joins one error per failed field
// behind ErrValidationFailed.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatError(err)
	}
	return nil
}

func formatError(err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidationFailed}
	for _, fieldErr := range validationErrors {
		param := fieldErr.Tag()
		if fieldErr.Param() != "" {
			param += "=" + fieldErr.Param()
		}
		errs = append(errs, fmt.Errorf(errStringFormat, fieldErr.Namespace(), fieldErr.Value(), param))
	}
	return errors.Join(errs...)
}
