package validator

import (
	stderrors "errors"
	"regexp"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/route-estimation-service/internal/pkg/errors"
)

var validate *validator.Validate

// Stop ids come out of the extraction pipeline as short uppercase tokens,
// e.g. "TVM-001".
var stopIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("stop_id", func(fl validator.FieldLevel) bool {
		return stopIDPattern.MatchString(fl.Field().String())
	})
}

// Validate - structure validation. Field violations are folded into the
// request error so handlers can send it back directly.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) {
		details := make(map[string]interface{}, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
		return apperrors.ErrInvalidRequest.WithDetails(details)
	}
	return apperrors.ErrInvalidRequest
}

// GetValidator - access to the shared validator for custom configuration
func GetValidator() *validator.Validate {
	return validate
}
