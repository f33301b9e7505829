package validator

import (
	"sync"

	"github.com/go-playground/validator/v10"

	ierr "github.com/facturio/facturio/internal/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// GetValidator returns the process-wide validator instance
func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// ValidateRequest validates a request struct and converts field errors into
// reportable details on a validation-marked error
func ValidateRequest(req interface{}) error {
	if err := GetValidator().Struct(req); err != nil {
		details := make(map[string]any)
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, err := range validateErrs {
				details[err.Field()] = err.Error()
			}
		}
		return ierr.WithError(err).
			WithHint("Requête invalide").
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}
