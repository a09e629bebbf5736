package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

var validate = validator.New()

// validateRequest runs struct validation and converts the first failure into
// a VALIDATION_FAILED error. messages overrides the generated text per field,
// which keeps the legacy message wording intact.
func validateRequest(req any, messages map[string]string) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].Field()
		if msg, ok := messages[field]; ok {
			return apperrors.NewValidationError(msg, map[string]any{"field": field})
		}
		return apperrors.NewValidationError(fmt.Sprintf("%s is invalid", field), map[string]any{"field": field})
	}
	return apperrors.NewValidationError("invalid payload", nil)
}
