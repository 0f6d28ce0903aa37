package serverutils

import (
	"fmt"
	"strings"

	"doc-collab-be/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and converts failures into the
// validation error class so they are rejected before any collaborator call.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperrors.NewValidationError(err.Error())
		}
		fields := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return apperrors.NewValidationError("invalid request: " + strings.Join(fields, ", "))
	}
	return nil
}
