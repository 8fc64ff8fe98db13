package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct-tag validation and folds failures into ErrValidation
// so the HTTP layer maps them to a 400.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	fields := []string{}
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
	}
	if len(fields) == 0 {
		return fmt.Errorf("invalid request: %w", ErrValidation)
	}
	return fmt.Errorf("invalid fields: %s: %w", strings.Join(fields, ", "), ErrValidation)
}
