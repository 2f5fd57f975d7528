package devserver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate.
type echoValidator struct {
	v *validator.Validate
}

func newValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " est obligatoire"
	case "email":
		return field + " doit être un email valide"
	case "min":
		return fmt.Sprintf("%s doit contenir au moins %s caractères", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s doit être l'un de: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s invalide (%s)", field, fe.Tag())
	}
}
