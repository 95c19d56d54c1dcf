package fanfic

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"fanfic/internal/domain"
	models "fanfic/internal/domain/models/fanfic"
)

var errEmptyPatch = errors.New("at least one field must be provided")

// validationFailed wraps a validation error so errors.Is matches domain.ErrValidation
func validationFailed(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

// notBlank rejects strings that are empty after trimming. Nil pointers pass.
func notBlank(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	default:
		return fmt.Errorf("must be a string")
	}

	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be blank")
	}
	return nil
}

// optionalLength bounds the value of a present, non-null OptionalString.
func optionalLength(max int) validation.Rule {
	return validation.By(func(value interface{}) error {
		o, ok := value.(models.OptionalString)
		if !ok || o.Value == nil {
			return nil
		}
		return validation.Validate(*o.Value, validation.Length(0, max))
	})
}

// trimmed returns a trimmed copy of s, or nil.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
