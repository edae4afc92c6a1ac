package store

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/aura-webinar/landing/internal/models"
)

var validate = validator.New()

// validateConfig checks the shape invariants of one configuration: an id,
// exactly two speakers, a non-empty form with unique field ids and known kinds.
func validateConfig(cfg models.WebinarConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fe.Namespace(), Reason: describe(fe)}
	}
	return &ValidationError{Reason: err.Error()}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "len":
		return fmt.Sprintf("must have exactly %s entries", fe.Param())
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "unique":
		return "ids must be unique"
	default:
		return fmt.Sprintf("failed %q", fe.Tag())
	}
}

// validateCollection checks a loaded collection: non-empty, unique ids, every entry valid.
func validateCollection(list []models.WebinarConfig) error {
	if len(list) == 0 {
		return &ValidationError{Reason: "empty collection"}
	}
	seen := make(map[string]struct{}, len(list))
	for _, w := range list {
		if _, dup := seen[w.ID]; dup {
			return &ValidationError{Field: "id", Reason: "duplicate " + w.ID}
		}
		seen[w.ID] = struct{}{}
		if err := validateConfig(w); err != nil {
			return err
		}
	}
	return nil
}
