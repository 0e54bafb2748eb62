package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator validates structs using `validate` tags.
type Validator interface {
	Validate(interface{}) error
}

type structValidator struct {
	v *validator.Validate
}

func New() Validator {
	return &structValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (sv *structValidator) Validate(obj interface{}) error {
	if err := sv.v.Struct(obj); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("field %s failed on %s", first.Field(), first.Tag())
		}
		return err
	}
	return nil
}
