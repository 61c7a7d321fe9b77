package models

import "github.com/go-playground/validator/v10"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("property_type", func(fl validator.FieldLevel) bool {
		return PropertyType(fl.Field().String()).Valid()
	})
	return v
}

// Validate checks the constraints declared in the `validate` tags of a model.
// Associations are not traversed.
func Validate(model any) error {
	return validate.Struct(model)
}
