// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// TagHHMM validates 24h wall-clock strings like "09:00" or "17:30".
// Schedule and exception DTOs bind opening hours with it.
const TagHHMM = "hhmm"

var hhmmRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance with the domain tags registered.
func New() *Validator {
	v := validator.New()
	_ = RegisterDomainTags(v)
	return &Validator{v: v}
}

// RegisterDomainTags adds the application's custom tags to a validator
// engine. The router calls this on gin's binding engine so transport DTOs
// can use the tags directly.
func RegisterDomainTags(v *validator.Validate) error {
	return v.RegisterValidation(TagHHMM, func(fl validator.FieldLevel) bool {
		return hhmmRegex.MatchString(fl.Field().String())
	})
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}
