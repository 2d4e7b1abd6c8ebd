// Package validator checks normalized records against the constraints
// declared in their struct tags.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/SACCSF/linkedin"
	"github.com/go-playground/validator/v10"
)

// Ensure Validator implements linkedin.RecordValidator at compile time.
var _ linkedin.RecordValidator = (*Validator)(nil)

// Validator wraps a go-playground validator configured to report fields by
// their JSON names.
type Validator struct {
	validate *validator.Validate
}

// New creates a new Validator.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateRecord returns EINVALID listing every failed constraint of rec.
func (v *Validator) ValidateRecord(rec any) error {
	err := v.validate.Struct(rec)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate record: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return linkedin.Errorf(linkedin.EINVALID, "invalid record: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	// Drop the struct name: "Person.education[0].startYear" -> "education[0].startYear".
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "url":
		return fmt.Sprintf("%s %q is not a valid URL", field, fe.Value())
	case "gte", "lte":
		return fmt.Sprintf("%s %v is out of range", field, fe.Value())
	}
	return fmt.Sprintf("%s failed %q", field, fe.Tag())
}
