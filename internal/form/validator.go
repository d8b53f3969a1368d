// Package form binds and validates the HTML forms used to create and edit
// venues, artists and shows.  Validation runs through go-playground's
// validator and is exposed to echo as its Validator.
package form

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

// Validator adapts validator.Validate to echo.Validator.
type Validator struct {
	v *validator.Validate
}

// NewValidator registers the form rules (state, genre, phone, showtime and
// id) and reports field names by their form tag.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	must(v.RegisterValidation("state", func(fl validator.FieldLevel) bool {
		return isState(fl.Field().String())
	}))
	must(v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return isGenre(fl.Field().String())
	}))
	must(v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("showtime", func(fl validator.FieldLevel) bool {
		_, err := ParseStartTime(fl.Field().String(), nil)
		return err == nil
	}))
	must(v.RegisterValidation("id", func(fl validator.FieldLevel) bool {
		n, err := strconv.ParseUint(fl.Field().String(), 10, 64)
		return err == nil && n > 0
	}))
	return &Validator{v: v}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate implements echo.Validator.
func (cv *Validator) Validate(i any) error {
	return cv.v.Struct(i)
}

var messages = map[string]string{
	"required": "This field is required.",
	"min":      "Select at least one option.",
	"max":      "Value is too long.",
	"url":      "Invalid URL.",
	"state":    "Not a valid choice.",
	"genre":    "Not a valid choice.",
	"phone":    "Invalid phone number, use xxx-xxx-xxxx.",
	"showtime": "Not a valid datetime value.",
	"id":       "Must be a positive number.",
}

// FieldErrors flattens a validation error into one message per form
// field.  Errors on list elements are reported on the list itself.  A
// non-validation error yields nil.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "Invalid value."
		}
		out[field] = msg
	}
	return out
}

// Flag reads a checkbox or y/n select value.
func Flag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "on", "1":
		return true
	}
	return false
}

func flagValue(b bool) string {
	if b {
		return "y"
	}
	return ""
}
