package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Deliberately loose: something@something.something with no whitespace.
	// The backend is the authority on real address validity.
	looseEmailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// New returns a validator with the site's custom tags registered and
// field names reported by their json tag.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("loose_email", LooseEmail)
	_ = v.RegisterValidation("not_blank", NotBlank)
}

// LooseEmail validates the local@domain.tld shape only
func LooseEmail(fl validator.FieldLevel) bool {
	return IsLooseEmail(fl.Field().String())
}

// IsLooseEmail is the plain-string form of LooseEmail
func IsLooseEmail(s string) bool {
	return looseEmailRegex.MatchString(s)
}

// NotBlank fails for empty or whitespace-only strings
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
