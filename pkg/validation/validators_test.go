package validation_test

import (
	"testing"

	"easi-website/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLooseEmail(t *testing.T) {
	cases := map[string]bool{
		"jane@example.com":     true,
		"a@b.c":                true,
		"first.last@uni.ac.ug": true,
		"":                     false,
		"jane":                 false,
		"jane@example":         false,
		"jane @example.com":    false,
		"@example.com":         false,
		"jane@.com":            false,
		"jane@@x.y":            true,
	}
	for in, want := range cases {
		assert.Equal(t, want, validation.IsLooseEmail(in), in)
	}
}

type probe struct {
	Name  string `json:"name" validate:"not_blank"`
	Email string `json:"email" validate:"loose_email"`
	Note  string `json:"note"`
}

func TestFieldErrorsUsesJSONNames(t *testing.T) {
	v := validation.New()

	err := v.Struct(probe{Name: "   ", Email: "nope"})
	require.Error(t, err)

	assert.Equal(t, map[string]bool{"name": true, "email": true}, validation.FieldErrors(err))
	assert.ElementsMatch(t, []string{"Name is required", "Valid email is required"}, validation.FormatValidationErrors(err))

	assert.NoError(t, v.Struct(probe{Name: "Jane", Email: "jane@example.com"}))
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, validation.FieldErrors(assert.AnError))
	assert.Equal(t, []string{assert.AnError.Error()}, validation.FormatValidationErrors(assert.AnError))
}
