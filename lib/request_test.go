package lib

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleBody struct {
	Name  string `json:"nomAcheteur" validate:"required"`
	Email string `json:"emailAcheteur" validate:"required,email"`
}

func TestExtractAndValidateBody(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"nomAcheteur":"Paul","emailAcheteur":"paul@example.com"}`))
		body, err := ExtractAndValidateBody[sampleBody](r)
		require.NoError(t, err)
		assert.Equal(t, "Paul", body.Name)
	})

	t.Run("validation errors use json names", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"nomAcheteur":"","emailAcheteur":"nope"}`))
		_, err := ExtractAndValidateBody[sampleBody](r)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		require.Len(t, ve.Errors, 2)
		assert.Equal(t, "nomAcheteur", ve.Errors[0].Field)
		assert.Equal(t, "emailAcheteur", ve.Errors[1].Field)
		assert.Contains(t, ve.Error(), "emailAcheteur must be a valid email address")
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"nomAcheteur":"Paul","emailAcheteur":"paul@example.com","extra":1}`))
		_, err := ExtractAndValidateBody[sampleBody](r)

		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("buyer@example.com"))
	assert.True(t, IsValidEmail("  buyer@example.com "))
	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("buyer@"))
	assert.False(t, IsValidEmail("not an email"))
}
