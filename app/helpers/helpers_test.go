package helpers

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addressForm struct {
	Zipcode string `json:"zipcode" validate:"required,zipcode"`
}

type providerForm struct {
	Name    string      `json:"name" validate:"required,max=10"`
	TaxID   string      `json:"tax_id" validate:"omitempty,taxid"`
	Email   string      `json:"email" validate:"required,email"`
	Address addressForm `json:"address"`
}

func TestFormatValidationErrorsUsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Struct(&providerForm{
		Name:    "a name that is too long",
		TaxID:   "123",
		Email:   "nope",
		Address: addressForm{Zipcode: "1234"},
	})
	require.Error(t, err)

	errs := FormatValidationErrors(err.(validator.ValidationErrors))
	assert.Equal(t, "The name may not be greater than 10 characters.", errs["name"])
	assert.Equal(t, "The tax id format is invalid.", errs["tax_id"])
	assert.Equal(t, "The email must be a valid email address.", errs["email"])
	assert.Equal(t, "The zipcode format is invalid.", errs["address.zipcode"])
}

func TestTaxIDAndZipcodeFormats(t *testing.T) {
	v := NewValidator()

	valid := []providerForm{
		{Name: "Acme", TaxID: "12.345.678/0001-90", Email: "a@b.co", Address: addressForm{Zipcode: "01310-100"}},
		{Name: "Acme", TaxID: "12345678000190", Email: "a@b.co", Address: addressForm{Zipcode: "01310100"}},
		{Name: "Acme", Email: "a@b.co", Address: addressForm{Zipcode: "01310100"}},
	}
	for _, f := range valid {
		assert.NoError(t, v.Struct(&f))
	}
}

func TestTokenParts(t *testing.T) {
	selector, verifier, token, err := GenerateTokenParts()
	require.NoError(t, err)

	s, v, ok := SplitToken(token)
	assert.True(t, ok)
	assert.Equal(t, selector, s)
	assert.Equal(t, verifier, v)

	_, _, ok = SplitToken("no-dot")
	assert.False(t, ok)
	_, _, ok = SplitToken(".verifier")
	assert.False(t, ok)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)

	assert.True(t, PasswordCompare(hash, []byte("secret-password")))
	assert.False(t, PasswordCompare(hash, []byte("wrong")))
}

func TestNilIfEmpty(t *testing.T) {
	assert.Nil(t, NilIfEmpty("   "))
	assert.Equal(t, "x", *NilIfEmpty(" x "))
}
