package validation

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/vibecart/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	tests := []struct {
		name string
		form SignupForm
		want string
	}{
		{"ok", SignupForm{"Ann", "a@b.c", "secret1", "secret1"}, ""},
		{"missing name", SignupForm{"", "a@b.c", "secret1", "secret1"}, MsgFillAllFields},
		{"missing confirm", SignupForm{"Ann", "a@b.c", "secret1", ""}, MsgFillAllFields},
		{"mismatch wins over length", SignupForm{"Ann", "a@b.c", "abc", "abd"}, MsgPasswordMismatch},
		{"mismatch", SignupForm{"Ann", "a@b.c", "secret1", "secret2"}, MsgPasswordMismatch},
		{"too short", SignupForm{"Ann", "a@b.c", "abc", "abc"}, MsgPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Signup(tt.form)
			if tt.want == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestLogin(t *testing.T) {
	assert.NoError(t, Login(LoginForm{"a@b.c", "x"}))
	assert.EqualError(t, Login(LoginForm{"", "x"}), MsgFillAllFields)
	assert.EqualError(t, Login(LoginForm{"a@b.c", ""}), MsgFillAllFields)
}

func TestProfile(t *testing.T) {
	assert.NoError(t, Profile(ProfileForm{"Ann", "a@b.c"}))
	assert.EqualError(t, Profile(ProfileForm{"", "a@b.c"}), MsgFillAllFields)

	err := Profile(ProfileForm{"Ann", "not-an-email"})
	var ve *Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, MsgInvalidEmail, ve.Fields["email"])
}

func TestProduct(t *testing.T) {
	valid := models.ProductInput{Name: "Lamp", Description: "Warm light", Category: "Home", Price: 10, Stock: 3}
	require.NoError(t, Product(valid))

	bad := valid
	bad.Name = ""
	bad.Price = -1
	bad.Stock = -2

	err := Product(bad)
	var ve *Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, map[string]string{
		"name":  "Product name is required",
		"price": "Price must be a positive number",
		"stock": "Stock must be a non-negative integer",
	}, ve.Fields)
	assert.Equal(t, "Product name is required; Price must be a positive number; Stock must be a non-negative integer", ve.Message)
}

func TestProduct_NameTooLong(t *testing.T) {
	in := models.ProductInput{Description: "d", Category: "c"}
	for i := 0; i < 101; i++ {
		in.Name += "x"
	}
	var ve *Error
	require.True(t, errors.As(Product(in), &ve))
	assert.Equal(t, "Product name cannot exceed 100 characters", ve.Fields["name"])
}
