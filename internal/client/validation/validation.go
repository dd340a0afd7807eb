// Package validation checks user-entered forms before any request is made.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/vibecart/internal/client/models"
	"github.com/go-playground/validator/v10"
)

var ErrInvalid = errors.New("invalid input")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Error is a failed form check. Message is the single line shown to the
// user; Fields holds per-field messages when the form has them.
type Error struct {
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return ErrInvalid }

const (
	MsgFillAllFields    = "Please fill in all fields"
	MsgPasswordMismatch = "Passwords do not match"
	MsgPasswordTooShort = "Password must be at least 6 characters"
	MsgInvalidEmail     = "Please enter a valid email address"
)

type SignupForm struct {
	Name            string `validate:"required"`
	Email           string `validate:"required"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

type LoginForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type ProfileForm struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

// Signup reports the first failing rule, in order: completeness, password
// confirmation, password length.
func Signup(f SignupForm) error {
	fe := fieldErrors(validate.Struct(f))
	switch {
	case fe == nil:
		return nil
	case hasTag(fe, "required"):
		return &Error{Message: MsgFillAllFields}
	case hasTag(fe, "eqfield"):
		return &Error{Message: MsgPasswordMismatch}
	case hasTag(fe, "min"):
		return &Error{Message: MsgPasswordTooShort}
	default:
		return &Error{Message: MsgFillAllFields}
	}
}

func Login(f LoginForm) error {
	if fieldErrors(validate.Struct(f)) != nil {
		return &Error{Message: MsgFillAllFields}
	}
	return nil
}

func Profile(f ProfileForm) error {
	fe := fieldErrors(validate.Struct(f))
	switch {
	case fe == nil:
		return nil
	case hasTag(fe, "required"):
		return &Error{Message: MsgFillAllFields}
	default:
		return &Error{Message: MsgInvalidEmail, Fields: map[string]string{"email": MsgInvalidEmail}}
	}
}

var productMessages = map[string]string{
	"Name.required":        "Product name is required",
	"Name.max":             "Product name cannot exceed 100 characters",
	"Description.required": "Product description is required",
	"Category.required":    "Product category is required",
	"Price.gte":            "Price must be a positive number",
	"Stock.gte":            "Stock must be a non-negative integer",
}

// Product checks a create/update body. Fields is keyed by the JSON name.
func Product(in models.ProductInput) error {
	fe := fieldErrors(validate.Struct(in))
	if fe == nil {
		return nil
	}
	fields := make(map[string]string, len(fe))
	for _, e := range fe {
		key := e.StructField() + "." + e.Tag()
		msg, ok := productMessages[key]
		if !ok {
			msg = fmt.Sprintf("%s failed on '%s'", e.Field(), e.Tag())
		}
		fields[jsonName(e.StructField())] = msg
	}
	return &Error{Message: joinSorted(fields), Fields: fields}
}

func fieldErrors(err error) validator.ValidationErrors {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	// InvalidValidationError only happens on programmer error.
	panic(err)
}

func hasTag(fe validator.ValidationErrors, tag string) bool {
	for _, e := range fe {
		if e.Tag() == tag {
			return true
		}
	}
	return false
}

func jsonName(structField string) string {
	if structField == "" {
		return ""
	}
	return strings.ToLower(structField[:1]) + structField[1:]
}

func joinSorted(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fields[k])
	}
	return strings.Join(msgs, "; ")
}
