package services

import (
	"errors"

	"github.com/dmitrijs2005/vibecart/internal/client/client"
	"github.com/dmitrijs2005/vibecart/internal/client/models"
)

// ErrUnauthenticated means the operation needs a credential and none is held.
// No request was made.
var ErrUnauthenticated = errors.New("not authenticated")

// Failure is a failed operation with the message to show the user.
type Failure struct {
	Message string
	Errors  []models.FieldError
	Err     error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Err }

func failure(err error, fallback string) *Failure {
	return &Failure{
		Message: client.MessageOf(err, fallback),
		Errors:  client.FieldErrorsOf(err),
		Err:     err,
	}
}

// AuthResult is the outcome of signup, login and profile updates. A
// failure never changes session state.
type AuthResult struct {
	Success bool
	Message string
	Errors  []models.FieldError
}

func authFailure(err error, fallback string) AuthResult {
	return AuthResult{
		Message: client.MessageOf(err, fallback),
		Errors:  client.FieldErrorsOf(err),
	}
}
