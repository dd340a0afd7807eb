package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vibecart/internal/client/services"
	"github.com/dmitrijs2005/vibecart/internal/client/validation"
	"github.com/dmitrijs2005/vibecart/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var errNotLoggedIn = errors.New("Please login first")

// authFailed prints the server's field errors and returns the headline.
func (a *App) authFailed(res services.AuthResult) error {
	a.render.FieldErrors(res.Errors)
	return errors.New(res.Message)
}

// Signup prompts for the account fields and creates the account. The
// password buffers are wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	res := a.session.Signup(ctx, validation.SignupForm{
		Name:            name,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	})
	if !res.Success {
		return a.authFailed(res)
	}

	a.println(fmt.Sprintf("Welcome, %s!", a.session.User().Name))
	a.cart.FetchCart(ctx)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.session.Login(ctx, email, string(password))
	if !res.Success {
		return a.authFailed(res)
	}

	a.println(fmt.Sprintf("Welcome back, %s!", a.session.User().Name))
	a.cart.FetchCart(ctx)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.log.Warn(ctx, "logout incomplete", "error", err)
	}
	a.println("Logged out.")
	return nil
}

// Whoami shows the identity and, when the credential is a JWT, its expiry.
func (a *App) Whoami(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		return errNotLoggedIn
	}
	exp, _ := a.session.CredentialExpiry()
	a.render.User(u, exp)
	return nil
}

// Profile edits name and email; an empty answer keeps the current value.
func (a *App) Profile(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		return errNotLoggedIn
	}
	name, err := GetTextDefault(a.reader, "Name", u.Name, a.out)
	if err != nil {
		return err
	}
	email, err := GetTextDefault(a.reader, "Email", u.Email, a.out)
	if err != nil {
		return err
	}

	res := a.session.UpdateProfile(ctx, name, email)
	if !res.Success {
		return a.authFailed(res)
	}
	a.println("Profile updated successfully!")
	return nil
}
