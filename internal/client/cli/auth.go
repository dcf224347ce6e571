package cli

import (
	"context"
	"fmt"

	"github.com/reddot/reddot-client/internal/client/models"
	"github.com/reddot/reddot-client/internal/client/router"
)

// getSimpleText, getPassword, getConfirm and getMultiline are indirections
// used to facilitate testing. They point to interactive input helpers and can
// be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getConfirm = GetConfirm
var getMultiline = GetMultiline

// Signup prompts for the registration form and creates the account. On
// success the user lands on the onboarding wizard.
func (a *App) Signup(ctx context.Context) error {
	var req models.SignupRequest
	var err error

	if req.FirstName, err = getSimpleText(a.reader, "First name", a.out); err != nil {
		return err
	}
	if req.LastName, err = getSimpleText(a.reader, "Last name", a.out); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)
	req.Password = string(password)

	if req.ConsentGiven, err = getConfirm(a.reader, "I agree to the terms and privacy policy", a.out); err != nil {
		return err
	}

	user, err := a.session.Signup(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", user.DisplayName())
	a.nav.Navigate(router.PathOnboarding)
	a.render()
	return nil
}

// Login prompts for credentials and signs in. On success the user lands on
// the dashboard.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	user, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", user.DisplayName())
	a.nav.Navigate(router.PathDashboard)
	a.render()
	return nil
}

// Logout forgets the session and returns to /login.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.nav.Navigate(router.PathLogin)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
