package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/usermgr/internal/client/services"
)

// getSimpleText, getPassword and confirmFn are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirmFn     = Confirm
)

// Login prompts for credentials and attempts to authenticate.
//
// On success the session is persisted and the app enters the authenticated
// view. On failure the server's message (or a connectivity fallback) is shown
// and the current logged-out view stays as it was. The password byte slice is
// wiped before returning.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipeBytes(password)

	user, err := a.authService.Login(ctx, username, password)
	if err != nil {
		printlnFn(errorMessage(err))
		return err
	}

	a.showAuthenticated(ctx, user)
	return nil
}

// Signup runs the registration flow: create the account, then log in
// automatically with the same credentials.
//
// Outcomes:
//   - registration rejected: server message shown, register view kept;
//   - registered but auto-login failed: explanatory message, login view;
//   - both succeeded: session persisted, authenticated view.
func (a *App) Signup(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipeBytes(password)

	user, err := a.authService.RegisterAndLogin(ctx, username, email, password)
	if err != nil {
		if errors.Is(err, services.ErrAutoLoginFailed) {
			printlnFn("Registration succeeded, but automatic login did not complete. Please log in manually.")
			a.ShowLogin()
			return nil
		}
		printlnFn(errorMessage(err))
		return err
	}

	printlnFn("Account created.")
	a.showAuthenticated(ctx, user)
	return nil
}

// Logout clears the persisted session and returns to the login view.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		printlnFn(errorMessage(err))
		return err
	}
	printlnFn("You have been logged out.")
	a.ShowLogin()
	return nil
}

// WhoAmI prints the current session identity.
func (a *App) WhoAmI() error {
	if a.currentUser == nil {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn("Logged in as " + a.currentUser.Username + " (" + string(a.currentUser.Role) + "), id " + formatID(a.currentUser.ID))
	return nil
}
