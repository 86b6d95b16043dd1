package cli

import (
	"context"

	"github.com/dmitrijs2005/usermgr/internal/client/models"
)

// View is the mutually exclusive UI state of the CLI. Exactly one view is
// active at any time; it is derived from session presence at startup and
// changed only through the show* transitions below.
type View int

const (
	// ViewLogin is the logged-out state accepting login attempts.
	ViewLogin View = iota
	// ViewRegister is the logged-out state accepting registrations.
	ViewRegister
	// ViewAuthenticated is the logged-in state with the user directory.
	ViewAuthenticated
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewRegister:
		return "register"
	case ViewAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// ShowLogin switches to the login view. Moving between the two logged-out
// views has no side effects beyond the view change itself.
func (a *App) ShowLogin() {
	a.view = ViewLogin
	a.currentUser = nil
	printlnFn("Log in with your username and password, or type 'register' to create an account.")
}

// ShowRegister switches to the registration view.
func (a *App) ShowRegister() {
	a.view = ViewRegister
	a.currentUser = nil
	printlnFn("Create an account with 'signup', or type 'login' to go back.")
}

// showAuthenticated enters the authenticated view for the given user,
// triggers the user-list fetch, and reveals the admin diagnostics panel
// for admin accounts.
func (a *App) showAuthenticated(ctx context.Context, user *models.User) {
	a.view = ViewAuthenticated
	a.currentUser = user

	printlnFn("Logged in as " + user.Username + " (" + string(user.Role) + ").")
	if user.IsAdmin() {
		printlnFn("Admin panel available: 'stats' shows cache-layer diagnostics.")
	}

	_ = a.List(ctx)
}

// currentView reports the active view for REPL dispatch.
func (a *App) currentView() View {
	return a.view
}
