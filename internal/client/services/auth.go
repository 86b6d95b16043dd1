// Package services contains application services for the usermgr CLI.
// This file defines the authentication service: login, registration with
// auto-login, logout, session restore, and the server liveness probe.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/usermgr/internal/client/api"
	"github.com/dmitrijs2005/usermgr/internal/client/models"
	"github.com/dmitrijs2005/usermgr/internal/client/session"
	"github.com/dmitrijs2005/usermgr/internal/logging"
)

// ErrAutoLoginFailed marks the partial-success outcome of RegisterAndLogin:
// the account exists but the follow-up login did not complete, so the user
// must log in manually. The wrapped error holds the login failure cause.
var ErrAutoLoginFailed = errors.New("auto-login after registration failed")

// autoLoginAttempts bounds the retry loop around the post-registration login
// when the server is momentarily unreachable.
const autoLoginAttempts = 3

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Restore: read the persisted session; absent session yields (nil, nil).
//   - Login: authenticate against the server and persist the session.
//   - Register: create a new account; the caller stays logged out.
//   - RegisterAndLogin: registration followed by an automatic login after a
//     configured consistency delay.
//   - Logout: drop the persisted session; no server call is involved.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Restore(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, username string, password []byte) (*models.User, error)
	Register(ctx context.Context, username, email string, password []byte) (*models.User, error)
	RegisterAndLogin(ctx context.Context, username, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// authService is the concrete AuthService backed by the remote API client
// and the local session store.
type authService struct {
	client api.Client
	store  session.Store
	log    logging.Logger

	// autoLoginDelay compensates for read-after-write lag between the
	// registration insert and the login lookup on the server side.
	autoLoginDelay time.Duration
}

// NewAuthService constructs an AuthService bound to the given API client,
// session store and auto-login delay.
func NewAuthService(client api.Client, store session.Store, autoLoginDelay time.Duration, log logging.Logger) AuthService {
	return &authService{client: client, store: store, autoLoginDelay: autoLoginDelay, log: log}
}

func (a *authService) Restore(ctx context.Context) (*models.User, error) {
	return a.store.Restore(ctx)
}

// Login authenticates against the server and persists the returned user as
// the current session.
func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.User, error) {
	user, err := a.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := a.store.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	a.log.Info(ctx, "login successful", "username", user.Username, "role", user.Role)
	return user, nil
}

func (a *authService) Register(ctx context.Context, username, email string, password []byte) (*models.User, error) {
	return a.client.Register(ctx, username, email, password)
}

// RegisterAndLogin creates the account, waits out the configured consistency
// delay and then logs in with the same credentials. Momentary server
// unavailability during the login step is retried with a constant backoff.
//
// On a login failure the registered user is returned together with an error
// wrapping ErrAutoLoginFailed, so the caller can tell "registration failed"
// and "registered but not logged in" apart.
func (a *authService) RegisterAndLogin(ctx context.Context, username, email string, password []byte) (*models.User, error) {
	registered, err := a.client.Register(ctx, username, email, password)
	if err != nil {
		return nil, err
	}
	a.log.Info(ctx, "registration successful", "username", username)

	select {
	case <-time.After(a.autoLoginDelay):
	case <-ctx.Done():
		return registered, fmt.Errorf("%w: %w", ErrAutoLoginFailed, ctx.Err())
	}

	var user *models.User
	backoff := retry.WithMaxRetries(autoLoginAttempts-1, retry.NewConstant(a.autoLoginDelay))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		u, err := a.client.Login(ctx, username, password)
		if err != nil {
			if errors.Is(err, api.ErrUnavailable) {
				return retry.RetryableError(err)
			}
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		a.log.Warn(ctx, "auto-login failed", "username", username, "err", err)
		return registered, fmt.Errorf("%w: %w", ErrAutoLoginFailed, err)
	}

	if err := a.store.Save(ctx, user); err != nil {
		return registered, fmt.Errorf("%w: session saving error: %w", ErrAutoLoginFailed, err)
	}
	return user, nil
}

// Logout clears the persisted session. The client-side session is stateless,
// so no server call is made.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return err
	}
	a.log.Info(ctx, "logged out")
	return nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
