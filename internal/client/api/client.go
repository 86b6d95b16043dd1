// Package api implements the client for the User Management REST API.
// The server is an external collaborator; everything the CLI knows about
// accounts comes through this interface.
package api

import (
	"context"

	"github.com/dmitrijs2005/usermgr/internal/client/models"
)

// UserUpdate carries the optional fields of PUT /api/users/{id}.
// Nil fields are omitted from the request and left unchanged by the server.
type UserUpdate struct {
	Email    *string      `json:"email,omitempty"`
	Password *string      `json:"password,omitempty"`
	Role     *models.Role `json:"role,omitempty"`
}

// Client is the transport-level contract with the backend.
//
// All methods honor context cancellation. Transport failures are reported
// as ErrUnavailable; server-side rejections carry the verbatim detail string
// inside *APIError (see errors.go).
type Client interface {
	Close() error
	Register(ctx context.Context, username, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, username string, password []byte) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, string, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, upd UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	RedisStats(ctx context.Context) (*models.RedisStats, error)
	Ping(ctx context.Context) error
}
