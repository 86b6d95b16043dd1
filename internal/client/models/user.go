// Package models defines the data types exchanged with the User Management
// API and stored locally by the CLI.
package models

import "time"

// Role determines which administrative affordances the CLI shows.
// It is a UI hint only; the server remains the authority on permissions.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a server-owned account record. The CLI never mutates it locally;
// all changes go through the API.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CreatedLocal renders the account creation time in the local timezone,
// the way the list view displays it.
func (u *User) CreatedLocal() string {
	if u.CreatedAt.IsZero() {
		return ""
	}
	return u.CreatedAt.Local().Format("2006-01-02 15:04")
}
