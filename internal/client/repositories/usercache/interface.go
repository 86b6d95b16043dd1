// Package usercache persists the last successfully fetched user list so the
// CLI can keep showing it while the server is unreachable.
package usercache

import (
	"context"

	"github.com/dmitrijs2005/usermgr/internal/client/models"
)

// Repository is a snapshot store: Replace swaps the whole cached list
// atomically, List returns it in id order.
type Repository interface {
	Replace(ctx context.Context, users []models.User) error
	List(ctx context.Context) ([]models.User, error)
}
