package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/usermgr/internal/client/api"
	"github.com/dmitrijs2005/usermgr/internal/client/models"
	"github.com/dmitrijs2005/usermgr/internal/client/repositories/usercache"
	"github.com/dmitrijs2005/usermgr/internal/logging"
)

// SourceLocalCache marks a user list served from the local snapshot instead
// of the server (which reports "cache" or "database" for its own origins).
const SourceLocalCache = "local-cache"

// UserService exposes the user directory and the cache diagnostics panel.
type UserService interface {
	List(ctx context.Context) ([]models.User, string, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, upd api.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.RedisStats, error)
}

type userService struct {
	client api.Client
	cache  usercache.Repository
	log    logging.Logger
}

func NewUserService(client api.Client, cache usercache.Repository, log logging.Logger) UserService {
	return &userService{client: client, cache: cache, log: log}
}

// List fetches the user collection from the server and refreshes the local
// snapshot. When the server is unreachable the previous snapshot is served
// instead, so the rendered list survives a fetch failure.
func (s *userService) List(ctx context.Context) ([]models.User, string, error) {
	users, source, err := s.client.ListUsers(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			cached, cacheErr := s.cache.List(ctx)
			if cacheErr == nil && len(cached) > 0 {
				s.log.Warn(ctx, "server unreachable, serving cached user list", "count", len(cached))
				return cached, SourceLocalCache, nil
			}
		}
		return nil, "", err
	}

	if err := s.cache.Replace(ctx, users); err != nil {
		// Cache refresh failure must not break the listing itself.
		s.log.Warn(ctx, "user cache refresh failed", "err", err)
	}
	return users, source, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.client.GetUser(ctx, id)
}

func (s *userService) Update(ctx context.Context, id int64, upd api.UserUpdate) (*models.User, error) {
	return s.client.UpdateUser(ctx, id, upd)
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.client.DeleteUser(ctx, id)
}

func (s *userService) Stats(ctx context.Context) (*models.RedisStats, error) {
	return s.client.RedisStats(ctx)
}
