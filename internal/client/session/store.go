// Package session persists the authenticated identity across CLI runs.
// At most one session exists; it is written on login, erased on logout and
// read once at startup.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/usermgr/internal/client/models"
	"github.com/dmitrijs2005/usermgr/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/usermgr/internal/logging"
)

// sessionKey is the fixed metadata key the serialized user lives under.
const sessionKey = "session"

// Store is the client-side session contract.
//
//   - Restore yields (nil, nil) when no session is persisted. Malformed data
//     is treated the same way: the store logs it and reports "absent" rather
//     than failing startup.
//   - Save replaces any prior session.
//   - Clear removes the persisted session; clearing an absent session is not
//     an error.
type Store interface {
	Restore(ctx context.Context) (*models.User, error)
	Save(ctx context.Context, u *models.User) error
	Clear(ctx context.Context) error
}

// MetadataStore keeps the session in the local SQLite metadata table.
type MetadataStore struct {
	repo metadata.Repository
	log  logging.Logger
}

func NewMetadataStore(repo metadata.Repository, log logging.Logger) *MetadataStore {
	return &MetadataStore{repo: repo, log: log}
}

func (s *MetadataStore) Restore(ctx context.Context) (*models.User, error) {
	data, err := s.repo.Get(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		// Fail safe: a corrupt session must not block startup.
		s.log.Warn(ctx, "discarding malformed session data", "err", err)
		return nil, nil
	}
	return &u, nil
}

func (s *MetadataStore) Save(ctx context.Context, u *models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.repo.Set(ctx, sessionKey, data); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *MetadataStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
