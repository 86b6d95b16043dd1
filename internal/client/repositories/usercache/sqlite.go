package usercache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/usermgr/internal/client/models"
	"github.com/dmitrijs2005/usermgr/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Replace deletes the previous snapshot and inserts the new one in a single
// transaction, so readers never observe a half-written list.
func (r *SQLiteRepository) Replace(ctx context.Context, users []models.User) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM users_cache`); err != nil {
			return fmt.Errorf("clear users cache: %w", err)
		}
		for _, u := range users {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO users_cache (id, username, email, role, created_at)
				VALUES (?, ?, ?, ?, ?)
			`, u.ID, u.Username, u.Email, string(u.Role), u.CreatedAt.UTC().Format(time.RFC3339Nano))
			if err != nil {
				return fmt.Errorf("insert cached user %d: %w", u.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, email, role, created_at FROM users_cache ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list cached users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var role, created string
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &role, &created); err != nil {
			return nil, fmt.Errorf("scan cached user: %w", err)
		}
		u.Role = models.Role(role)
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			u.CreatedAt = ts
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cached users: %w", err)
	}
	return users, nil
}
