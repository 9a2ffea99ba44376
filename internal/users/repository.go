// internal/users/repository.go

package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	GetByID(ctx context.Context, userID int64) (*User, error)

	// Blocking
	Block(ctx context.Context, ownerID, userID int64) error
	Unblock(ctx context.Context, ownerID, userID int64) error

	// BlockStatus reports whether viewerID has been blocked by ownerID
	BlockStatus(ctx context.Context, viewerID, ownerID int64) (bool, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetByID(ctx context.Context, userID int64) (*User, error) {
	var user User
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *postgresRepository) Block(ctx context.Context, ownerID, userID int64) error {
	query := `
        INSERT INTO blocked_users (user_id, owner_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, owner_id) DO NOTHING
    `
	_, err := r.db.ExecContext(ctx, query, userID, ownerID)
	if err != nil {
		return fmt.Errorf("block user: %w", err)
	}
	return nil
}

func (r *postgresRepository) Unblock(ctx context.Context, ownerID, userID int64) error {
	query := `DELETE FROM blocked_users WHERE user_id = $1 AND owner_id = $2`
	_, err := r.db.ExecContext(ctx, query, userID, ownerID)
	if err != nil {
		return fmt.Errorf("unblock user: %w", err)
	}
	return nil
}

func (r *postgresRepository) BlockStatus(ctx context.Context, viewerID, ownerID int64) (bool, error) {
	var blocked bool
	query := `
        SELECT EXISTS(
            SELECT 1 FROM blocked_users
            WHERE user_id = $1 AND owner_id = $2
        )
    `
	err := r.db.GetContext(ctx, &blocked, query, viewerID, ownerID)
	if err != nil {
		return false, fmt.Errorf("block status: %w", err)
	}
	return blocked, nil
}
