// internal/connections/repository.go

package connections

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository interface {
	Follow(ctx context.Context, userID, friendID int64) error
	Unfollow(ctx context.Context, userID, friendID int64) error
	IsFollowing(ctx context.Context, userID, friendID int64) (bool, error)

	// FollowingIDs returns every user userID follows
	FollowingIDs(ctx context.Context, userID int64) ([]int64, error)

	Followers(ctx context.Context, userID int64) ([]FollowInfo, error)
	Followings(ctx context.Context, userID int64) ([]FollowInfo, error)
	FollowersCount(ctx context.Context, userID int64) (int64, error)
	FollowingsCount(ctx context.Context, userID int64) (int64, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Follow(ctx context.Context, userID, friendID int64) error {
	query := `
        INSERT INTO connections (user_id, friend_id, status)
        VALUES ($1, $2, TRUE)
        ON CONFLICT (user_id, friend_id) DO UPDATE SET status = TRUE
    `
	if _, err := r.db.ExecContext(ctx, query, userID, friendID); err != nil {
		return fmt.Errorf("follow: %w", err)
	}
	return nil
}

func (r *postgresRepository) Unfollow(ctx context.Context, userID, friendID int64) error {
	query := `DELETE FROM connections WHERE user_id = $1 AND friend_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, friendID); err != nil {
		return fmt.Errorf("unfollow: %w", err)
	}
	return nil
}

func (r *postgresRepository) IsFollowing(ctx context.Context, userID, friendID int64) (bool, error) {
	var following bool
	query := `
        SELECT EXISTS(
            SELECT 1 FROM connections WHERE user_id = $1 AND friend_id = $2
        )
    `
	if err := r.db.GetContext(ctx, &following, query, userID, friendID); err != nil {
		return false, fmt.Errorf("is following: %w", err)
	}
	return following, nil
}

func (r *postgresRepository) FollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := pq.Int64Array{}
	query := `SELECT COALESCE(ARRAY_AGG(friend_id), '{}') FROM connections WHERE user_id = $1`

	if err := r.db.GetContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("following ids: %w", err)
	}
	return []int64(ids), nil
}

func (r *postgresRepository) Followers(ctx context.Context, userID int64) ([]FollowInfo, error) {
	query := `
        SELECT c.user_id,
               TRIM(CONCAT(u.first_name, ' ', COALESCE(u.last_name, ''))) AS name,
               u.photo_id
        FROM connections c
        JOIN users u ON c.user_id = u.id
        WHERE c.friend_id = $1
        ORDER BY c.created_at DESC
    `
	var followers []FollowInfo
	if err := r.db.SelectContext(ctx, &followers, query, userID); err != nil {
		return nil, fmt.Errorf("followers: %w", err)
	}
	return followers, nil
}

func (r *postgresRepository) Followings(ctx context.Context, userID int64) ([]FollowInfo, error) {
	query := `
        SELECT c.friend_id AS user_id,
               TRIM(CONCAT(u.first_name, ' ', COALESCE(u.last_name, ''))) AS name,
               u.photo_id
        FROM connections c
        JOIN users u ON c.friend_id = u.id
        WHERE c.user_id = $1
        ORDER BY c.created_at DESC
    `
	var followings []FollowInfo
	if err := r.db.SelectContext(ctx, &followings, query, userID); err != nil {
		return nil, fmt.Errorf("followings: %w", err)
	}
	return followings, nil
}

func (r *postgresRepository) FollowersCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM connections WHERE friend_id = $1`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("followers count: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) FollowingsCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM connections WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("followings count: %w", err)
	}
	return count, nil
}
