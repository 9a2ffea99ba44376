// internal/activity/repository.go
// Data access for activities and join requests

package activity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrRequestNotFound  = errors.New("request not found")
	ErrDuplicateRequest = errors.New("request already exists")
)

type Repository interface {
	CreateActivity(ctx context.Context, a *Activity) (int64, error)
	UpdateActivity(ctx context.Context, a *Activity) error
	DeleteActivity(ctx context.Context, id int64) error
	GetActivity(ctx context.Context, id int64) (*Activity, error)
	CountUpcoming(ctx context.Context, ownerID int64, cutoff time.Time, categoryID int64) (int64, error)

	CreateRequest(ctx context.Context, r *JoinRequest) (int64, error)
	GetRequest(ctx context.Context, activityID, userID int64) (*JoinRequest, error)
	UpdateRequestStatus(ctx context.Context, activityID, userID int64, status int, ownerMessage string) error
	DeleteRequest(ctx context.Context, activityID, userID int64) error
	DeleteRequestsForActivity(ctx context.Context, activityID int64) error
	RequestsForActivity(ctx context.Context, activityID int64) ([]RequestView, error)
	RequestCount(ctx context.Context, activityID int64) (int64, error)

	ActivitiesByIDs(ctx context.Context, ids []int64, cutoff time.Time, categoryID int64) ([]ActivitySummary, error)
	UserActivities(ctx context.Context, ownerID int64, cutoff time.Time, categoryID int64, limit, offset int) ([]ActivitySummary, error)
	UserActivitiesCount(ctx context.Context, ownerID int64, cutoff time.Time, categoryID int64) (int64, error)
	MineBucket(ctx context.Context, bucket string, actorID int64, cutoff time.Time, followedIDs []int64) ([]ActivitySummary, error)
	MineBucketCount(ctx context.Context, bucket string, actorID int64, cutoff time.Time, followedIDs []int64) (int64, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateActivity(ctx context.Context, a *Activity) (int64, error) {
	query := `
		INSERT INTO activities (owner_id, category_id, date, time, title, description,
			capacity, start_age, end_age, skill, gender, sponsored, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		a.OwnerID, a.CategoryID, a.Date, a.Time, a.Title, a.Description,
		a.Capacity, a.StartAge, a.EndAge, a.Skill, a.Gender, a.Sponsored, a.ScheduledAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create activity: %w", err)
	}
	return id, nil
}

func (r *postgresRepository) UpdateActivity(ctx context.Context, a *Activity) error {
	query := `
		UPDATE activities
		SET category_id = $1, date = $2, time = $3, title = $4, description = $5,
			capacity = $6, start_age = $7, end_age = $8, skill = $9, gender = $10,
			scheduled_at = $11
		WHERE id = $12`

	result, err := r.db.ExecContext(ctx, query,
		a.CategoryID, a.Date, a.Time, a.Title, a.Description,
		a.Capacity, a.StartAge, a.EndAge, a.Skill, a.Gender, a.ScheduledAt, a.ID)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrActivityNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteActivity(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrActivityNotFound
	}
	return nil
}

func (r *postgresRepository) GetActivity(ctx context.Context, id int64) (*Activity, error) {
	var a Activity
	err := r.db.GetContext(ctx, &a, `SELECT * FROM activities WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) CountUpcoming(ctx context.Context, ownerID int64, cutoff time.Time, categoryID int64) (int64, error) {
	query := `
		SELECT COUNT(*) FROM activities
		WHERE owner_id = $1 AND scheduled_at >= $2
		  AND ($3 = 0 OR category_id = $3)`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, ownerID, cutoff, categoryID); err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) CreateRequest(ctx context.Context, req *JoinRequest) (int64, error) {
	query := `
		INSERT INTO activity_requests (activity_id, owner_id, user_id, status, user_message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		req.ActivityID, req.OwnerID, req.UserID, req.Status, req.UserMessage,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrDuplicateRequest
		}
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	return id, nil
}

func (r *postgresRepository) GetRequest(ctx context.Context, activityID, userID int64) (*JoinRequest, error) {
	var req JoinRequest
	query := `SELECT * FROM activity_requests WHERE activity_id = $1 AND user_id = $2`
	err := r.db.GetContext(ctx, &req, query, activityID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return &req, nil
}

func (r *postgresRepository) UpdateRequestStatus(ctx context.Context, activityID, userID int64, status int, ownerMessage string) error {
	query := `
		UPDATE activity_requests
		SET status = $1, owner_message = NULLIF($2, ''), updated_at = NOW()
		WHERE activity_id = $3 AND user_id = $4`

	result, err := r.db.ExecContext(ctx, query, status, ownerMessage, activityID, userID)
	if err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteRequest(ctx context.Context, activityID, userID int64) error {
	query := `DELETE FROM activity_requests WHERE activity_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, activityID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete request: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteRequestsForActivity(ctx context.Context, activityID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM activity_requests WHERE activity_id = $1`, activityID)
	if err != nil {
		return fmt.Errorf("failed to delete requests: %w", err)
	}
	return nil
}

func (r *postgresRepository) RequestsForActivity(ctx context.Context, activityID int64) ([]RequestView, error) {
	query := `
		SELECT r.id, r.activity_id, r.user_id, r.status, r.user_message, r.owner_message,
			TRIM(CONCAT(u.first_name, ' ', u.last_name)) AS user_name,
			u.photo_id AS user_photo_id,
			a.title AS activity_title, a.owner_id AS activity_owner,
			a.scheduled_at, a.category_id
		FROM activity_requests r
		JOIN users u ON u.id = r.user_id
		JOIN activities a ON a.id = r.activity_id
		WHERE r.activity_id = $1
		ORDER BY r.created_at DESC`

	views := []RequestView{}
	if err := r.db.SelectContext(ctx, &views, query, activityID); err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return views, nil
}

func (r *postgresRepository) RequestCount(ctx context.Context, activityID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM activity_requests WHERE activity_id = $1`
	if err := r.db.GetContext(ctx, &count, query, activityID); err != nil {
		return 0, fmt.Errorf("failed to count requests: %w", err)
	}
	return count, nil
}

const summaryColumns = `
	a.id, a.owner_id, a.category_id, a.date, a.time, a.scheduled_at,
	a.title, a.description,
	TRIM(CONCAT(u.first_name, ' ', u.last_name)) AS owner_name,
	u.photo_id AS owner_photo_id,
	COALESCE(l.address, '') AS address`

const summaryJoins = `
	FROM activities a
	JOIN users u ON u.id = a.owner_id
	LEFT JOIN locations l ON l.resource_id = a.id AND l.resource_type = 'activity'`

func (r *postgresRepository) ActivitiesByIDs(ctx context.Context, ids []int64, cutoff time.Time, categoryID int64) ([]ActivitySummary, error) {
	if len(ids) == 0 {
		return []ActivitySummary{}, nil
	}

	query := `SELECT` + summaryColumns + summaryJoins + `
		WHERE a.id = ANY($1) AND a.scheduled_at >= $2
		  AND ($3 = 0 OR a.category_id = $3)`

	items := []ActivitySummary{}
	if err := r.db.SelectContext(ctx, &items, query, pq.Array(ids), cutoff, categoryID); err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}
	return items, nil
}

func (r *postgresRepository) UserActivities(ctx context.Context, ownerID int64, cutoff time.Time, categoryID int64, limit, offset int) ([]ActivitySummary, error) {
	query := `SELECT` + summaryColumns + summaryJoins + `
		WHERE a.owner_id = $1 AND a.scheduled_at >= $2
		  AND ($3 = 0 OR a.category_id = $3)
		ORDER BY a.scheduled_at ASC
		LIMIT $4 OFFSET $5`

	items := []ActivitySummary{}
	if err := r.db.SelectContext(ctx, &items, query, ownerID, cutoff, categoryID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list user activities: %w", err)
	}
	return items, nil
}

func (r *postgresRepository) UserActivitiesCount(ctx context.Context, ownerID int64, cutoff time.Time, categoryID int64) (int64, error) {
	return r.CountUpcoming(ctx, ownerID, cutoff, categoryID)
}

// mineBucketWhere returns the predicate and argument list for one bucket.
// Buckets driven by a join request select the request status alongside the
// summary columns so list entries can show where the caller stands.
func mineBucketWhere(bucket string, actorID int64, cutoff time.Time, followedIDs []int64) (selectStatus bool, joins, where string, args []interface{}, err error) {
	switch bucket {
	case BucketCurrent:
		joins = `
	LEFT JOIN activity_requests r ON r.activity_id = a.id AND r.user_id = $1 AND r.status = 1`
		where = `(a.owner_id = $1 OR r.id IS NOT NULL) AND a.scheduled_at >= $2`
		return false, joins, where, []interface{}{actorID, cutoff}, nil
	case BucketPast:
		// Owned activities only. Past activities the caller merely joined
		// do not belong to their history.
		where = `a.owner_id = $1 AND a.scheduled_at < $2`
		return false, "", where, []interface{}{actorID, cutoff}, nil
	case BucketPending:
		joins = `
	JOIN activity_requests r ON r.activity_id = a.id AND r.user_id = $1 AND r.status = 0`
		where = `a.scheduled_at >= $2`
		return true, joins, where, []interface{}{actorID, cutoff}, nil
	case BucketRejected:
		joins = `
	JOIN activity_requests r ON r.activity_id = a.id AND r.user_id = $1 AND r.status = 2`
		where = `a.scheduled_at >= $2`
		return true, joins, where, []interface{}{actorID, cutoff}, nil
	case BucketFollowed:
		where = `a.owner_id = ANY($1) AND a.scheduled_at >= $2 AND a.owner_id <> $3`
		return false, "", where, []interface{}{pq.Array(followedIDs), cutoff, actorID}, nil
	default:
		return false, "", "", nil, fmt.Errorf("unknown bucket %q", bucket)
	}
}

func (r *postgresRepository) MineBucket(ctx context.Context, bucket string, actorID int64, cutoff time.Time, followedIDs []int64) ([]ActivitySummary, error) {
	if bucket == BucketFollowed && len(followedIDs) == 0 {
		return []ActivitySummary{}, nil
	}

	selectStatus, joins, where, args, err := mineBucketWhere(bucket, actorID, cutoff, followedIDs)
	if err != nil {
		return nil, err
	}

	columns := summaryColumns
	if selectStatus {
		columns += `,
	r.status AS request_status`
	}
	query := `SELECT` + columns + summaryJoins + joins + `
		WHERE ` + where + `
		ORDER BY a.scheduled_at ASC`

	items := []ActivitySummary{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list %s activities: %w", bucket, err)
	}
	return items, nil
}

func (r *postgresRepository) MineBucketCount(ctx context.Context, bucket string, actorID int64, cutoff time.Time, followedIDs []int64) (int64, error) {
	if bucket == BucketFollowed && len(followedIDs) == 0 {
		return 0, nil
	}

	_, joins, where, args, err := mineBucketWhere(bucket, actorID, cutoff, followedIDs)
	if err != nil {
		return 0, err
	}

	query := `SELECT COUNT(*)
		FROM activities a
		JOIN users u ON u.id = a.owner_id` + joins + `
		WHERE ` + where

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count %s activities: %w", bucket, err)
	}
	return count, nil
}
