// internal/connections/models.go

package connections

import "time"

// Connection records that UserID follows FriendID
type Connection struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	FriendID  int64     `json:"friend_id" db:"friend_id"`
	Status    bool      `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FollowInfo is a follower/following list entry enriched for display
type FollowInfo struct {
	UserID int64  `json:"user_id" db:"user_id"`
	Name   string `json:"name" db:"name"`
	Avatar string `json:"avatar"`

	PhotoID *int64 `json:"-" db:"photo_id"`
}
