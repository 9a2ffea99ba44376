// internal/activity/models.go

package activity

import "time"

// Join-request states. Anything other than Accepted/Rejected is treated as
// pending when bucketing.
const (
	StatusPending  = 0
	StatusAccepted = 1
	StatusRejected = 2
)

// Activity is a scheduled social event owned by its creator
type Activity struct {
	ID          int64  `json:"activity_id" db:"id"`
	OwnerID     int64  `json:"owner_id" db:"owner_id"`
	CategoryID  int64  `json:"category_id" db:"category_id"`
	Date        string `json:"date" db:"date"` // YYYY-MM-DD
	Time        string `json:"time" db:"time"` // HH:MM:SS
	Title       string `json:"activity" db:"title"`
	Description string `json:"description" db:"description"`
	Capacity    string `json:"number" db:"capacity"`
	StartAge    string `json:"start_age" db:"start_age"`
	EndAge      string `json:"end_age" db:"end_age"`
	Skill       string `json:"skill" db:"skill"`
	Gender      string `json:"gender" db:"gender"`
	Sponsored   bool   `json:"sponsored" db:"sponsored"`

	// ScheduledAt is the composed date+time instant. It is derived on every
	// write and is the only field temporal queries compare against.
	ScheduledAt time.Time `json:"scheduled_at" db:"scheduled_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// JoinRequest tracks one user's request to join one activity. At most one
// request exists per (activity, owner, user) triple; the database enforces it.
type JoinRequest struct {
	ID           int64     `json:"id" db:"id"`
	ActivityID   int64     `json:"activity_id" db:"activity_id"`
	OwnerID      int64     `json:"owner_id" db:"owner_id"` // activity owner, denormalized
	UserID       int64     `json:"user_id" db:"user_id"`   // requester
	Status       int       `json:"status" db:"status"`
	UserMessage  *string   `json:"user_message,omitempty" db:"user_message"`
	OwnerMessage *string   `json:"owner_message,omitempty" db:"owner_message"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Request-status codes reported by the detail view, from the viewer's side.
// 0-2 mirror an existing request's status.
const (
	RequestStatusNone    = 3 // viewer has no request for this activity
	RequestStatusBlocked = 4 // viewer is blocked by the owner; overrides all
)
