// internal/users/models.go

package users

import "time"

// User is the read model for profile enrichment. Account creation and
// credentials live in the auth service; this package never writes users.
type User struct {
	ID         int64      `json:"id" db:"id"`
	FirstName  string     `json:"first_name" db:"first_name"`
	LastName   *string    `json:"last_name,omitempty" db:"last_name"`
	Email      string     `json:"email" db:"email"`
	Gender     *string    `json:"gender,omitempty" db:"gender"`
	Age        *string    `json:"age,omitempty" db:"age"`
	AboutMe    *string    `json:"about_me,omitempty" db:"about_me"`
	PhotoID    *int64     `json:"photo_id,omitempty" db:"photo_id"`
	CategoryID int64      `json:"category_id" db:"category_id"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// DisplayName joins first and last name, falling back to whichever is set
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.LastName != nil && *u.LastName != "" {
		if u.FirstName != "" {
			return u.FirstName + " " + *u.LastName
		}
		return *u.LastName
	}
	return u.FirstName
}

// ProfileStats is the aggregate returned by the profile-stats endpoint
type ProfileStats struct {
	Activities int64 `json:"activities"`
	Followers  int64 `json:"followers"`
	Followings int64 `json:"followings"`
}
