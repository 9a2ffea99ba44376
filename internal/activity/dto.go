// internal/activity/dto.go
// DTOs for API requests/responses

package activity

import (
	"encoding/json"
	"time"

	"github.com/linkupapp/linkup-backend/internal/geo"
)

type LocationDTO struct {
	LocationID       int64   `json:"locationId,omitempty"`
	Latitude         float64 `json:"latitude" validate:"required,latitude"`
	Longitude        float64 `json:"longitude" validate:"required,longitude"`
	Name             string  `json:"location,omitempty"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	Country          string  `json:"country,omitempty"`
	State            string  `json:"state,omitempty"`
	City             string  `json:"city,omitempty"`
	Zipcode          string  `json:"zipcode,omitempty"`
	Address          string  `json:"address,omitempty"`
}

func (l *LocationDTO) toLocation(resourceID int64) *geo.Location {
	return &geo.Location{
		ID:               l.LocationID,
		ResourceID:       resourceID,
		ResourceType:     geo.ResourceActivity,
		Latitude:         l.Latitude,
		Longitude:        l.Longitude,
		Name:             l.Name,
		FormattedAddress: l.FormattedAddress,
		Country:          l.Country,
		State:            l.State,
		City:             l.City,
		Zipcode:          l.Zipcode,
		Address:          l.Address,
	}
}

type CreateActivityDTO struct {
	CategoryID  int64        `json:"categoryId"`
	Date        string       `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string       `json:"time" validate:"required,datetime=15:04:05"`
	Title       string       `json:"activity" validate:"required"`
	Description string       `json:"description" validate:"required"`
	Capacity    string       `json:"number" validate:"required"`
	StartAge    string       `json:"startAge" validate:"required"`
	EndAge      string       `json:"endAge" validate:"required"`
	Skill       string       `json:"skill" validate:"required"`
	Gender      string       `json:"gender" validate:"required"`
	Location    *LocationDTO `json:"location" validate:"required"`
}

type EditActivityDTO struct {
	CreateActivityDTO
	ActivityID int64 `json:"activityId" validate:"required"`
}

type JoinDTO struct {
	Message string `json:"message,omitempty" validate:"omitempty,max=500"`
}

// RespondDTO carries the owner side of accept/reject and the owner cancel path
type RespondDTO struct {
	UserID  int64  `json:"userId"`
	Message string `json:"message,omitempty" validate:"omitempty,max=500"`
}

type NearbyParams struct {
	Latitude   float64
	Longitude  float64
	DistanceKm float64
	Date       string
	Time       string
	CategoryID int64
	Limit      int
	Page       int
}

type UserActivitiesParams struct {
	UserID     int64
	CategoryID int64
	Date       string
	Time       string
	Page       int
	Limit      int
}

type MineParams struct {
	Date      string
	Time      string
	Type      string // one bucket name, or empty for all five
	ShowCount bool
}

// Mine bucket names
const (
	BucketFollowed = "followed"
	BucketPast     = "past"
	BucketCurrent  = "current"
	BucketPending  = "pending"
	BucketRejected = "rejected"
)

// ActivitySummary is a list entry enriched for display
type ActivitySummary struct {
	ID            int64     `json:"activity_id" db:"id"`
	OwnerID       int64     `json:"owner_id" db:"owner_id"`
	CategoryID    int64     `json:"category_id" db:"category_id"`
	Date          string    `json:"date" db:"date"`
	Time          string    `json:"time" db:"time"`
	ScheduledAt   time.Time `json:"scheduled_at" db:"scheduled_at"`
	Title         string    `json:"activity" db:"title"`
	Description   string    `json:"description" db:"description"`
	OwnerName     string    `json:"owner_name" db:"owner_name"`
	OwnerAvatar   string    `json:"owner_avatar"`
	Address       string    `json:"address" db:"address"`
	CategoryImage string    `json:"category_image"`
	RequestStatus *int      `json:"request_status,omitempty" db:"request_status"`

	OwnerPhotoID *int64 `json:"-" db:"owner_photo_id"`
}

// NearbyItem is a distance-annotated activity summary, nearest-first
type NearbyItem struct {
	ActivitySummary
	DistanceKm float64 `json:"distance"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// RequestView is one join request enriched for the owner's review screen
type RequestView struct {
	ID           int64   `json:"id" db:"id"`
	ActivityID   int64   `json:"activity_id" db:"activity_id"`
	UserID       int64   `json:"user_id" db:"user_id"`
	Status       int     `json:"status" db:"status"`
	UserMessage  *string `json:"user_message,omitempty" db:"user_message"`
	OwnerMessage *string `json:"owner_message,omitempty" db:"owner_message"`
	UserName     string  `json:"user_name" db:"user_name"`
	Avatar       string  `json:"avatar"`

	ActivityTitle string    `json:"activity" db:"activity_title"`
	ActivityOwner int64     `json:"activity_owner" db:"activity_owner"`
	ScheduledAt   time.Time `json:"scheduled_at" db:"scheduled_at"`
	CategoryImage string    `json:"category_image"`

	UserPhotoID *int64 `json:"-" db:"user_photo_id"`
	CategoryID  int64  `json:"-" db:"category_id"`
}

// RequestBuckets partitions an activity's requests by status
type RequestBuckets struct {
	Pending  []RequestView `json:"pending"`
	Accepted []RequestView `json:"accepted"`
	Rejected []RequestView `json:"rejected"`
}

// BucketValue is one mine bucket: either a bare count or a materialized list
type BucketValue struct {
	Count int64
	Items []ActivitySummary
}

// MarshalJSON renders the bucket as a number in count mode and as an array
// otherwise, matching what clients branch on.
func (b BucketValue) MarshalJSON() ([]byte, error) {
	if b.Items != nil {
		return json.Marshal(b.Items)
	}
	return json.Marshal(b.Count)
}

// MineBuckets is the five-way relevance classification for one caller
type MineBuckets struct {
	Current  BucketValue `json:"current"`
	Pending  BucketValue `json:"pending"`
	Rejected BucketValue `json:"rejected"`
	Followed BucketValue `json:"followed"`
	Past     BucketValue `json:"past"`
}

// DetailView is the single-activity merge of activity, location, category and
// owner profile, with the request status seen from the viewer's perspective.
type DetailView struct {
	Activity
	Location      *geo.Location `json:"location,omitempty"`
	CategoryName  string        `json:"category_name"`
	CategoryImage string        `json:"category_image"`
	OwnerName     string        `json:"owner_name"`
	OwnerAvatar   string        `json:"owner_avatar"`
	IsOwner       bool          `json:"is_owner"`

	// RequestStatus is 0-2 for an existing request, 3 when none exists and 4
	// when the viewer is blocked by the owner. Owners get the number of
	// requests received instead.
	RequestStatus int64 `json:"request_status"`
}
