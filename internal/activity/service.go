// internal/activity/service.go
// Business logic for activities and the join request lifecycle

package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/linkupapp/linkup-backend/internal/category"
	"github.com/linkupapp/linkup-backend/internal/common/utils"
	"github.com/linkupapp/linkup-backend/internal/geo"
	"github.com/linkupapp/linkup-backend/internal/users"
)

var (
	ErrNotOwner         = errors.New("unauthorized")
	ErrOwnerCannotJoin  = errors.New("owner cannot join own activity")
	ErrAlreadyRequested = errors.New("already requested to join")
	ErrUserRequired     = errors.New("user id is required")
)

// FollowGraph is the read side of the connection graph, satisfied by the
// connections service.
type FollowGraph interface {
	FollowingIDs(ctx context.Context, userID int64) ([]int64, error)
}

type Service interface {
	CreateActivity(ctx context.Context, ownerID int64, dto *CreateActivityDTO) (*Activity, error)
	EditActivity(ctx context.Context, actorID int64, dto *EditActivityDTO) (*Activity, error)
	DeleteActivity(ctx context.Context, actorID, activityID int64) error

	Join(ctx context.Context, actorID, activityID int64, message string) error
	Accept(ctx context.Context, actorID, activityID, userID int64, message string) error
	Reject(ctx context.Context, actorID, activityID, userID int64, message string) error
	Cancel(ctx context.Context, actorID, activityID, userID int64, message string) error
	DeleteRequest(ctx context.Context, actorID, activityID, userID int64) error
	Requests(ctx context.Context, activityID int64) (*RequestBuckets, error)

	Nearby(ctx context.Context, actorID int64, params NearbyParams) ([]NearbyItem, error)
	UserActivities(ctx context.Context, params UserActivitiesParams) (*utils.Page[ActivitySummary], error)
	Mine(ctx context.Context, actorID int64, params MineParams) (*MineBuckets, error)
	Detail(ctx context.Context, actorID, activityID int64) (*DetailView, error)

	CountUpcoming(ctx context.Context, ownerID int64, cutoff time.Time, categoryID int64) (int64, error)
}

type service struct {
	repo            Repository
	locations       geo.Store
	index           *geo.Index
	users           users.Repository
	catalog         category.Repository
	follows         FollowGraph
	photos          *users.PhotoResolver
	categories      *category.ImageResolver
	defaultRadiusKm float64
	defaultPageSize int
}

func NewService(
	repo Repository,
	locations geo.Store,
	index *geo.Index,
	userRepo users.Repository,
	catalog category.Repository,
	follows FollowGraph,
	photos *users.PhotoResolver,
	categories *category.ImageResolver,
	defaultRadiusKm float64,
	defaultPageSize int,
) Service {
	return &service{
		repo:            repo,
		locations:       locations,
		index:           index,
		users:           userRepo,
		catalog:         catalog,
		follows:         follows,
		photos:          photos,
		categories:      categories,
		defaultRadiusKm: defaultRadiusKm,
		defaultPageSize: defaultPageSize,
	}
}

func (s *service) CreateActivity(ctx context.Context, ownerID int64, dto *CreateActivityDTO) (*Activity, error) {
	scheduledAt, err := utils.ComposeInstant(dto.Date, dto.Time)
	if err != nil {
		return nil, err
	}

	a := &Activity{
		OwnerID:     ownerID,
		CategoryID:  dto.CategoryID,
		Date:        dto.Date,
		Time:        dto.Time,
		Title:       dto.Title,
		Description: dto.Description,
		Capacity:    dto.Capacity,
		StartAge:    dto.StartAge,
		EndAge:      dto.EndAge,
		Skill:       dto.Skill,
		Gender:      dto.Gender,
		ScheduledAt: scheduledAt,
	}

	id, err := s.repo.CreateActivity(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id

	loc := dto.Location.toLocation(id)
	if err := s.locations.Save(ctx, loc); err != nil {
		return nil, fmt.Errorf("failed to save activity location: %w", err)
	}

	activitiesCreated.Inc()
	return a, nil
}

func (s *service) EditActivity(ctx context.Context, actorID int64, dto *EditActivityDTO) (*Activity, error) {
	a, err := s.repo.GetActivity(ctx, dto.ActivityID)
	if err != nil {
		return nil, err
	}
	if a.OwnerID != actorID {
		return nil, ErrNotOwner
	}

	scheduledAt, err := utils.ComposeInstant(dto.Date, dto.Time)
	if err != nil {
		return nil, err
	}

	a.CategoryID = dto.CategoryID
	a.Date = dto.Date
	a.Time = dto.Time
	a.Title = dto.Title
	a.Description = dto.Description
	a.Capacity = dto.Capacity
	a.StartAge = dto.StartAge
	a.EndAge = dto.EndAge
	a.Skill = dto.Skill
	a.Gender = dto.Gender
	a.ScheduledAt = scheduledAt

	if err := s.repo.UpdateActivity(ctx, a); err != nil {
		return nil, err
	}

	if dto.Location != nil {
		if err := s.locations.Save(ctx, dto.Location.toLocation(a.ID)); err != nil {
			return nil, fmt.Errorf("failed to save activity location: %w", err)
		}
	}
	return a, nil
}

// DeleteActivity removes the activity along with its join requests and its
// location, including the geo index entry.
func (s *service) DeleteActivity(ctx context.Context, actorID, activityID int64) error {
	a, err := s.repo.GetActivity(ctx, activityID)
	if err != nil {
		return err
	}
	if a.OwnerID != actorID {
		return ErrNotOwner
	}

	if err := s.repo.DeleteRequestsForActivity(ctx, activityID); err != nil {
		return err
	}
	if err := s.locations.Delete(ctx, activityID, geo.ResourceActivity); err != nil && !errors.Is(err, geo.ErrLocationNotFound) {
		return err
	}
	return s.repo.DeleteActivity(ctx, activityID)
}

func (s *service) Join(ctx context.Context, actorID, activityID int64, message string) error {
	a, err := s.repo.GetActivity(ctx, activityID)
	if err != nil {
		return err
	}
	if a.OwnerID == actorID {
		return ErrOwnerCannotJoin
	}

	// Fast path only. The unique constraint on (activity_id, owner_id,
	// user_id) is the authoritative duplicate guard.
	if _, err := s.repo.GetRequest(ctx, activityID, actorID); err == nil {
		return ErrAlreadyRequested
	} else if !errors.Is(err, ErrRequestNotFound) {
		return err
	}

	req := &JoinRequest{
		ActivityID: activityID,
		OwnerID:    a.OwnerID,
		UserID:     actorID,
		Status:     StatusPending,
	}
	if message != "" {
		req.UserMessage = &message
	}

	if _, err := s.repo.CreateRequest(ctx, req); err != nil {
		if errors.Is(err, ErrDuplicateRequest) {
			return ErrAlreadyRequested
		}
		return err
	}

	requestTransitions.WithLabelValues("join").Inc()
	return nil
}

func (s *service) Accept(ctx context.Context, actorID, activityID, userID int64, message string) error {
	return s.respond(ctx, actorID, activityID, userID, StatusAccepted, message, "accept")
}

func (s *service) Reject(ctx context.Context, actorID, activityID, userID int64, message string) error {
	return s.respond(ctx, actorID, activityID, userID, StatusRejected, message, "reject")
}

func (s *service) respond(ctx context.Context, actorID, activityID, userID int64, status int, message, transition string) error {
	a, err := s.repo.GetActivity(ctx, activityID)
	if err != nil {
		return err
	}
	if a.OwnerID != actorID {
		return ErrNotOwner
	}

	if err := s.repo.UpdateRequestStatus(ctx, activityID, userID, status, message); err != nil {
		return err
	}

	requestTransitions.WithLabelValues(transition).Inc()
	return nil
}

// Cancel is dual path. Owners reset a participant's request back to pending,
// keeping the record. Participants withdraw their own request entirely.
func (s *service) Cancel(ctx context.Context, actorID, activityID, userID int64, message string) error {
	a, err := s.repo.GetActivity(ctx, activityID)
	if err != nil {
		return err
	}

	if a.OwnerID == actorID {
		if userID == 0 {
			return ErrUserRequired
		}
		if err := s.repo.UpdateRequestStatus(ctx, activityID, userID, StatusPending, message); err != nil {
			return err
		}
		requestTransitions.WithLabelValues("reset").Inc()
		return nil
	}

	if err := s.repo.DeleteRequest(ctx, activityID, actorID); err != nil {
		return err
	}
	requestTransitions.WithLabelValues("withdraw").Inc()
	return nil
}

func (s *service) DeleteRequest(ctx context.Context, actorID, activityID, userID int64) error {
	req, err := s.repo.GetRequest(ctx, activityID, userID)
	if err != nil {
		return err
	}
	if req.OwnerID != actorID {
		return ErrNotOwner
	}

	if err := s.repo.DeleteRequest(ctx, activityID, userID); err != nil {
		return err
	}
	requestTransitions.WithLabelValues("delete").Inc()
	return nil
}

func (s *service) Requests(ctx context.Context, activityID int64) (*RequestBuckets, error) {
	if _, err := s.repo.GetActivity(ctx, activityID); err != nil {
		return nil, err
	}

	views, err := s.repo.RequestsForActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	buckets := &RequestBuckets{
		Pending:  []RequestView{},
		Accepted: []RequestView{},
		Rejected: []RequestView{},
	}
	for _, v := range views {
		v.Avatar = s.photos.URL(v.UserPhotoID, users.VariantProfile)
		v.CategoryImage = s.categories.URL(v.CategoryID)

		switch v.Status {
		case StatusAccepted:
			buckets.Accepted = append(buckets.Accepted, v)
		case StatusRejected:
			buckets.Rejected = append(buckets.Rejected, v)
		default:
			buckets.Pending = append(buckets.Pending, v)
		}
	}
	return buckets, nil
}

func (s *service) CountUpcoming(ctx context.Context, ownerID int64, cutoff time.Time, categoryID int64) (int64, error) {
	return s.repo.CountUpcoming(ctx, ownerID, cutoff, categoryID)
}
