// internal/users/service.go

package users

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/linkupapp/linkup-backend/internal/geo"
)

var (
	ErrAlreadyBlocked = errors.New("you have already blocked this user")
	ErrNotBlocked     = errors.New("you have not blocked this user")
)

// ActivityCounter reports how many upcoming activities a user owns.
// Implemented by the activity service.
type ActivityCounter interface {
	CountUpcoming(ctx context.Context, ownerID int64, cutoff time.Time, categoryID int64) (int64, error)
}

// FollowCounter reports follower/following totals for a user.
// Implemented by the connections service.
type FollowCounter interface {
	FollowersCount(ctx context.Context, userID int64) (int64, error)
	FollowingsCount(ctx context.Context, userID int64) (int64, error)
}

type Service interface {
	GetUser(ctx context.Context, userID int64) (*User, error)
	ProfileStats(ctx context.Context, userID int64, cutoff time.Time, categoryID int64) (*ProfileStats, error)
	UpdateLocation(ctx context.Context, userID int64, loc *geo.Location) error
	BlockUser(ctx context.Context, ownerID, userID int64) error
	UnblockUser(ctx context.Context, ownerID, userID int64) error
	BlockStatus(ctx context.Context, viewerID, ownerID int64) (bool, error)
}

type service struct {
	repo       Repository
	locations  geo.Store
	activities ActivityCounter
	follows    FollowCounter
}

func NewService(repo Repository, locations geo.Store, activities ActivityCounter, follows FollowCounter) Service {
	return &service{
		repo:       repo,
		locations:  locations,
		activities: activities,
		follows:    follows,
	}
}

func (s *service) GetUser(ctx context.Context, userID int64) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

// ProfileStats issues the three independent counts concurrently
func (s *service) ProfileStats(ctx context.Context, userID int64, cutoff time.Time, categoryID int64) (*ProfileStats, error) {
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	stats := &ProfileStats{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.activities.CountUpcoming(ctx, userID, cutoff, categoryID)
		stats.Activities = n
		return err
	})
	g.Go(func() error {
		n, err := s.follows.FollowersCount(ctx, userID)
		stats.Followers = n
		return err
	})
	g.Go(func() error {
		n, err := s.follows.FollowingsCount(ctx, userID)
		stats.Followings = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// UpdateLocation upserts the user's stored point, which backs the default
// origin for nearby searches.
func (s *service) UpdateLocation(ctx context.Context, userID int64, loc *geo.Location) error {
	loc.ResourceID = userID
	loc.ResourceType = geo.ResourceUser
	if err := loc.Validate(); err != nil {
		return err
	}
	return s.locations.Save(ctx, loc)
}

func (s *service) BlockUser(ctx context.Context, ownerID, userID int64) error {
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return err
	}

	blocked, err := s.repo.BlockStatus(ctx, userID, ownerID)
	if err != nil {
		return err
	}
	if blocked {
		return ErrAlreadyBlocked
	}

	return s.repo.Block(ctx, ownerID, userID)
}

func (s *service) UnblockUser(ctx context.Context, ownerID, userID int64) error {
	blocked, err := s.repo.BlockStatus(ctx, userID, ownerID)
	if err != nil {
		return err
	}
	if !blocked {
		return ErrNotBlocked
	}

	return s.repo.Unblock(ctx, ownerID, userID)
}

func (s *service) BlockStatus(ctx context.Context, viewerID, ownerID int64) (bool, error) {
	return s.repo.BlockStatus(ctx, viewerID, ownerID)
}
