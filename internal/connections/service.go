// internal/connections/service.go

package connections

import (
	"context"
	"errors"
)

var (
	ErrCannotFollowSelf = errors.New("you cannot follow yourself")
	ErrAlreadyFollowing = errors.New("you already follow this user")
	ErrNotFollowing     = errors.New("you do not follow this user")
)

// PhotoResolver turns attachment ids into avatar URLs
type PhotoResolver interface {
	URL(photoID *int64, variant string) string
}

type Service interface {
	Follow(ctx context.Context, userID, friendID int64) error
	Unfollow(ctx context.Context, userID, friendID int64) error

	Followers(ctx context.Context, userID int64) ([]FollowInfo, error)
	Followings(ctx context.Context, userID int64) ([]FollowInfo, error)

	// Read interface consumed by discovery and profile stats
	FollowingIDs(ctx context.Context, userID int64) ([]int64, error)
	FollowersCount(ctx context.Context, userID int64) (int64, error)
	FollowingsCount(ctx context.Context, userID int64) (int64, error)
}

type service struct {
	repo   Repository
	photos PhotoResolver
}

func NewService(repo Repository, photos PhotoResolver) Service {
	return &service{repo: repo, photos: photos}
}

func (s *service) Follow(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return ErrCannotFollowSelf
	}

	following, err := s.repo.IsFollowing(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if following {
		return ErrAlreadyFollowing
	}

	return s.repo.Follow(ctx, userID, friendID)
}

func (s *service) Unfollow(ctx context.Context, userID, friendID int64) error {
	following, err := s.repo.IsFollowing(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if !following {
		return ErrNotFollowing
	}

	return s.repo.Unfollow(ctx, userID, friendID)
}

func (s *service) Followers(ctx context.Context, userID int64) ([]FollowInfo, error) {
	followers, err := s.repo.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.attachAvatars(followers)
	return followers, nil
}

func (s *service) Followings(ctx context.Context, userID int64) ([]FollowInfo, error) {
	followings, err := s.repo.Followings(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.attachAvatars(followings)
	return followings, nil
}

func (s *service) attachAvatars(infos []FollowInfo) {
	for i := range infos {
		infos[i].Avatar = s.photos.URL(infos[i].PhotoID, "icon")
	}
}

func (s *service) FollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.repo.FollowingIDs(ctx, userID)
}

func (s *service) FollowersCount(ctx context.Context, userID int64) (int64, error) {
	return s.repo.FollowersCount(ctx, userID)
}

func (s *service) FollowingsCount(ctx context.Context, userID int64) (int64, error) {
	return s.repo.FollowingsCount(ctx, userID)
}
