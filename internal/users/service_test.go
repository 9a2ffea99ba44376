package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/linkupapp/linkup-backend/internal/geo"
)

type fakeRepo struct {
	users   map[int64]*User
	blocked map[[2]int64]bool // (owner, viewer)
}

func newFakeRepo(ids ...int64) *fakeRepo {
	f := &fakeRepo{users: make(map[int64]*User), blocked: make(map[[2]int64]bool)}
	for _, id := range ids {
		f.users[id] = &User{ID: id, FirstName: "test"}
	}
	return f
}

func (f *fakeRepo) GetByID(ctx context.Context, userID int64) (*User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeRepo) Block(ctx context.Context, ownerID, userID int64) error {
	f.blocked[[2]int64{ownerID, userID}] = true
	return nil
}

func (f *fakeRepo) Unblock(ctx context.Context, ownerID, userID int64) error {
	delete(f.blocked, [2]int64{ownerID, userID})
	return nil
}

func (f *fakeRepo) BlockStatus(ctx context.Context, viewerID, ownerID int64) (bool, error) {
	return f.blocked[[2]int64{ownerID, viewerID}], nil
}

type fakeLocations struct {
	saved map[int64]*geo.Location
}

func (f *fakeLocations) Save(ctx context.Context, loc *geo.Location) error {
	f.saved[loc.ResourceID] = loc
	return nil
}

func (f *fakeLocations) Get(ctx context.Context, resourceID int64, resourceType string) (*geo.Location, error) {
	loc, ok := f.saved[resourceID]
	if !ok {
		return nil, geo.ErrLocationNotFound
	}
	return loc, nil
}

func (f *fakeLocations) Delete(ctx context.Context, resourceID int64, resourceType string) error {
	delete(f.saved, resourceID)
	return nil
}

type staticCounts struct {
	activities, followers, followings int64
}

func (s staticCounts) CountUpcoming(ctx context.Context, ownerID int64, cutoff time.Time, categoryID int64) (int64, error) {
	return s.activities, nil
}

func (s staticCounts) FollowersCount(ctx context.Context, userID int64) (int64, error) {
	return s.followers, nil
}

func (s staticCounts) FollowingsCount(ctx context.Context, userID int64) (int64, error) {
	return s.followings, nil
}

func newTestService(repo *fakeRepo, locations *fakeLocations) Service {
	counts := staticCounts{activities: 3, followers: 7, followings: 2}
	return NewService(repo, locations, counts, counts)
}

func TestProfileStats(t *testing.T) {
	require := require.New(t)
	svc := newTestService(newFakeRepo(1), nil)

	stats, err := svc.ProfileStats(context.Background(), 1, time.Now(), 0)
	require.NoError(err)
	require.Equal(int64(3), stats.Activities)
	require.Equal(int64(7), stats.Followers)
	require.Equal(int64(2), stats.Followings)

	_, err = svc.ProfileStats(context.Background(), 99, time.Now(), 0)
	require.ErrorIs(err, ErrUserNotFound)
}

func TestBlocking(t *testing.T) {
	ctx := context.Background()

	t.Run("block then status then unblock", func(t *testing.T) {
		require := require.New(t)
		svc := newTestService(newFakeRepo(1, 2), nil)

		require.NoError(svc.BlockUser(ctx, 1, 2))

		blocked, err := svc.BlockStatus(ctx, 2, 1)
		require.NoError(err)
		require.True(blocked, "viewer 2 is blocked by owner 1")

		blocked, err = svc.BlockStatus(ctx, 1, 2)
		require.NoError(err)
		require.False(blocked, "blocking is directional")

		require.NoError(svc.UnblockUser(ctx, 1, 2))
		blocked, err = svc.BlockStatus(ctx, 2, 1)
		require.NoError(err)
		require.False(blocked)
	})

	t.Run("double block is rejected", func(t *testing.T) {
		require := require.New(t)
		svc := newTestService(newFakeRepo(1, 2), nil)

		require.NoError(svc.BlockUser(ctx, 1, 2))
		require.ErrorIs(svc.BlockUser(ctx, 1, 2), ErrAlreadyBlocked)
	})

	t.Run("unblock without a block", func(t *testing.T) {
		svc := newTestService(newFakeRepo(1, 2), nil)
		require.ErrorIs(t, svc.UnblockUser(ctx, 1, 2), ErrNotBlocked)
	})

	t.Run("blocking a missing user", func(t *testing.T) {
		svc := newTestService(newFakeRepo(1), nil)
		require.ErrorIs(t, svc.BlockUser(ctx, 1, 99), ErrUserNotFound)
	})
}

func TestUpdateLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps the resource and saves", func(t *testing.T) {
		require := require.New(t)
		locations := &fakeLocations{saved: make(map[int64]*geo.Location)}
		svc := newTestService(newFakeRepo(1), locations)

		err := svc.UpdateLocation(ctx, 1, &geo.Location{Latitude: 51.5, Longitude: -0.12})
		require.NoError(err)

		loc := locations.saved[1]
		require.NotNil(loc)
		require.Equal(geo.ResourceUser, loc.ResourceType)
	})

	t.Run("rejects the null island point", func(t *testing.T) {
		locations := &fakeLocations{saved: make(map[int64]*geo.Location)}
		svc := newTestService(newFakeRepo(1), locations)

		err := svc.UpdateLocation(ctx, 1, &geo.Location{Latitude: 0, Longitude: 0})
		require.ErrorIs(t, err, geo.ErrInvalidLocation)
	})
}
