package connections

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	edges map[[2]int64]bool // (user, friend)
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{edges: make(map[[2]int64]bool)}
}

func (f *fakeRepo) Follow(ctx context.Context, userID, friendID int64) error {
	f.edges[[2]int64{userID, friendID}] = true
	return nil
}

func (f *fakeRepo) Unfollow(ctx context.Context, userID, friendID int64) error {
	delete(f.edges, [2]int64{userID, friendID})
	return nil
}

func (f *fakeRepo) IsFollowing(ctx context.Context, userID, friendID int64) (bool, error) {
	return f.edges[[2]int64{userID, friendID}], nil
}

func (f *fakeRepo) FollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	for edge := range f.edges {
		if edge[0] == userID {
			ids = append(ids, edge[1])
		}
	}
	return ids, nil
}

func (f *fakeRepo) Followers(ctx context.Context, userID int64) ([]FollowInfo, error) {
	infos := []FollowInfo{}
	for edge := range f.edges {
		if edge[1] == userID {
			infos = append(infos, FollowInfo{UserID: edge[0], Name: "someone"})
		}
	}
	return infos, nil
}

func (f *fakeRepo) Followings(ctx context.Context, userID int64) ([]FollowInfo, error) {
	infos := []FollowInfo{}
	for edge := range f.edges {
		if edge[0] == userID {
			infos = append(infos, FollowInfo{UserID: edge[1], Name: "someone"})
		}
	}
	return infos, nil
}

func (f *fakeRepo) FollowersCount(ctx context.Context, userID int64) (int64, error) {
	infos, _ := f.Followers(ctx, userID)
	return int64(len(infos)), nil
}

func (f *fakeRepo) FollowingsCount(ctx context.Context, userID int64) (int64, error) {
	infos, _ := f.Followings(ctx, userID)
	return int64(len(infos)), nil
}

type staticPhotos struct{}

func (staticPhotos) URL(photoID *int64, variant string) string { return "http://x/nophoto.png" }

func TestFollow(t *testing.T) {
	ctx := context.Background()

	t.Run("cannot follow yourself", func(t *testing.T) {
		svc := NewService(newFakeRepo(), staticPhotos{})
		err := svc.Follow(ctx, 1, 1)
		require.ErrorIs(t, err, ErrCannotFollowSelf)
	})

	t.Run("double follow is rejected", func(t *testing.T) {
		require := require.New(t)
		svc := NewService(newFakeRepo(), staticPhotos{})

		require.NoError(svc.Follow(ctx, 1, 2))
		require.ErrorIs(svc.Follow(ctx, 1, 2), ErrAlreadyFollowing)
	})

	t.Run("unfollow requires an existing edge", func(t *testing.T) {
		svc := NewService(newFakeRepo(), staticPhotos{})
		require.ErrorIs(t, svc.Unfollow(ctx, 1, 2), ErrNotFollowing)
	})

	t.Run("follow then unfollow", func(t *testing.T) {
		require := require.New(t)
		repo := newFakeRepo()
		svc := NewService(repo, staticPhotos{})

		require.NoError(svc.Follow(ctx, 1, 2))
		require.NoError(svc.Unfollow(ctx, 1, 2))
		require.Empty(repo.edges)
	})
}

func TestFollowLists(t *testing.T) {
	ctx := context.Background()
	require := require.New(t)
	repo := newFakeRepo()
	svc := NewService(repo, staticPhotos{})

	require.NoError(svc.Follow(ctx, 1, 2))
	require.NoError(svc.Follow(ctx, 1, 3))
	require.NoError(svc.Follow(ctx, 4, 1))

	followings, err := svc.Followings(ctx, 1)
	require.NoError(err)
	require.Len(followings, 2)
	for _, info := range followings {
		require.NotEmpty(info.Avatar, "avatar is always derived")
	}

	followers, err := svc.Followers(ctx, 1)
	require.NoError(err)
	require.Len(followers, 1)
	require.Equal(int64(4), followers[0].UserID)

	ids, err := svc.FollowingIDs(ctx, 1)
	require.NoError(err)
	require.ElementsMatch([]int64{2, 3}, ids)

	n, err := svc.FollowersCount(ctx, 1)
	require.NoError(err)
	require.Equal(int64(1), n)
}
