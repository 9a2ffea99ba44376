package activity

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/linkupapp/linkup-backend/internal/category"
	"github.com/linkupapp/linkup-backend/internal/geo"
	"github.com/linkupapp/linkup-backend/internal/users"
)

// fakeRepo is an in-memory Repository with the same semantics as the
// Postgres implementation, including the unique-request guarantee.
type fakeRepo struct {
	mu         sync.Mutex
	nextID     int64
	activities map[int64]*Activity
	requests   map[[2]int64]*JoinRequest // (activity_id, user_id)
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		activities: make(map[int64]*Activity),
		requests:   make(map[[2]int64]*JoinRequest),
	}
}

func (f *fakeRepo) CreateActivity(ctx context.Context, a *Activity) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	clone := *a
	clone.ID = f.nextID
	f.activities[clone.ID] = &clone
	return clone.ID, nil
}

func (f *fakeRepo) UpdateActivity(ctx context.Context, a *Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.activities[a.ID]; !ok {
		return ErrActivityNotFound
	}
	clone := *a
	f.activities[a.ID] = &clone
	return nil
}

func (f *fakeRepo) DeleteActivity(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.activities[id]; !ok {
		return ErrActivityNotFound
	}
	delete(f.activities, id)
	return nil
}

func (f *fakeRepo) GetActivity(ctx context.Context, id int64) (*Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.activities[id]
	if !ok {
		return nil, ErrActivityNotFound
	}
	clone := *a
	return &clone, nil
}

func (f *fakeRepo) CountUpcoming(ctx context.Context, ownerID int64, cutoff time.Time, categoryID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.activities {
		if a.OwnerID == ownerID && !a.ScheduledAt.Before(cutoff) && (categoryID == 0 || a.CategoryID == categoryID) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CreateRequest(ctx context.Context, req *JoinRequest) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{req.ActivityID, req.UserID}
	if _, ok := f.requests[key]; ok {
		return 0, ErrDuplicateRequest
	}
	f.nextID++
	clone := *req
	clone.ID = f.nextID
	f.requests[key] = &clone
	return clone.ID, nil
}

func (f *fakeRepo) GetRequest(ctx context.Context, activityID, userID int64) (*JoinRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[[2]int64{activityID, userID}]
	if !ok {
		return nil, ErrRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (f *fakeRepo) UpdateRequestStatus(ctx context.Context, activityID, userID int64, status int, ownerMessage string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[[2]int64{activityID, userID}]
	if !ok {
		return ErrRequestNotFound
	}
	req.Status = status
	if ownerMessage == "" {
		req.OwnerMessage = nil
	} else {
		req.OwnerMessage = &ownerMessage
	}
	return nil
}

func (f *fakeRepo) DeleteRequest(ctx context.Context, activityID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{activityID, userID}
	if _, ok := f.requests[key]; !ok {
		return ErrRequestNotFound
	}
	delete(f.requests, key)
	return nil
}

func (f *fakeRepo) DeleteRequestsForActivity(ctx context.Context, activityID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key := range f.requests {
		if key[0] == activityID {
			delete(f.requests, key)
		}
	}
	return nil
}

func (f *fakeRepo) RequestsForActivity(ctx context.Context, activityID int64) ([]RequestView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.activities[activityID]
	if !ok {
		return nil, ErrActivityNotFound
	}

	views := []RequestView{}
	for _, req := range f.requests {
		if req.ActivityID != activityID {
			continue
		}
		views = append(views, RequestView{
			ID:            req.ID,
			ActivityID:    req.ActivityID,
			UserID:        req.UserID,
			Status:        req.Status,
			UserMessage:   req.UserMessage,
			OwnerMessage:  req.OwnerMessage,
			UserName:      fmt.Sprintf("user-%d", req.UserID),
			ActivityTitle: a.Title,
			ActivityOwner: a.OwnerID,
			ScheduledAt:   a.ScheduledAt,
			CategoryID:    a.CategoryID,
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views, nil
}

func (f *fakeRepo) RequestCount(ctx context.Context, activityID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for key := range f.requests {
		if key[0] == activityID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) summary(a *Activity, status *int) ActivitySummary {
	return ActivitySummary{
		ID:            a.ID,
		OwnerID:       a.OwnerID,
		CategoryID:    a.CategoryID,
		Date:          a.Date,
		Time:          a.Time,
		ScheduledAt:   a.ScheduledAt,
		Title:         a.Title,
		Description:   a.Description,
		OwnerName:     fmt.Sprintf("user-%d", a.OwnerID),
		RequestStatus: status,
	}
}

func (f *fakeRepo) ActivitiesByIDs(ctx context.Context, ids []int64, cutoff time.Time, categoryID int64) ([]ActivitySummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := []ActivitySummary{}
	for _, id := range ids {
		a, ok := f.activities[id]
		if !ok || a.ScheduledAt.Before(cutoff) {
			continue
		}
		if categoryID != 0 && a.CategoryID != categoryID {
			continue
		}
		items = append(items, f.summary(a, nil))
	}
	return items, nil
}

func (f *fakeRepo) UserActivities(ctx context.Context, ownerID int64, cutoff time.Time, categoryID int64, limit, offset int) ([]ActivitySummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := []ActivitySummary{}
	for _, a := range f.activities {
		if a.OwnerID != ownerID || a.ScheduledAt.Before(cutoff) {
			continue
		}
		if categoryID != 0 && a.CategoryID != categoryID {
			continue
		}
		items = append(items, f.summary(a, nil))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ScheduledAt.Before(items[j].ScheduledAt) })
	if offset >= len(items) {
		return []ActivitySummary{}, nil
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (f *fakeRepo) UserActivitiesCount(ctx context.Context, ownerID int64, cutoff time.Time, categoryID int64) (int64, error) {
	return f.CountUpcoming(ctx, ownerID, cutoff, categoryID)
}

func (f *fakeRepo) MineBucket(ctx context.Context, bucket string, actorID int64, cutoff time.Time, followedIDs []int64) ([]ActivitySummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	followed := make(map[int64]bool, len(followedIDs))
	for _, id := range followedIDs {
		followed[id] = true
	}

	items := []ActivitySummary{}
	for _, a := range f.activities {
		req := f.requests[[2]int64{a.ID, actorID}]
		upcoming := !a.ScheduledAt.Before(cutoff)

		switch bucket {
		case BucketCurrent:
			if upcoming && (a.OwnerID == actorID || (req != nil && req.Status == StatusAccepted)) {
				items = append(items, f.summary(a, nil))
			}
		case BucketPast:
			if !upcoming && a.OwnerID == actorID {
				items = append(items, f.summary(a, nil))
			}
		case BucketPending:
			if upcoming && req != nil && req.Status == StatusPending {
				status := req.Status
				items = append(items, f.summary(a, &status))
			}
		case BucketRejected:
			if upcoming && req != nil && req.Status == StatusRejected {
				status := req.Status
				items = append(items, f.summary(a, &status))
			}
		case BucketFollowed:
			if upcoming && a.OwnerID != actorID && followed[a.OwnerID] {
				items = append(items, f.summary(a, nil))
			}
		default:
			return nil, fmt.Errorf("unknown bucket %q", bucket)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ScheduledAt.Before(items[j].ScheduledAt) })
	return items, nil
}

func (f *fakeRepo) MineBucketCount(ctx context.Context, bucket string, actorID int64, cutoff time.Time, followedIDs []int64) (int64, error) {
	items, err := f.MineBucket(ctx, bucket, actorID, cutoff, followedIDs)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

// fakeLocations is an in-memory geo.Store
type fakeLocations struct {
	mu sync.Mutex
	m  map[string]*geo.Location
}

func newFakeLocations() *fakeLocations {
	return &fakeLocations{m: make(map[string]*geo.Location)}
}

func locKey(resourceID int64, resourceType string) string {
	return fmt.Sprintf("%s:%d", resourceType, resourceID)
}

func (f *fakeLocations) Save(ctx context.Context, loc *geo.Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *loc
	f.m[locKey(loc.ResourceID, loc.ResourceType)] = &clone
	return nil
}

func (f *fakeLocations) Get(ctx context.Context, resourceID int64, resourceType string) (*geo.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	loc, ok := f.m[locKey(resourceID, resourceType)]
	if !ok {
		return nil, geo.ErrLocationNotFound
	}
	clone := *loc
	return &clone, nil
}

func (f *fakeLocations) Delete(ctx context.Context, resourceID int64, resourceType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.m, locKey(resourceID, resourceType))
	return nil
}

// fakeUsers is an in-memory users.Repository
type fakeUsers struct {
	mu      sync.Mutex
	users   map[int64]*users.User
	blocked map[[2]int64]bool // (owner, viewer)
}

func newFakeUsers(ids ...int64) *fakeUsers {
	f := &fakeUsers{
		users:   make(map[int64]*users.User),
		blocked: make(map[[2]int64]bool),
	}
	for _, id := range ids {
		f.users[id] = &users.User{ID: id, FirstName: fmt.Sprintf("user-%d", id)}
	}
	return f
}

func (f *fakeUsers) GetByID(ctx context.Context, userID int64) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) Block(ctx context.Context, ownerID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocked[[2]int64{ownerID, userID}] = true
	return nil
}

func (f *fakeUsers) Unblock(ctx context.Context, ownerID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blocked, [2]int64{ownerID, userID})
	return nil
}

func (f *fakeUsers) BlockStatus(ctx context.Context, viewerID, ownerID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blocked[[2]int64{ownerID, viewerID}], nil
}

// fakeCatalog is an in-memory category.Repository
type fakeCatalog struct {
	cats map[int64]category.Category
}

func (f *fakeCatalog) Get(ctx context.Context, categoryID int64) (*category.Category, error) {
	cat, ok := f.cats[categoryID]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	return &cat, nil
}

func (f *fakeCatalog) List(ctx context.Context) ([]category.Category, error) {
	out := []category.Category{}
	for _, cat := range f.cats {
		out = append(out, cat)
	}
	return out, nil
}

// fakeFollows is a static FollowGraph
type fakeFollows struct {
	following map[int64][]int64
}

func (f *fakeFollows) FollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	return f.following[userID], nil
}

type testEnv struct {
	repo      *fakeRepo
	locations *fakeLocations
	users     *fakeUsers
	follows   *fakeFollows
	service   Service
}

func newTestEnv(t *testing.T, index *geo.Index) *testEnv {
	t.Helper()

	repo := newFakeRepo()
	locations := newFakeLocations()
	userRepo := newFakeUsers(1, 2, 3, 4, 5)
	follows := &fakeFollows{following: make(map[int64][]int64)}
	catalog := &fakeCatalog{cats: map[int64]category.Category{
		5: {CategoryID: 5, Title: "Sports"},
		7: {CategoryID: 7, Title: "Music"},
	}}

	svc := NewService(
		repo,
		locations,
		index,
		userRepo,
		catalog,
		follows,
		users.NewPhotoResolver("http://localhost:8080"),
		category.NewImageResolver("http://localhost:8080"),
		1000,
		10,
	)
	return &testEnv{
		repo:      repo,
		locations: locations,
		users:     userRepo,
		follows:   follows,
		service:   svc,
	}
}

func (e *testEnv) mustCreate(t *testing.T, ownerID int64, date, clock string, categoryID int64) *Activity {
	t.Helper()
	a, err := e.service.CreateActivity(context.Background(), ownerID, &CreateActivityDTO{
		CategoryID:  categoryID,
		Date:        date,
		Time:        clock,
		Title:       "Pickup football",
		Description: "Casual game",
		Capacity:    "10",
		StartAge:    "18",
		EndAge:      "40",
		Skill:       "any",
		Gender:      "any",
		Location:    &LocationDTO{Latitude: 51.5074, Longitude: -0.1278, Address: "Hyde Park"},
	})
	require.NoError(t, err)
	return a
}

func TestJoin(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cannot join own activity", func(t *testing.T) {
		require := require.New(t)
		env := newTestEnv(t, nil)
		a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)

		err := env.service.Join(ctx, 1, a.ID, "let me in")
		require.ErrorIs(err, ErrOwnerCannotJoin)
		require.Empty(env.repo.requests)
	})

	t.Run("join creates a pending request", func(t *testing.T) {
		require := require.New(t)
		env := newTestEnv(t, nil)
		a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)

		require.NoError(env.service.Join(ctx, 2, a.ID, "count me in"))

		req, err := env.repo.GetRequest(ctx, a.ID, 2)
		require.NoError(err)
		require.Equal(StatusPending, req.Status)
		require.Equal(int64(1), req.OwnerID)
		require.NotNil(req.UserMessage)
		require.Equal("count me in", *req.UserMessage)
	})

	t.Run("duplicate join is rejected and leaves one request", func(t *testing.T) {
		require := require.New(t)
		env := newTestEnv(t, nil)
		a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)

		require.NoError(env.service.Join(ctx, 2, a.ID, ""))
		err := env.service.Join(ctx, 2, a.ID, "")
		require.ErrorIs(err, ErrAlreadyRequested)
		require.Len(env.repo.requests, 1)
	})

	t.Run("missing activity", func(t *testing.T) {
		env := newTestEnv(t, nil)
		err := env.service.Join(ctx, 2, 999, "")
		require.ErrorIs(t, err, ErrActivityNotFound)
	})
}

func TestAcceptReject(t *testing.T) {
	ctx := context.Background()

	t.Run("only the owner may accept", func(t *testing.T) {
		require := require.New(t)
		env := newTestEnv(t, nil)
		a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)
		require.NoError(env.service.Join(ctx, 2, a.ID, ""))

		err := env.service.Accept(ctx, 3, a.ID, 2, "welcome")
		require.ErrorIs(err, ErrNotOwner)

		req, err := env.repo.GetRequest(ctx, a.ID, 2)
		require.NoError(err)
		require.Equal(StatusPending, req.Status, "unauthorized accept must not mutate")
	})

	t.Run("only the owner may reject", func(t *testing.T) {
		require := require.New(t)
		env := newTestEnv(t, nil)
		a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)
		require.NoError(env.service.Join(ctx, 2, a.ID, ""))

		err := env.service.Reject(ctx, 2, a.ID, 2, "")
		require.ErrorIs(err, ErrNotOwner)

		req, err := env.repo.GetRequest(ctx, a.ID, 2)
		require.NoError(err)
		require.Equal(StatusPending, req.Status, "unauthorized reject must not mutate")
	})

	t.Run("accept then reject then accept keeps one record with the last status", func(t *testing.T) {
		require := require.New(t)
		env := newTestEnv(t, nil)
		a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)
		require.NoError(env.service.Join(ctx, 2, a.ID, ""))

		require.NoError(env.service.Accept(ctx, 1, a.ID, 2, "in"))
		require.NoError(env.service.Reject(ctx, 1, a.ID, 2, "out"))
		require.NoError(env.service.Accept(ctx, 1, a.ID, 2, "in again"))

		require.Len(env.repo.requests, 1)
		req, err := env.repo.GetRequest(ctx, a.ID, 2)
		require.NoError(err)
		require.Equal(StatusAccepted, req.Status)
		require.Equal("in again", *req.OwnerMessage)
	})

	t.Run("responding to a missing request", func(t *testing.T) {
		env := newTestEnv(t, nil)
		a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)

		err := env.service.Accept(ctx, 1, a.ID, 2, "")
		require.ErrorIs(t, err, ErrRequestNotFound)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("participant cancel deletes the record", func(t *testing.T) {
		require := require.New(t)
		env := newTestEnv(t, nil)
		a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)
		require.NoError(env.service.Join(ctx, 2, a.ID, ""))

		require.NoError(env.service.Cancel(ctx, 2, a.ID, 0, ""))

		_, err := env.repo.GetRequest(ctx, a.ID, 2)
		require.ErrorIs(err, ErrRequestNotFound)
		require.Empty(env.repo.requests)
	})

	t.Run("owner cancel resets to pending and keeps the record", func(t *testing.T) {
		require := require.New(t)
		env := newTestEnv(t, nil)
		a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)
		require.NoError(env.service.Join(ctx, 2, a.ID, ""))
		require.NoError(env.service.Accept(ctx, 1, a.ID, 2, "in"))

		require.NoError(env.service.Cancel(ctx, 1, a.ID, 2, "changed my mind"))

		require.Len(env.repo.requests, 1)
		req, err := env.repo.GetRequest(ctx, a.ID, 2)
		require.NoError(err)
		require.Equal(StatusPending, req.Status)
	})

	t.Run("owner cancel requires a user id", func(t *testing.T) {
		env := newTestEnv(t, nil)
		a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)

		err := env.service.Cancel(ctx, 1, a.ID, 0, "")
		require.ErrorIs(t, err, ErrUserRequired)
	})

	t.Run("participant cancel without a request", func(t *testing.T) {
		env := newTestEnv(t, nil)
		a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)

		err := env.service.Cancel(ctx, 2, a.ID, 0, "")
		require.ErrorIs(t, err, ErrRequestNotFound)
	})
}

func TestDeleteRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes regardless of status", func(t *testing.T) {
		require := require.New(t)
		env := newTestEnv(t, nil)
		a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)
		require.NoError(env.service.Join(ctx, 2, a.ID, ""))
		require.NoError(env.service.Accept(ctx, 1, a.ID, 2, ""))

		require.NoError(env.service.DeleteRequest(ctx, 1, a.ID, 2))
		require.Empty(env.repo.requests)
	})

	t.Run("non-owner may not delete", func(t *testing.T) {
		require := require.New(t)
		env := newTestEnv(t, nil)
		a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)
		require.NoError(env.service.Join(ctx, 2, a.ID, ""))

		err := env.service.DeleteRequest(ctx, 2, a.ID, 2)
		require.ErrorIs(err, ErrNotOwner)
		require.Len(env.repo.requests, 1)
	})
}

func TestRequests(t *testing.T) {
	ctx := context.Background()
	require := require.New(t)
	env := newTestEnv(t, nil)
	a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)

	require.NoError(env.service.Join(ctx, 2, a.ID, "hi"))
	require.NoError(env.service.Join(ctx, 3, a.ID, ""))
	require.NoError(env.service.Join(ctx, 4, a.ID, ""))
	require.NoError(env.service.Accept(ctx, 1, a.ID, 4, "in"))

	buckets, err := env.service.Requests(ctx, a.ID)
	require.NoError(err)
	require.Len(buckets.Pending, 2)
	require.Len(buckets.Accepted, 1)
	require.Len(buckets.Rejected, 0)

	for _, v := range buckets.Pending {
		require.NotEmpty(v.UserName)
		require.NotEmpty(v.Avatar)
		require.Equal(a.Title, v.ActivityTitle)
	}
	require.Equal(int64(4), buckets.Accepted[0].UserID)
}

func TestActivityLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("create composes the scheduled instant and stores the location", func(t *testing.T) {
		require := require.New(t)
		env := newTestEnv(t, nil)
		a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)

		require.Equal(time.Date(2030, 1, 10, 18, 0, 0, 0, time.UTC), a.ScheduledAt)

		loc, err := env.locations.Get(ctx, a.ID, geo.ResourceActivity)
		require.NoError(err)
		require.Equal("Hyde Park", loc.Address)
	})

	t.Run("edit is owner only", func(t *testing.T) {
		require := require.New(t)
		env := newTestEnv(t, nil)
		a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)

		_, err := env.service.EditActivity(ctx, 2, &EditActivityDTO{
			ActivityID: a.ID,
			CreateActivityDTO: CreateActivityDTO{
				CategoryID: 5, Date: "2030-01-11", Time: "19:00:00",
				Title: "x", Description: "x", Capacity: "5",
				StartAge: "18", EndAge: "40", Skill: "any", Gender: "any",
			},
		})
		require.ErrorIs(err, ErrNotOwner)
	})

	t.Run("edit recomposes the scheduled instant", func(t *testing.T) {
		require := require.New(t)
		env := newTestEnv(t, nil)
		a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)

		updated, err := env.service.EditActivity(ctx, 1, &EditActivityDTO{
			ActivityID: a.ID,
			CreateActivityDTO: CreateActivityDTO{
				CategoryID: 7, Date: "2030-02-01", Time: "09:30:00",
				Title: "Morning run", Description: "5k", Capacity: "8",
				StartAge: "18", EndAge: "60", Skill: "any", Gender: "any",
			},
		})
		require.NoError(err)
		require.Equal(time.Date(2030, 2, 1, 9, 30, 0, 0, time.UTC), updated.ScheduledAt)
		require.Equal(int64(7), updated.CategoryID)
	})

	t.Run("delete cascades to requests and location", func(t *testing.T) {
		require := require.New(t)
		env := newTestEnv(t, nil)
		a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)
		require.NoError(env.service.Join(ctx, 2, a.ID, ""))

		require.NoError(env.service.DeleteActivity(ctx, 1, a.ID))

		_, err := env.repo.GetActivity(ctx, a.ID)
		require.ErrorIs(err, ErrActivityNotFound)
		require.Empty(env.repo.requests)
		_, err = env.locations.Get(ctx, a.ID, geo.ResourceActivity)
		require.ErrorIs(err, geo.ErrLocationNotFound)
	})

	t.Run("delete is owner only", func(t *testing.T) {
		env := newTestEnv(t, nil)
		a := env.mustCreate(t, 1, "2030-01-10", "18:00:00", 5)

		err := env.service.DeleteActivity(ctx, 2, a.ID)
		require.ErrorIs(t, err, ErrNotOwner)
	})
}
