// internal/activity/discovery.go
// Nearby search, per-user listings and the five bucket aggregation

package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/linkupapp/linkup-backend/internal/common/utils"
	"github.com/linkupapp/linkup-backend/internal/geo"
	"github.com/linkupapp/linkup-backend/internal/users"
)

var ErrNoStoredLocation = errors.New("no stored location for user")

var mineBucketNames = []string{BucketCurrent, BucketPending, BucketRejected, BucketFollowed, BucketPast}

func validBucket(name string) bool {
	for _, b := range mineBucketNames {
		if b == name {
			return true
		}
	}
	return false
}

// Nearby runs a geo query first, then filters the hits against the activity
// store. The geo index knows nothing about schedules or categories, so
// temporal and category predicates are applied in a second lookup; geo hits
// with no surviving record are dropped. Ordering and pagination come from the
// geo query alone.
func (s *service) Nearby(ctx context.Context, actorID int64, params NearbyParams) ([]NearbyItem, error) {
	start := time.Now()
	defer func() {
		discoveryDuration.WithLabelValues("nearby").Observe(time.Since(start).Seconds())
	}()

	lat, lon := params.Latitude, params.Longitude
	if actorID != 0 && lat == 0 && lon == 0 {
		loc, err := s.locations.Get(ctx, actorID, geo.ResourceUser)
		if err != nil {
			if errors.Is(err, geo.ErrLocationNotFound) {
				return nil, ErrNoStoredLocation
			}
			return nil, err
		}
		lat, lon = loc.Latitude, loc.Longitude
	}

	radius := params.DistanceKm
	if radius <= 0 && actorID != 0 {
		radius = s.defaultRadiusKm
	}

	cutoff, err := utils.CutoffOrNow(params.Date, params.Time, time.Now())
	if err != nil {
		return nil, err
	}
	page := utils.NormalizePage(params.Page, params.Limit, s.defaultPageSize)

	points, err := s.index.Nearby(ctx, geo.ResourceActivity, lat, lon, radius, page.Limit, page.Page)
	if err != nil {
		return nil, fmt.Errorf("geo query failed: %w", err)
	}
	if len(points) == 0 {
		return []NearbyItem{}, nil
	}

	ids := make([]int64, len(points))
	for i, p := range points {
		ids[i] = p.ID
	}

	summaries, err := s.repo.ActivitiesByIDs(ctx, ids, cutoff, params.CategoryID)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]ActivitySummary, len(summaries))
	for _, sum := range summaries {
		byID[sum.ID] = sum
	}

	items := make([]NearbyItem, 0, len(points))
	for _, p := range points {
		sum, ok := byID[p.ID]
		if !ok {
			continue
		}
		s.enrich(&sum)
		items = append(items, NearbyItem{
			ActivitySummary: sum,
			DistanceKm:      p.Distance,
			Latitude:        p.Latitude,
			Longitude:       p.Longitude,
		})
	}
	return items, nil
}

func (s *service) UserActivities(ctx context.Context, params UserActivitiesParams) (*utils.Page[ActivitySummary], error) {
	cutoff, err := utils.CutoffOrNow(params.Date, params.Time, time.Now())
	if err != nil {
		return nil, err
	}
	page := utils.NormalizePage(params.Page, params.Limit, s.defaultPageSize)

	var (
		items []ActivitySummary
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.UserActivities(gctx, params.UserID, cutoff, params.CategoryID, page.Limit, page.Offset())
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.UserActivitiesCount(gctx, params.UserID, cutoff, params.CategoryID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range items {
		s.enrich(&items[i])
	}
	result := utils.NewPage(items, total, page)
	return &result, nil
}

// Mine classifies activities into five buckets relative to the caller and the
// cutoff. Buckets are independent reads and run concurrently.
func (s *service) Mine(ctx context.Context, actorID int64, params MineParams) (*MineBuckets, error) {
	start := time.Now()
	defer func() {
		discoveryDuration.WithLabelValues("mine").Observe(time.Since(start).Seconds())
	}()

	if params.Type != "" && !validBucket(params.Type) {
		return nil, fmt.Errorf("unknown bucket %q", params.Type)
	}

	cutoff, err := utils.CutoffOrNow(params.Date, params.Time, time.Now())
	if err != nil {
		return nil, err
	}

	wanted := mineBucketNames
	if params.Type != "" {
		wanted = []string{params.Type}
	}

	var followedIDs []int64
	for _, b := range wanted {
		if b == BucketFollowed {
			followedIDs, err = s.follows.FollowingIDs(ctx, actorID)
			if err != nil {
				return nil, err
			}
			break
		}
	}

	result := &MineBuckets{}
	slots := map[string]*BucketValue{
		BucketCurrent:  &result.Current,
		BucketPending:  &result.Pending,
		BucketRejected: &result.Rejected,
		BucketFollowed: &result.Followed,
		BucketPast:     &result.Past,
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, bucket := range wanted {
		bucket := bucket
		slot := slots[bucket]
		g.Go(func() error {
			if params.ShowCount {
				count, err := s.repo.MineBucketCount(gctx, bucket, actorID, cutoff, followedIDs)
				if err != nil {
					return err
				}
				slot.Count = count
				return nil
			}
			items, err := s.repo.MineBucket(gctx, bucket, actorID, cutoff, followedIDs)
			if err != nil {
				return err
			}
			for i := range items {
				s.enrich(&items[i])
			}
			slot.Items = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// Bucket returns the value for one named bucket.
func (m *MineBuckets) Bucket(name string) (BucketValue, bool) {
	switch name {
	case BucketCurrent:
		return m.Current, true
	case BucketPending:
		return m.Pending, true
	case BucketRejected:
		return m.Rejected, true
	case BucketFollowed:
		return m.Followed, true
	case BucketPast:
		return m.Past, true
	}
	return BucketValue{}, false
}

// Detail merges the activity with its location, category and owner profile.
// The request_status code is computed from the viewer's perspective: the
// viewer's request status when one exists, 3 when none does, 4 when the owner
// has blocked the viewer. Owners see the number of requests received instead.
func (s *service) Detail(ctx context.Context, actorID, activityID int64) (*DetailView, error) {
	a, err := s.repo.GetActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	view := &DetailView{
		Activity:      *a,
		CategoryImage: s.categories.URL(a.CategoryID),
		IsOwner:       actorID == a.OwnerID,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loc, err := s.locations.Get(gctx, activityID, geo.ResourceActivity)
		if err != nil {
			if errors.Is(err, geo.ErrLocationNotFound) {
				return nil
			}
			return err
		}
		view.Location = loc
		return nil
	})
	g.Go(func() error {
		if a.CategoryID == 0 {
			return nil
		}
		cat, err := s.catalog.Get(gctx, a.CategoryID)
		if err != nil {
			return nil
		}
		view.CategoryName = cat.Title
		return nil
	})
	g.Go(func() error {
		owner, err := s.users.GetByID(gctx, a.OwnerID)
		if err != nil {
			return err
		}
		view.OwnerName = owner.DisplayName()
		view.OwnerAvatar = s.photos.URL(owner.PhotoID, users.VariantProfile)
		return nil
	})
	g.Go(func() error {
		status, err := s.viewerStatus(gctx, actorID, a.OwnerID, activityID)
		if err != nil {
			return err
		}
		view.RequestStatus = status
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) viewerStatus(ctx context.Context, actorID, ownerID, activityID int64) (int64, error) {
	if actorID == ownerID {
		return s.repo.RequestCount(ctx, activityID)
	}
	if actorID != 0 {
		blocked, err := s.users.BlockStatus(ctx, actorID, ownerID)
		if err != nil {
			return 0, err
		}
		if blocked {
			return RequestStatusBlocked, nil
		}
	}
	req, err := s.repo.GetRequest(ctx, activityID, actorID)
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			return RequestStatusNone, nil
		}
		return 0, err
	}
	return int64(req.Status), nil
}

func (s *service) enrich(sum *ActivitySummary) {
	sum.OwnerAvatar = s.photos.URL(sum.OwnerPhotoID, users.VariantProfile)
	sum.CategoryImage = s.categories.URL(sum.CategoryID)
}
