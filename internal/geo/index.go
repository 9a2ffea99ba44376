// internal/geo/index.go
// Nearest-neighbor index over resource locations, backed by Redis geo sets.
// The index answers proximity queries only; temporal and category predicates
// are applied afterwards against the primary store.

package geo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
)

// Resource kinds tracked by the index
const (
	ResourceUser     = "user"
	ResourceActivity = "activity"
)

// maxRadiusKm is slightly more than half the Earth's circumference, so a
// query with no radius bound effectively matches every indexed point.
const maxRadiusKm = 20038

// Point is a distance-annotated index hit, ordered nearest-first
type Point struct {
	ID        int64   `json:"id"`
	Distance  float64 `json:"distance"` // km from the query origin
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Index stores one point per (kind, id) pair
type Index struct {
	client *redis.Client
}

// NewIndex creates a geo index on the given Redis client
func NewIndex(client *redis.Client) *Index {
	return &Index{client: client}
}

func key(kind string) string {
	return "geo:" + kind
}

// Add upserts the point for (kind, id)
func (idx *Index) Add(ctx context.Context, kind string, id int64, latitude, longitude float64) error {
	err := idx.client.GeoAdd(ctx, key(kind), &redis.GeoLocation{
		Name:      strconv.FormatInt(id, 10),
		Latitude:  latitude,
		Longitude: longitude,
	}).Err()
	if err != nil {
		return fmt.Errorf("geo index add: %w", err)
	}
	return nil
}

// Remove deletes the point for (kind, id); removing an absent point is a no-op
func (idx *Index) Remove(ctx context.Context, kind string, id int64) error {
	err := idx.client.ZRem(ctx, key(kind), strconv.FormatInt(id, 10)).Err()
	if err != nil {
		return fmt.Errorf("geo index remove: %w", err)
	}
	return nil
}

// Nearby returns up to limit points of the given kind within radiusKm of the
// origin, ordered by ascending distance and skip-paginated by page (1-based).
// A radius <= 0 searches unbounded.
func (idx *Index) Nearby(ctx context.Context, kind string, latitude, longitude, radiusKm float64, limit, page int) ([]Point, error) {
	if radiusKm <= 0 {
		radiusKm = maxRadiusKm
	}
	if limit < 1 {
		limit = 10
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	// GEORADIUS has a count but no offset, so fetch the window end and slice.
	locs, err := idx.client.GeoRadius(ctx, key(kind), longitude, latitude, &redis.GeoRadiusQuery{
		Radius:    radiusKm,
		Unit:      "km",
		WithCoord: true,
		WithDist:  true,
		Count:     offset + limit,
		Sort:      "ASC",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("geo index query: %w", err)
	}

	if offset >= len(locs) {
		return []Point{}, nil
	}
	locs = locs[offset:]

	points := make([]Point, 0, len(locs))
	for _, loc := range locs {
		id, err := strconv.ParseInt(loc.Name, 10, 64)
		if err != nil {
			continue
		}
		points = append(points, Point{
			ID:        id,
			Distance:  loc.Dist,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		})
	}

	return points, nil
}
