// internal/geo/store.go
// Location persistence. One location per (resource_id, resource_type) pair;
// every write is mirrored into the Redis geo index.

package geo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrInvalidLocation  = errors.New("not a valid location")
)

// Location is a point plus address detail for a user or an activity
type Location struct {
	ID               int64   `json:"location_id" db:"id"`
	ResourceID       int64   `json:"resource_id" db:"resource_id"`
	ResourceType     string  `json:"resource_type" db:"resource_type"`
	Latitude         float64 `json:"latitude" db:"latitude"`
	Longitude        float64 `json:"longitude" db:"longitude"`
	Name             string  `json:"location" db:"name"`
	FormattedAddress string  `json:"formatted_address" db:"formatted_address"`
	Country          string  `json:"country" db:"country"`
	State            string  `json:"state" db:"state"`
	City             string  `json:"city" db:"city"`
	Zipcode          string  `json:"zipcode" db:"zipcode"`
	Address          string  `json:"address" db:"address"`
}

// Validate checks the minimum payload for a usable location
func (l *Location) Validate() error {
	if l == nil || (l.Latitude == 0 && l.Longitude == 0) {
		return ErrInvalidLocation
	}
	if l.Latitude < -90 || l.Latitude > 90 || l.Longitude < -180 || l.Longitude > 180 {
		return ErrInvalidLocation
	}
	return nil
}

// Store persists locations and keeps the geo index in sync
type Store interface {
	Save(ctx context.Context, loc *Location) error
	Get(ctx context.Context, resourceID int64, resourceType string) (*Location, error)
	Delete(ctx context.Context, resourceID int64, resourceType string) error
}

type postgresStore struct {
	db    *sqlx.DB
	index *Index
}

// NewStore creates a location store over Postgres with the given geo index
func NewStore(db *sqlx.DB, index *Index) Store {
	return &postgresStore{db: db, index: index}
}

// Save upserts on (resource_id, resource_type) and refreshes the index entry
func (s *postgresStore) Save(ctx context.Context, loc *Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}

	query := `
        INSERT INTO locations (
            resource_id, resource_type, latitude, longitude,
            name, formatted_address, country, state, city, zipcode, address
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        ON CONFLICT (resource_id, resource_type)
        DO UPDATE SET
            latitude = EXCLUDED.latitude,
            longitude = EXCLUDED.longitude,
            name = EXCLUDED.name,
            formatted_address = EXCLUDED.formatted_address,
            country = EXCLUDED.country,
            state = EXCLUDED.state,
            city = EXCLUDED.city,
            zipcode = EXCLUDED.zipcode,
            address = EXCLUDED.address
        RETURNING id
    `

	err := s.db.QueryRowxContext(
		ctx, query,
		loc.ResourceID, loc.ResourceType, loc.Latitude, loc.Longitude,
		loc.Name, loc.FormattedAddress, loc.Country, loc.State,
		loc.City, loc.Zipcode, loc.Address,
	).Scan(&loc.ID)
	if err != nil {
		return fmt.Errorf("save location: %w", err)
	}

	return s.index.Add(ctx, loc.ResourceType, loc.ResourceID, loc.Latitude, loc.Longitude)
}

func (s *postgresStore) Get(ctx context.Context, resourceID int64, resourceType string) (*Location, error) {
	var loc Location
	query := `SELECT * FROM locations WHERE resource_id = $1 AND resource_type = $2`

	err := s.db.GetContext(ctx, &loc, query, resourceID, resourceType)
	if err == sql.ErrNoRows {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get location: %w", err)
	}

	return &loc, nil
}

// Delete removes the location row and its index entry. Deleting the owning
// resource must call this; locations do not outlive their resource.
func (s *postgresStore) Delete(ctx context.Context, resourceID int64, resourceType string) error {
	query := `DELETE FROM locations WHERE resource_id = $1 AND resource_type = $2`
	if _, err := s.db.ExecContext(ctx, query, resourceID, resourceType); err != nil {
		return fmt.Errorf("delete location: %w", err)
	}

	return s.index.Remove(ctx, resourceType, resourceID)
}
