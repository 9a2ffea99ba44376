// internal/category/category.go
// Category lookup and image URL derivation. Image URLs are deterministic:
// no store lookup is needed to render one.

package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrCategoryNotFound = errors.New("category not found")

// Category is an activity category
type Category struct {
	CategoryID int64  `json:"category_id" db:"category_id"`
	Title      string `json:"title" db:"title"`
}

type Repository interface {
	Get(ctx context.Context, categoryID int64) (*Category, error)
	List(ctx context.Context) ([]Category, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Get(ctx context.Context, categoryID int64) (*Category, error) {
	var cat Category
	query := `SELECT category_id, title FROM categories WHERE category_id = $1`

	err := r.db.GetContext(ctx, &cat, query, categoryID)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	return &cat, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]Category, error) {
	var cats []Category
	query := `SELECT category_id, title FROM categories ORDER BY category_id`

	if err := r.db.SelectContext(ctx, &cats, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// ImageResolver derives category image URLs
type ImageResolver struct {
	baseURL string
}

func NewImageResolver(baseURL string) *ImageResolver {
	return &ImageResolver{baseURL: baseURL}
}

// URL returns the public image URL for a category
func (r *ImageResolver) URL(categoryID int64) string {
	return fmt.Sprintf("%s/api/upload/category/%d.png", r.baseURL, categoryID)
}
