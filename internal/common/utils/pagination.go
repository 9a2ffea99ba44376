// internal/common/utils/pagination.go
// Generic skip/limit windowing with total count

package utils

// PageParams normalizes caller-supplied page/limit values
type PageParams struct {
	Page  int
	Limit int
}

// NormalizePage clamps page/limit to sane values (page >= 1, limit 1..100)
func NormalizePage(page, limit, defaultLimit int) PageParams {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return PageParams{Page: page, Limit: limit}
}

// Offset returns the number of rows to skip for this window
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is a materialized window over a larger result set
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalItems int64 `json:"total_items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// NewPage builds a Page from a window of items and a total count
func NewPage[T any](items []T, total int64, params PageParams) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := int(total) / params.Limit
	if int(total)%params.Limit != 0 {
		totalPages++
	}
	return Page[T]{
		Items:      items,
		TotalItems: total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages,
	}
}
