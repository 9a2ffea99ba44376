package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePage(t *testing.T) {
	t.Run("clamps page and applies default limit", func(t *testing.T) {
		p := NormalizePage(0, 0, 10)
		require.Equal(t, 1, p.Page)
		require.Equal(t, 10, p.Limit)
		require.Equal(t, 0, p.Offset())
	})

	t.Run("caps limit at 100", func(t *testing.T) {
		p := NormalizePage(2, 500, 10)
		require.Equal(t, 100, p.Limit)
		require.Equal(t, 100, p.Offset())
	})

	t.Run("offset skips previous pages", func(t *testing.T) {
		p := NormalizePage(3, 20, 10)
		require.Equal(t, 40, p.Offset())
	})
}

func TestNewPage(t *testing.T) {
	t.Run("computes total pages with remainder", func(t *testing.T) {
		page := NewPage([]int{1, 2, 3}, 25, PageParams{Page: 1, Limit: 10})
		require.Equal(t, 3, page.TotalPages)
		require.Equal(t, int64(25), page.TotalItems)
	})

	t.Run("nil items become an empty slice", func(t *testing.T) {
		page := NewPage[int](nil, 0, PageParams{Page: 1, Limit: 10})
		require.NotNil(t, page.Items)
		require.Empty(t, page.Items)
	})
}
