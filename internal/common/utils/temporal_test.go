package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestComposeInstant(t *testing.T) {
	t.Run("composes date and time", func(t *testing.T) {
		require := require.New(t)

		got, err := ComposeInstant("2025-01-10", "18:00:00")
		require.NoError(err)
		require.Equal(time.Date(2025, 1, 10, 18, 0, 0, 0, time.UTC), got)
	})

	t.Run("empty time means midnight", func(t *testing.T) {
		require := require.New(t)

		got, err := ComposeInstant("2025-01-10", "")
		require.NoError(err)
		require.Equal(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("empty date is an error", func(t *testing.T) {
		_, err := ComposeInstant("", "18:00:00")
		require.Error(t, err)
	})

	t.Run("malformed input is an error", func(t *testing.T) {
		_, err := ComposeInstant("10/01/2025", "18:00:00")
		require.Error(t, err)
	})

	t.Run("time of day moves the instant across a cutoff", func(t *testing.T) {
		require := require.New(t)

		scheduled, err := ComposeInstant("2025-01-10", "18:00:00")
		require.NoError(err)

		early, err := ComposeInstant("2025-01-10", "12:00:00")
		require.NoError(err)
		require.False(scheduled.Before(early), "activity at 18:00 should survive a 12:00 cutoff")

		late, err := ComposeInstant("2025-01-10", "20:00:00")
		require.NoError(err)
		require.True(scheduled.Before(late), "activity at 18:00 should be excluded by a 20:00 cutoff")
	})
}

func TestCutoffOrNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	t.Run("defaults to now without a date", func(t *testing.T) {
		got, err := CutoffOrNow("", "18:00:00", now)
		require.NoError(t, err)
		require.Equal(t, now, got)
	})

	t.Run("composes when a date is given", func(t *testing.T) {
		got, err := CutoffOrNow("2025-01-10", "12:00:00", now)
		require.NoError(t, err)
		require.Equal(t, time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC), got)
	})
}

func TestSplitInstant(t *testing.T) {
	date, clock := SplitInstant(time.Date(2025, 1, 10, 18, 0, 0, 0, time.UTC))
	require.Equal(t, "2025-01-10", date)
	require.Equal(t, "18:00:00", clock)
}
