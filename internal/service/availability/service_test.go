package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

var testNow = time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

type fakeInventoryRepo struct {
	blocked map[types.DateString]bool
}

func (r *fakeInventoryRepo) IsFreeRange(_ context.Context, _ int64, nights []types.DateString) (bool, error) {
	for _, n := range nights {
		if r.blocked[n] {
			return false, nil
		}
	}
	return true, nil
}

func (r *fakeInventoryRepo) ListBlockedDates(_ context.Context, _ int64, from, to types.DateString) ([]types.DateString, error) {
	result := make([]types.DateString, 0)
	for d := range r.blocked {
		if !d.Before(from) && d.Before(to) {
			result = append(result, d)
		}
	}
	return result, nil
}

type fakeHoldRepo struct {
	holds map[types.DateString]time.Time // ночь -> expires_at
}

func (r *fakeHoldRepo) ListLiveNights(_ context.Context, _ int64, nights []types.DateString, now time.Time) ([]types.DateString, error) {
	live := make([]types.DateString, 0)
	for _, n := range nights {
		if exp, ok := r.holds[n]; ok && exp.After(now) {
			live = append(live, n)
		}
	}
	return live, nil
}

func (r *fakeHoldRepo) ListLiveDates(_ context.Context, _ int64, from, to types.DateString, now time.Time) ([]types.DateString, error) {
	result := make([]types.DateString, 0)
	for d, exp := range r.holds {
		if !d.Before(from) && d.Before(to) && exp.After(now) {
			result = append(result, d)
		}
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(inventory *fakeInventoryRepo, holds *fakeHoldRepo) *Service {
	s := NewService(inventory, holds, nopLogger{})
	s.now = func() time.Time { return testNow }
	return s
}

func TestIsRangeAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("free range", func(t *testing.T) {
		s := newTestService(
			&fakeInventoryRepo{blocked: map[types.DateString]bool{}},
			&fakeHoldRepo{holds: map[types.DateString]time.Time{}},
		)

		ok, err := s.IsRangeAvailable(ctx, 1, "2025-08-01", "2025-08-04")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("blocked night makes range unavailable", func(t *testing.T) {
		s := newTestService(
			&fakeInventoryRepo{blocked: map[types.DateString]bool{"2025-08-02": true}},
			&fakeHoldRepo{holds: map[types.DateString]time.Time{}},
		)

		ok, err := s.IsRangeAvailable(ctx, 1, "2025-08-01", "2025-08-04")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("live hold makes range unavailable", func(t *testing.T) {
		s := newTestService(
			&fakeInventoryRepo{blocked: map[types.DateString]bool{}},
			&fakeHoldRepo{holds: map[types.DateString]time.Time{
				"2025-08-03": testNow.Add(time.Hour),
			}},
		)

		ok, err := s.IsRangeAvailable(ctx, 1, "2025-08-01", "2025-08-04")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired hold does not count", func(t *testing.T) {
		s := newTestService(
			&fakeInventoryRepo{blocked: map[types.DateString]bool{}},
			&fakeHoldRepo{holds: map[types.DateString]time.Time{
				"2025-08-03": testNow.Add(-time.Minute),
			}},
		)

		ok, err := s.IsRangeAvailable(ctx, 1, "2025-08-01", "2025-08-04")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("degenerate range", func(t *testing.T) {
		s := newTestService(
			&fakeInventoryRepo{blocked: map[types.DateString]bool{}},
			&fakeHoldRepo{holds: map[types.DateString]time.Time{}},
		)

		_, err := s.IsRangeAvailable(ctx, 1, "2025-08-04", "2025-08-04")
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestListUnavailableNights(t *testing.T) {
	ctx := context.Background()

	t.Run("merges inventory and live holds sorted without duplicates", func(t *testing.T) {
		s := newTestService(
			&fakeInventoryRepo{blocked: map[types.DateString]bool{
				"2025-08-05": true,
				"2025-08-02": true,
			}},
			&fakeHoldRepo{holds: map[types.DateString]time.Time{
				"2025-08-02": testNow.Add(time.Hour), // дубликат с инвентарем
				"2025-08-03": testNow.Add(time.Hour),
				"2025-08-09": testNow.Add(-time.Hour), // просрочен
			}},
		)

		nights, err := s.ListUnavailableNights(ctx, 1, "2025-08-01", "2025-08-10")
		require.NoError(t, err)
		assert.Equal(t, []types.DateString{"2025-08-02", "2025-08-03", "2025-08-05"}, nights)
	})

	t.Run("window bounds are respected", func(t *testing.T) {
		s := newTestService(
			&fakeInventoryRepo{blocked: map[types.DateString]bool{
				"2025-07-31": true,
				"2025-08-01": true,
				"2025-08-10": true,
			}},
			&fakeHoldRepo{holds: map[types.DateString]time.Time{}},
		)

		nights, err := s.ListUnavailableNights(ctx, 1, "2025-08-01", "2025-08-10")
		require.NoError(t, err)
		assert.Equal(t, []types.DateString{"2025-08-01"}, nights)
	})

	t.Run("empty window is invalid", func(t *testing.T) {
		s := newTestService(
			&fakeInventoryRepo{blocked: map[types.DateString]bool{}},
			&fakeHoldRepo{holds: map[types.DateString]time.Time{}},
		)

		_, err := s.ListUnavailableNights(ctx, 1, "2025-08-10", "2025-08-01")
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}
