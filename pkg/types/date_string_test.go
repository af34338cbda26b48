package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid date", input: "2025-08-01"},
		{name: "leap day", input: "2024-02-29"},
		{name: "non-leap february 29", input: "2025-02-29", wantErr: true},
		{name: "missing zero padding", input: "2025-8-1", wantErr: true},
		{name: "german format", input: "01.08.2025", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDateStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDateString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, d.String())
		})
	}
}

func TestDateStringAddDays(t *testing.T) {
	t.Run("crosses month boundary", func(t *testing.T) {
		d, err := DateString("2025-08-31").AddDays(1)
		require.NoError(t, err)
		assert.Equal(t, DateString("2025-09-01"), d)
	})

	t.Run("crosses year boundary", func(t *testing.T) {
		d, err := DateString("2025-12-31").AddDays(1)
		require.NoError(t, err)
		assert.Equal(t, DateString("2026-01-01"), d)
	})

	t.Run("dst transition keeps one day per step", func(t *testing.T) {
		// 2025-03-30 — переход на летнее время в Европе
		d, err := DateString("2025-03-29").AddDays(2)
		require.NoError(t, err)
		assert.Equal(t, DateString("2025-03-31"), d)
	})

	t.Run("negative offset", func(t *testing.T) {
		d, err := DateString("2025-01-01").AddDays(-1)
		require.NoError(t, err)
		assert.Equal(t, DateString("2024-12-31"), d)
	})
}

func TestDateStringBefore(t *testing.T) {
	assert.True(t, DateString("2025-08-01").Before("2025-08-02"))
	assert.True(t, DateString("2025-09-30").Before("2025-10-01"))
	assert.False(t, DateString("2025-08-01").Before("2025-08-01"))
	assert.False(t, DateString("2026-01-01").Before("2025-12-31"))
}

func TestDateStringDaysUntil(t *testing.T) {
	t.Run("forward", func(t *testing.T) {
		n, err := DateString("2025-08-01").DaysUntil("2025-08-08")
		require.NoError(t, err)
		assert.Equal(t, 7, n)
	})

	t.Run("backward is negative", func(t *testing.T) {
		n, err := DateString("2025-08-08").DaysUntil("2025-08-01")
		require.NoError(t, err)
		assert.Equal(t, -7, n)
	})

	t.Run("across dst transition", func(t *testing.T) {
		n, err := DateString("2025-03-29").DaysUntil("2025-03-31")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

func TestDateStringMonthDay(t *testing.T) {
	assert.Equal(t, MonthDay("08-01"), DateString("2025-08-01").MonthDay())
	assert.Equal(t, MonthDay(""), DateString("bad").MonthDay())
}

func TestNewDateString(t *testing.T) {
	moment := time.Date(2025, 8, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, DateString("2025-08-01"), NewDateString(moment))
}
