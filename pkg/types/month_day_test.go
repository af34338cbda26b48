package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMonthDayFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "04-01"},
		{name: "end of month", input: "12-31"},
		{name: "month out of range", input: "13-01", wantErr: true},
		{name: "day out of range", input: "04-32", wantErr: true},
		{name: "zero day", input: "04-00", wantErr: true},
		{name: "missing padding", input: "4-1", wantErr: true},
		{name: "full date", input: "2025-04-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, err := NewMonthDayFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMonthDay)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.input, md.String())
		})
	}
}

func TestMonthDayInRange(t *testing.T) {
	t.Run("plain range", func(t *testing.T) {
		assert.True(t, MonthDay("05-01").InRange("05-01", "10-01"))
		assert.True(t, MonthDay("07-15").InRange("05-01", "10-01"))
		assert.False(t, MonthDay("10-01").InRange("05-01", "10-01")) // конец исключающий
		assert.False(t, MonthDay("04-30").InRange("05-01", "10-01"))
	})

	t.Run("year-wrapping range", func(t *testing.T) {
		assert.True(t, MonthDay("12-25").InRange("12-20", "01-05"))
		assert.True(t, MonthDay("01-02").InRange("12-20", "01-05"))
		assert.True(t, MonthDay("12-31").InRange("12-20", "01-05"))
		assert.True(t, MonthDay("01-01").InRange("12-20", "01-05"))
		assert.False(t, MonthDay("01-05").InRange("12-20", "01-05"))
		assert.False(t, MonthDay("06-15").InRange("12-20", "01-05"))
	})

	t.Run("empty range matches nothing", func(t *testing.T) {
		assert.False(t, MonthDay("05-01").InRange("05-01", "05-01"))
	})
}
