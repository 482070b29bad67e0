package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 3, 15, 9, 5, 30, 0, time.UTC))
	assert.Equal(t, "09:05", ts.String())
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("14:30")
	require.NoError(t, err)
	assert.Equal(t, "14:30", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = NewTimeStringFromString("abc")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeStringValidate(t *testing.T) {
	tests := []struct {
		name    string
		value   TimeString
		wantErr bool
	}{
		{"valid morning", "09:00", false},
		{"valid midnight", "00:00", false},
		{"end of day marker", "24:00", false},
		{"hour overflow", "24:01", true},
		{"minute overflow", "10:60", true},
		{"garbage", "noon", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.value.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("09:00")

	result, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, "10:30", result.String())

	// Конец дня допустим как результат
	result, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, "24:00", result.String())

	// Выход за пределы суток — ошибка
	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = TimeString("00:30").AddMinutes(-60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeStringComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("17:00"))
	assert.False(t, TimeString("17:00").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))

	assert.True(t, TimeString("17:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))

	// Некорректные значения несравнимы
	assert.False(t, TimeString("bad").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("bad"))
}

func TestTimeStringMinutesUntil(t *testing.T) {
	minutes, err := TimeString("09:00").MinutesUntil("10:30")
	require.NoError(t, err)
	assert.Equal(t, 90, minutes)

	minutes, err = TimeString("10:30").MinutesUntil("09:00")
	require.NoError(t, err)
	assert.Equal(t, -90, minutes)
}

func TestTimeStringFormat12Hour(t *testing.T) {
	tests := []struct {
		value    TimeString
		expected string
	}{
		{"00:00", "12:00 AM"},
		{"09:00", "9:00 AM"},
		{"11:30", "11:30 AM"},
		{"12:00", "12:00 PM"},
		{"13:15", "1:15 PM"},
		{"16:00", "4:00 PM"},
		{"23:45", "11:45 PM"},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.Format12Hour())
		})
	}
}
