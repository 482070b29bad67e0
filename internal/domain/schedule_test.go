package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWorkingDaysJSONList(t *testing.T) {
	days, err := ParseWorkingDays(`["Monday", "tuesday", "WED"]`)
	require.NoError(t, err)

	assert.True(t, days.Contains(time.Monday))
	assert.True(t, days.Contains(time.Tuesday))
	assert.True(t, days.Contains(time.Wednesday))
	assert.False(t, days.Contains(time.Sunday))
}

func TestParseWorkingDaysCommaSeparated(t *testing.T) {
	days, err := ParseWorkingDays(" monday, Tuesday ,FRIDAY ")
	require.NoError(t, err)

	assert.True(t, days.Contains(time.Monday))
	assert.True(t, days.Contains(time.Tuesday))
	assert.True(t, days.Contains(time.Friday))
	assert.False(t, days.Contains(time.Saturday))
}

func TestParseWorkingDaysShortNames(t *testing.T) {
	days, err := ParseWorkingDays("mon,tue,wed,thu,fri,sat")
	require.NoError(t, err)

	for _, day := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday} {
		assert.True(t, days.Contains(day), day.String())
	}
	assert.False(t, days.Contains(time.Sunday))
}

func TestParseWorkingDaysSkipsUnknownEntries(t *testing.T) {
	days, err := ParseWorkingDays("monday, someday, friday")
	require.NoError(t, err)

	assert.True(t, days.Contains(time.Monday))
	assert.True(t, days.Contains(time.Friday))
	assert.Len(t, days, 2)
}

// Пустое или нераспознанное расписание — это "закрыто", а не "всегда открыто"
func TestParseWorkingDaysFailClosed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty string", ""},
		{"whitespace only", "   "},
		{"empty json list", "[]"},
		{"broken json", "[monday"},
		{"nothing recognized", "someday, whenever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWorkingDays(tt.raw)
			assert.ErrorIs(t, err, ErrEmptyWorkingDays)
		})
	}
}

func TestWorkingDaysFormatList(t *testing.T) {
	days, err := ParseWorkingDays(`["saturday", "monday", "wednesday"]`)
	require.NoError(t, err)

	// Порядок недели с понедельника, независимо от порядка во входных данных
	assert.Equal(t, "Monday, Wednesday, Saturday", days.FormatList())
}

func TestBookingIsActive(t *testing.T) {
	tests := []struct {
		status BookingStatus
		active bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusInProgress, true},
		{StatusCompleted, true},
		{StatusCancelled, false},
		{StatusNoShow, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.active, b.IsActive())
		})
	}
}

func TestBookingCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusNoShow, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.allowed, b.CanTransitionTo(tt.to))
		})
	}
}
