package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okettle/marketplace-booking/internal/domain"
	"github.com/okettle/marketplace-booking/pkg/types"
)

var (
	futureDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC) // понедельник
	testNow    = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
)

func activeBooking(start types.TimeString, durationMinutes int) *domain.Booking {
	return &domain.Booking{
		StartTime:       start,
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
	}
}

func TestGenerateTimeSlotsFullDay(t *testing.T) {
	// 09:00-17:00, час без буфера: последний слот 16:00-17:00
	slots, err := generateTimeSlots("09:00", "17:00", 60, 0, futureDate, testNow, 0)
	require.NoError(t, err)

	expected := []types.TimeString{
		"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00",
	}
	assert.Equal(t, expected, slots)
}

func TestGenerateTimeSlotsWithBuffer(t *testing.T) {
	// Шаг сетки = длительность + буфер
	slots, err := generateTimeSlots("09:00", "17:00", 60, 30, futureDate, testNow, 0)
	require.NoError(t, err)

	expected := []types.TimeString{
		"09:00", "10:30", "12:00", "13:30", "15:00",
	}
	assert.Equal(t, expected, slots)
}

func TestGenerateTimeSlotsLastSlotMustFitBeforeClosing(t *testing.T) {
	// Слот 17:00-18:00 не помещается до закрытия 17:30 и в сетку не попадает
	slots, err := generateTimeSlots("09:00", "17:30", 60, 0, futureDate, testNow, 0)
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("16:00"), slots[len(slots)-1])
}

func TestGenerateTimeSlotsSlotEndingExactlyAtClosing(t *testing.T) {
	// Конец слота, равный времени закрытия, допустим
	slots, err := generateTimeSlots("09:00", "10:00", 60, 0, futureDate, testNow, 0)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00"}, slots)
}

func TestGenerateTimeSlotsPastDateIsEmpty(t *testing.T) {
	pastDate := testNow.AddDate(0, 0, -1)

	slots, err := generateTimeSlots("09:00", "17:00", 60, 0, pastDate, testNow, 0)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateTimeSlotsTodayFiltersByMinAdvance(t *testing.T) {
	// Сегодня 12:00, минимальный запас 60 минут: остаются слоты с 13:00
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	today := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	slots, err := generateTimeSlots("09:00", "17:00", 60, 0, today, now, 60)
	require.NoError(t, err)

	expected := []types.TimeString{"13:00", "14:00", "15:00", "16:00"}
	assert.Equal(t, expected, slots)
}

func TestGenerateTimeSlotsFutureDateIgnoresMinAdvance(t *testing.T) {
	slots, err := generateTimeSlots("09:00", "17:00", 60, 0, futureDate, testNow, 240)
	require.NoError(t, err)
	assert.Len(t, slots, 8)
}

func TestGenerateTimeSlotsInvalidHoursGiveEmptyGrid(t *testing.T) {
	slots, err := generateTimeSlots("", "17:00", 60, 0, futureDate, testNow, 0)
	require.NoError(t, err)
	assert.Empty(t, slots)

	slots, err = generateTimeSlots("09:00", "not-a-time", 60, 0, futureDate, testNow, 0)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestCountOverlappingBookingsStrictHalfOpenIntervals(t *testing.T) {
	bookings := []*domain.Booking{
		activeBooking("11:20", 20), // 11:20-11:40 пересекает 11:30-12:00
		activeBooking("11:00", 30), // 11:00-11:30 граничит с началом слота
		activeBooking("12:00", 30), // 12:00-12:30 граничит с концом слота
	}

	count := countOverlappingBookings("11:30", 30, bookings)
	assert.Equal(t, 1, count)
}

func TestCountOverlappingBookingsIgnoresInactive(t *testing.T) {
	cancelled := activeBooking("10:00", 60)
	cancelled.Status = domain.StatusCancelled
	noShow := activeBooking("10:00", 60)
	noShow.Status = domain.StatusNoShow

	bookings := []*domain.Booking{
		cancelled,
		noShow,
		activeBooking("10:00", 60),
	}

	count := countOverlappingBookings("10:00", 60, bookings)
	assert.Equal(t, 1, count)
}

func TestCountOverlappingBookingsLongBookingSpansMultipleSlots(t *testing.T) {
	// Двухчасовое бронирование 10:00-12:00 занимает оба часовых слота
	bookings := []*domain.Booking{activeBooking("10:00", 120)}

	assert.Equal(t, 1, countOverlappingBookings("10:00", 60, bookings))
	assert.Equal(t, 1, countOverlappingBookings("11:00", 60, bookings))
	assert.Equal(t, 0, countOverlappingBookings("09:00", 60, bookings))
	assert.Equal(t, 0, countOverlappingBookings("12:00", 60, bookings))
}

func TestCalculateAvailableSpots(t *testing.T) {
	slots := []types.TimeString{"09:00", "10:00", "11:00"}
	bookings := []*domain.Booking{
		activeBooking("10:00", 60),
		activeBooking("10:00", 60),
	}

	result := calculateAvailableSpots(slots, 60, bookings, 3)
	require.Len(t, result, 3)

	assert.Equal(t, 3, result[0].Available)
	assert.Equal(t, 0, result[0].Booked)
	assert.True(t, result[0].IsBookable())

	assert.Equal(t, 1, result[1].Available)
	assert.Equal(t, 2, result[1].Booked)
	assert.Equal(t, 3, result[1].Total)
	assert.True(t, result[1].IsPartiallyBooked())

	assert.Equal(t, types.TimeString("12:00"), result[2].EndTime)
}

func TestCalculateAvailableSpotsNeverNegative(t *testing.T) {
	slots := []types.TimeString{"10:00"}
	bookings := []*domain.Booking{
		activeBooking("10:00", 60),
		activeBooking("10:00", 60),
		activeBooking("10:30", 60),
	}

	result := calculateAvailableSpots(slots, 60, bookings, 1)
	require.Len(t, result, 1)

	assert.Equal(t, 0, result[0].Available)
	assert.Equal(t, 3, result[0].Booked)
	assert.True(t, result[0].IsFull())
}

func TestCalculateAvailableSpotsFullCapacityBlocksSlot(t *testing.T) {
	slots := []types.TimeString{"10:00"}
	bookings := []*domain.Booking{
		activeBooking("10:00", 60),
	}

	result := calculateAvailableSpots(slots, 60, bookings, 1)
	require.Len(t, result, 1)
	assert.False(t, result[0].IsBookable())
}
