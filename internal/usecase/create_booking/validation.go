package create_booking

import (
	"fmt"
	"time"

	"github.com/okettle/marketplace-booking/internal/domain"
	"github.com/okettle/marketplace-booking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if !req.EntityType.IsValid() {
		return fmt.Errorf("%w: entityType must be 'service' or 'offer'", ErrInvalidInput)
	}
	if req.EntityID <= 0 {
		return fmt.Errorf("%w: entityID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	return nil
}

// validateCalendar проверяет дату по календарю магазина
// Пустой список рабочих дней трактуется как "всегда закрыто" (fail closed)
func validateCalendar(store *domain.Store, date time.Time, now time.Time) error {
	if isDateInPast(date, now) {
		return fmt.Errorf("%w: %s", ErrDateInPast, date.Format(domain.DateFormat))
	}

	workingDays, err := domain.ParseWorkingDays(store.WorkingDaysRaw)
	if err != nil {
		return ErrScheduleMissing
	}

	weekday := date.Weekday()
	if !workingDays.Contains(weekday) {
		return fmt.Errorf("%w: store is closed on %s. Open days: %s",
			ErrStoreClosed, weekday, workingDays.FormatList())
	}

	return nil
}

// validateWithinHours проверяет, что слот целиком помещается в часы работы
// Конец слота, равный времени закрытия, допустим
func validateWithinHours(store *domain.Store, startTime types.TimeString, durationMinutes int) error {
	if startTime.IsBefore(*store.OpeningTime) {
		return fmt.Errorf("%w: slot starts before opening time %s", ErrInvalidTimeSlot, *store.OpeningTime)
	}

	slotEnd, err := startTime.AddMinutes(durationMinutes)
	if err != nil || slotEnd.IsAfter(*store.ClosingTime) {
		return fmt.Errorf("%w: slot ends after closing time %s", ErrInvalidTimeSlot, *store.ClosingTime)
	}

	return nil
}

// validateBookingWindow проверяет минимальный и максимальный запас до начала слота
func validateBookingWindow(date time.Time, startTime types.TimeString, now time.Time, minAdvance, maxAdvance int) error {
	start := slotStartDateTime(date, startTime)
	minutesAhead := int(start.Sub(now).Minutes())

	if minutesAhead < minAdvance {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minAdvance)
	}
	if maxAdvance > 0 && minutesAhead > maxAdvance {
		return fmt.Errorf("%w: can only book up to %d minutes in advance", ErrDateTooFarInFuture, maxAdvance)
	}

	return nil
}

// slotStartDateTime собирает полный момент начала слота из даты и времени
func slotStartDateTime(date time.Time, startTime types.TimeString) time.Time {
	var hours, minutes int
	fmt.Sscanf(startTime.String(), "%02d:%02d", &hours, &minutes)
	return time.Date(date.Year(), date.Month(), date.Day(), hours, minutes, 0, 0, date.Location())
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// countOverlappingBookings подсчитывает активные бронирования, пересекающие слот
// Интервалы полуоткрытые: бронирование, заканчивающееся ровно в начале слота,
// пересечением не считается
func countOverlappingBookings(slotStart types.TimeString, durationMinutes int, bookings []*domain.Booking) (int, error) {
	slotEnd, err := slotStart.AddMinutes(durationMinutes)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate slot end time: %w", err)
	}

	count := 0
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			continue
		}

		if booking.StartTime.IsBefore(slotEnd) && bookingEnd.IsAfter(slotStart) {
			count++
		}
	}

	return count, nil
}
