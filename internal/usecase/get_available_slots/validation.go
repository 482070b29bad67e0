package get_available_slots

import (
	"errors"
	"fmt"
	"time"

	"github.com/okettle/marketplace-booking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.EntityType.IsValid() {
		return fmt.Errorf("%w: entityType must be 'service' or 'offer'", ErrInvalidInput)
	}

	if req.EntityID <= 0 {
		return fmt.Errorf("%w: entityID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateCalendar валидирует дату против календаря магазина
// Последовательность проверок: дата не в прошлом, рабочие дни заданы
// (иначе fail closed), день недели рабочий. При отказе по дню недели
// сообщение содержит список открытых дней
func validateCalendar(store *domain.Store, date time.Time, now time.Time) (domain.WorkingDays, error) {
	if isDateInPast(date, now) {
		return nil, ErrDateInPast
	}

	workingDays, err := domain.ParseWorkingDays(store.WorkingDaysRaw)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyWorkingDays) {
			return nil, ErrScheduleMissing
		}
		return nil, fmt.Errorf("%w: failed to parse working days: %v", ErrInternal, err)
	}

	weekday := date.Weekday()
	if !workingDays.Contains(weekday) {
		return nil, fmt.Errorf("%w on %s. Open days: %s",
			ErrStoreClosed, weekday, workingDays.FormatList())
	}

	return workingDays, nil
}

// validateMaxAdvance проверяет, что дата не превышает окно бронирования услуги
// Окно задано в минутах от текущего момента до начала дня бронирования
func validateMaxAdvance(date time.Time, now time.Time, maxAdvanceMinutes int) error {
	if maxAdvanceMinutes <= 0 {
		return nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	minutesAhead := int(dayStart.Sub(now).Minutes())

	if minutesAhead > maxAdvanceMinutes {
		return fmt.Errorf("%w: can only book up to %d minutes in advance",
			ErrDateTooFarInFuture, maxAdvanceMinutes)
	}

	return nil
}
