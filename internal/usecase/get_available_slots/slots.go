package get_available_slots

import (
	"time"

	"github.com/okettle/marketplace-booking/internal/domain"
	"github.com/okettle/marketplace-booking/pkg/types"
)

// generateTimeSlots генерирует сетку кандидатных слотов на день
// Сетка строится от времени открытия с фиксированным шагом duration+buffer.
// Слот попадает в сетку, только если целиком помещается до закрытия:
// start + duration <= closing. Для сегодняшней даты дополнительно
// отфильтровываются слоты, начинающиеся раньше now + minAdvanceMinutes.
//
// Сетка детерминирована: одинаковые входы всегда дают одинаковую последовательность
func generateTimeSlots(
	openingTime types.TimeString,
	closingTime types.TimeString,
	durationMinutes int,
	bufferMinutes int,
	requestDate time.Time,
	now time.Time,
	minAdvanceMinutes int,
) ([]types.TimeString, error) {
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	if openingTime.Validate() != nil || closingTime.Validate() != nil {
		// Магазин без валидных часов — пустая сетка, а не ошибка:
		// misconfiguration не должна ронять чтение доступности
		return []types.TimeString{}, nil
	}

	step := durationMinutes + bufferMinutes

	allSlots := make([]types.TimeString, 0)
	currentSlot := openingTime

	for currentSlot.IsBefore(closingTime) {
		slotEnd, err := currentSlot.AddMinutes(durationMinutes)
		if err != nil {
			// Конец слота вышел за пределы суток — сетка закончилась
			break
		}
		if slotEnd.IsAfter(closingTime) {
			break
		}

		allSlots = append(allSlots, currentSlot)

		currentSlot, err = currentSlot.AddMinutes(step)
		if err != nil {
			break
		}
	}

	// Для будущих дат возвращаем всю сетку
	if !isSameDay(requestDate, now) {
		return allSlots, nil
	}

	// Для сегодняшней даты оставляем только слоты, начинающиеся
	// не раньше now + minAdvanceMinutes
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minAdvanceMinutes)
	if err != nil {
		// Окно бронирования уходит за полночь — сегодня слотов уже нет
		return []types.TimeString{}, nil
	}

	availableSlots := make([]types.TimeString, 0)
	for _, slot := range allSlots {
		if !slot.IsBefore(minAllowedTime) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots, nil
}

// calculateAvailableSpots вычисляет занятость каждого слота сетки
// Чистая функция от трёх входов — никакого I/O.
// booked = количество активных бронирований, пересекающих слот;
// available = max(0, capacity - booked).
// Бронирование, накрывающее несколько слотов, уменьшает доступность каждого из них
func calculateAvailableSpots(
	slots []types.TimeString,
	durationMinutes int,
	bookings []*domain.Booking,
	capacity int,
) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, len(slots))

	for i, slotStart := range slots {
		booked := countOverlappingBookings(slotStart, durationMinutes, bookings)

		available := capacity - booked
		if available < 0 {
			available = 0
		}

		slotEnd, err := slotStart.AddMinutes(durationMinutes)
		if err != nil {
			slotEnd = slotStart
		}

		result[i] = domain.AvailableSlot{
			StartTime:       slotStart,
			EndTime:         slotEnd,
			DurationMinutes: durationMinutes,
			Available:       available,
			Total:           capacity,
			Booked:          booked,
		}
	}

	return result
}

// countOverlappingBookings подсчитывает активные бронирования, пересекающие слот
// Интервалы полуоткрытые: пересечение есть, только если
// bookingStart < slotEnd И bookingEnd > slotStart (строгие неравенства).
// Бронирование, заканчивающееся ровно в начале слота, его НЕ блокирует
//
// Примеры:
// - Слот 11:30-12:00, бронирование 11:20-11:40 -> пересечение (11:30-11:40)
// - Слот 11:30-12:00, бронирование 11:00-11:30 -> нет пересечения (граничат)
// - Слот 11:30-12:00, бронирование 12:00-12:30 -> нет пересечения (граничат)
func countOverlappingBookings(slotStart types.TimeString, durationMinutes int, bookings []*domain.Booking) int {
	slotEnd, err := slotStart.AddMinutes(durationMinutes)
	if err != nil {
		return 0
	}

	count := 0

	for _, booking := range bookings {
		// Отменённые и no-show не занимают слот
		if !booking.IsActive() {
			continue
		}

		bookingStart := booking.StartTime
		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			continue
		}

		if bookingStart.IsBefore(slotEnd) && bookingEnd.IsAfter(slotStart) {
			count++
		}
	}

	return count
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
