package domain

import "github.com/okettle/marketplace-booking/pkg/types"

// AvailableSlot кандидатный слот бронирования с вычисленной занятостью
type AvailableSlot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Available       int // Оставшаяся вместимость: max(0, Total - Booked)
	Total           int // Вместимость scope
	Booked          int // Количество активных бронирований, пересекающих слот
}

// IsBookable возвращает true, если в слоте осталось хотя бы одно место
func (s *AvailableSlot) IsBookable() bool {
	return s.Available > 0
}

// IsFull возвращает true, если слот полностью занят
func (s *AvailableSlot) IsFull() bool {
	return s.Available <= 0
}

// IsPartiallyBooked возвращает true, если слот занят частично
func (s *AvailableSlot) IsPartiallyBooked() bool {
	return s.Available > 0 && s.Available < s.Total
}
