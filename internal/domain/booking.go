package domain

import (
	"time"

	"github.com/okettle/marketplace-booking/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// Booking бронирование слота в магазине маркетплейса
// ServiceID всегда денормализован, даже если бронирование сделано через оффер —
// подсчёт занятости слотов идёт по услуге
type Booking struct {
	ID              int64
	Reference       string // Публичный код бронирования (BK-XXXXXXXX)
	UserID          int64
	StoreID         int64
	ServiceID       int64
	OfferID         *int64 // NULL, если бронирование сделано напрямую на услугу
	StaffID         *int64 // NULL, если сотрудник не выбран
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Денормализованные данные для истории
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime возвращает время окончания бронирования
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// IsActive возвращает true, если бронирование занимает слот
// Отменённые и no-show бронирования немедленно освобождают интервал
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusNoShow
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled возвращает true, если бронирование отменено
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsFinished возвращает true, если бронирование завершено
func (b *Booking) IsFinished() bool {
	return b.Status == StatusCompleted || b.Status == StatusNoShow
}

// CanTransitionTo проверяет допустимость перехода статуса
// Жизненный цикл: pending/confirmed -> in_progress -> completed,
// pending/confirmed -> cancelled | no_show
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusInProgress ||
			next == StatusCancelled || next == StatusNoShow
	case StatusConfirmed:
		return next == StatusInProgress || next == StatusCancelled || next == StatusNoShow
	case StatusInProgress:
		return next == StatusCompleted
	default:
		return false
	}
}

// StoreBookingsFilter фильтр для получения бронирований магазина
type StoreBookingsFilter struct {
	StoreID         int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и no-show
}
