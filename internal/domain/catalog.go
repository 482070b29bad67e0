package domain

import (
	"time"

	"github.com/okettle/marketplace-booking/pkg/types"
)

// Store магазин маркетплейса — операционная единица с собственным календарём
// OpeningTime/ClosingTime могут отсутствовать (магазин не настроил расписание) —
// в этом случае сетка слотов пустая
type Store struct {
	ID             int64
	MerchantID     int64
	Name           string
	OpeningTime    *types.TimeString
	ClosingTime    *types.TimeString
	WorkingDaysRaw string // Сырое значение из БД: JSON-список или строка через запятую
	BookingEnabled bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasOperatingHours возвращает true, если у магазина задано валидное расписание часов
func (s *Store) HasOperatingHours() bool {
	if s.OpeningTime == nil || s.ClosingTime == nil {
		return false
	}
	if s.OpeningTime.Validate() != nil || s.ClosingTime.Validate() != nil {
		return false
	}
	return s.OpeningTime.IsBefore(*s.ClosingTime)
}

// Service бронируемая услуга магазина
// Параметры слотов (длительность, буфер, вместимость, окно бронирования)
// живут прямо на услуге
type Service struct {
	ID                    int64
	StoreID               int64
	Name                  string
	Price                 *float64
	DurationMinutes       int
	BufferMinutes         int
	MaxConcurrentBookings int
	MinAdvanceMinutes     int // Минимальное время до начала слота
	MaxAdvanceMinutes     int // Максимальное время до начала слота, 0 = без ограничения
	Active                bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// SlotStepMinutes возвращает шаг сетки слотов: длительность плюс буфер
func (s *Service) SlotStepMinutes() int {
	return s.DurationMinutes + s.BufferMinutes
}

// HasMaxAdvanceLimit возвращает true, если задано ограничение дальности бронирования
func (s *Service) HasMaxAdvanceLimit() bool {
	return s.MaxAdvanceMinutes > 0
}

// Offer скидочная обёртка ровно над одной услугой
// Доступность слотов оффера полностью делегируется конфигурации услуги;
// бронирования через разные офферы одной услуги конкурируют за общую вместимость
type Offer struct {
	ID              int64
	ServiceID       int64
	Title           string
	DiscountPercent float64
	Active          bool
	ExpiresAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsExpired возвращает true, если срок действия оффера истёк
func (o *Offer) IsExpired(now time.Time) bool {
	return o.ExpiresAt != nil && !o.ExpiresAt.After(now)
}

// DiscountedPrice применяет скидку оффера к цене услуги
func (o *Offer) DiscountedPrice(price float64) float64 {
	if o.DiscountPercent <= 0 {
		return price
	}
	return price * (1 - o.DiscountPercent/100)
}

// Staff сотрудник магазина
// Назначается на услуги (многие-ко-многим); личный календарь сотрудника
// имеет вместимость 1 — человек не может обслуживать два пересекающихся бронирования
type Staff struct {
	ID        int64
	StoreID   int64
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
