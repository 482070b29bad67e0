package get_available_slots

import (
	"time"

	"github.com/okettle/marketplace-booking/internal/domain"
)

// EntityType тип бронируемой сущности
type EntityType string

const (
	EntityService EntityType = "service"
	EntityOffer   EntityType = "offer"
)

// IsValid проверяет корректность типа сущности
func (t EntityType) IsValid() bool {
	return t == EntityService || t == EntityOffer
}

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID     int64      // ID пользователя (для логирования, не влияет на результат)
	EntityType EntityType // service или offer
	EntityID   int64      // ID услуги или оффера
	Date       time.Time  // Дата для получения слотов (без времени)
	StaffID    *int64     // Опционально: слоты личного календаря сотрудника
}

// Response модель ответа со списком слотов и правилами бронирования
type Response struct {
	Date       time.Time
	EntityType EntityType
	EntityID   int64
	ServiceID  int64 // Всегда заполнен: ID услуги, в том числе для оффера
	StaffID    *int64
	Slots      []domain.AvailableSlot
	Rules      BookingRules
}

// BookingRules правила бронирования услуги, возвращаемые вместе со слотами
type BookingRules struct {
	DurationMinutes       int
	BufferMinutes         int
	MaxConcurrentBookings int
	MinAdvanceMinutes     int
	MaxAdvanceMinutes     int // 0 = без ограничения
	Scope                 domain.ScopeKind
}
