package create_booking

import (
	"time"

	"github.com/okettle/marketplace-booking/pkg/types"
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

// Request модель запроса на создание бронирования
type Request struct {
	UserID     int64
	EntityType EntityType
	EntityID   int64
	Date       time.Time
	StartTime  types.TimeString
	StaffID    *int64
	Notes      *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	Reference       string
	UserID          int64
	StoreID         int64
	ServiceID       int64
	OfferID         *int64
	StaffID         *int64
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string
	ServiceName     string
	ServicePrice    float64
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
