package check_slot

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

// Request модель запроса на проверку доступности слота
type Request struct {
	UserID     int64
	EntityType EntityType
	EntityID   int64
	Date       time.Time
	StartTime  types.TimeString
	StaffID    *int64
}

// Response результат проверки доступности слота
// Ответ информационный: авторитетная проверка выполняется заново
// под блокировкой в момент создания бронирования
type Response struct {
	Available      bool
	RemainingSlots int
	TotalSlots     int
	Reason         string // Заполнен, когда Available=false по бизнес-правилу
}
