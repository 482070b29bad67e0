package check_slot

import (
	"time"

	"github.com/okettle/marketplace-booking/internal/domain"
	checkSlot "github.com/okettle/marketplace-booking/internal/usecase/check_slot"
	"github.com/okettle/marketplace-booking/pkg/types"
)

// SlotAvailabilityResponse HTTP response model
// Ответ информационный: авторитетная проверка выполняется заново
// при создании бронирования
type SlotAvailabilityResponse struct {
	Available      bool   `json:"available"`
	RemainingSlots int    `json:"remainingSlots"`
	TotalSlots     int    `json:"totalSlots"`
	Reason         string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkSlot.Response) *SlotAvailabilityResponse {
	return &SlotAvailabilityResponse{
		Available:      resp.Available,
		RemainingSlots: resp.RemainingSlots,
		TotalSlots:     resp.TotalSlots,
		Reason:         resp.Reason,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(userID int64, entityType string, entityID int64, dateStr, timeStr string, staffID *int64) (*checkSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return nil, err
	}

	return &checkSlot.Request{
		UserID:     userID,
		EntityType: checkSlot.EntityType(entityType),
		EntityID:   entityID,
		Date:       date,
		StartTime:  startTime,
		StaffID:    staffID,
	}, nil
}
