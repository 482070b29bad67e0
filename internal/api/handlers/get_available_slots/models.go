package get_available_slots

import (
	"time"

	"github.com/okettle/marketplace-booking/internal/domain"
	getAvailableSlots "github.com/okettle/marketplace-booking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
// availableSlots — человекочитаемые времена начала слотов со свободными
// местами, detailedSlots — полная сетка с занятостью
type AvailableSlotsResponse struct {
	Success        bool            `json:"success"`
	Date           string          `json:"date"`
	EntityType     string          `json:"entityType"`
	EntityID       int64           `json:"entityId"`
	ServiceID      int64           `json:"serviceId"`
	StaffID        *int64          `json:"staffId,omitempty"`
	AvailableSlots []string        `json:"availableSlots"`
	DetailedSlots  []DetailedSlot  `json:"detailedSlots"`
	BookingRules   BookingRulesDTO `json:"bookingRules"`
}

// DetailedSlot модель временного слота с занятостью
type DetailedSlot struct {
	StartTime       string `json:"startTime"` // "09:00"
	EndTime         string `json:"endTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Available       int    `json:"available"`
	Total           int    `json:"total"`
	Booked          int    `json:"booked"`
	Bookable        bool   `json:"bookable"`
}

// BookingRulesDTO правила бронирования услуги
type BookingRulesDTO struct {
	DurationMinutes       int    `json:"durationMinutes"`
	BufferMinutes         int    `json:"bufferMinutes"`
	MaxConcurrentBookings int    `json:"maxConcurrentBookings"`
	MinAdvanceMinutes     int    `json:"minAdvanceMinutes"`
	MaxAdvanceMinutes     int    `json:"maxAdvanceMinutes,omitempty"`
	Scope                 string `json:"scope"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	availableSlots := make([]string, 0, len(resp.Slots))
	detailedSlots := make([]DetailedSlot, len(resp.Slots))

	for i, slot := range resp.Slots {
		detailedSlots[i] = DetailedSlot{
			StartTime:       slot.StartTime.String(),
			EndTime:         slot.EndTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
			Total:           slot.Total,
			Booked:          slot.Booked,
			Bookable:        slot.IsBookable(),
		}

		if slot.IsBookable() {
			availableSlots = append(availableSlots, slot.StartTime.Format12Hour())
		}
	}

	return &AvailableSlotsResponse{
		Success:        true,
		Date:           resp.Date.Format(domain.DateFormat),
		EntityType:     string(resp.EntityType),
		EntityID:       resp.EntityID,
		ServiceID:      resp.ServiceID,
		StaffID:        resp.StaffID,
		AvailableSlots: availableSlots,
		DetailedSlots:  detailedSlots,
		BookingRules: BookingRulesDTO{
			DurationMinutes:       resp.Rules.DurationMinutes,
			BufferMinutes:         resp.Rules.BufferMinutes,
			MaxConcurrentBookings: resp.Rules.MaxConcurrentBookings,
			MinAdvanceMinutes:     resp.Rules.MinAdvanceMinutes,
			MaxAdvanceMinutes:     resp.Rules.MaxAdvanceMinutes,
			Scope:                 string(resp.Rules.Scope),
		},
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(userID int64, entityType string, entityID int64, dateStr string, staffID *int64) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		UserID:     userID,
		EntityType: getAvailableSlots.EntityType(entityType),
		EntityID:   entityID,
		Date:       date,
		StaffID:    staffID,
	}, nil
}
