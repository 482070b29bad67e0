package create_booking

import (
	"time"

	"github.com/okettle/marketplace-booking/internal/domain"
	createBooking "github.com/okettle/marketplace-booking/internal/usecase/create_booking"
	"github.com/okettle/marketplace-booking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	EntityType string  `json:"entityType"` // service | offer
	EntityID   int64   `json:"entityId"`
	Date       string  `json:"date"`      // YYYY-MM-DD
	StartTime  string  `json:"startTime"` // HH:MM
	StaffID    *int64  `json:"staffId,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Success         bool    `json:"success"`
	ID              int64   `json:"id"`
	Reference       string  `json:"reference"`
	UserID          int64   `json:"userId"`
	StoreID         int64   `json:"storeId"`
	ServiceID       int64   `json:"serviceId"`
	OfferID         *int64  `json:"offerId,omitempty"`
	StaffID         *int64  `json:"staffId,omitempty"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:     userID,
		EntityType: createBooking.EntityType(r.EntityType),
		EntityID:   r.EntityID,
		Date:       date,
		StartTime:  startTime,
		StaffID:    r.StaffID,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Success:         true,
		ID:              resp.ID,
		Reference:       resp.Reference,
		UserID:          resp.UserID,
		StoreID:         resp.StoreID,
		ServiceID:       resp.ServiceID,
		OfferID:         resp.OfferID,
		StaffID:         resp.StaffID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
}
