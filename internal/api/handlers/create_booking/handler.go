package create_booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okettle/marketplace-booking/internal/api/handlers"
	"github.com/okettle/marketplace-booking/internal/api/middleware"
	createBooking "github.com/okettle/marketplace-booking/internal/usecase/create_booking"
)

const (
	msgInvalidBody      = "invalid request body"
	msgInvalidDateTime  = "invalid date or startTime format, expected YYYY-MM-DD and HH:MM"
	msgStoreNotFound    = "store not found"
	msgServiceNotFound  = "service not found"
	msgOfferNotFound    = "offer not found"
	msgStaffNotFound    = "staff member not found"
	msgStaffNotAssigned = "staff member is not assigned to this service"
	msgSlotNotAvailable = "slot is not available"
)

// errMessagePrefix префикс sentinel-ошибок usecase, отрезаемый
// перед отправкой сообщения клиенту
const errMessagePrefix = "create_booking: "

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date/time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, err, userID)
		return
	}

	h.logger.Info("POST /bookings - Booking created: id=%d, reference=%s, user=%d",
		result.ID, result.Reference, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// respondError маппит ошибки use case на HTTP ответы
// Исчерпанная вместимость слота — это конфликт (409), а не бизнес-отказ:
// клиент должен перечитать сетку слотов и выбрать другой
func (h *Handler) respondError(w http.ResponseWriter, err error, userID int64) {
	switch {
	case errors.Is(err, createBooking.ErrSlotNotAvailable):
		h.logger.Warn("POST /bookings - Slot not available: user=%d", userID)
		handlers.RespondConflict(w, msgSlotNotAvailable)

	case errors.Is(err, createBooking.ErrStoreNotFound):
		h.logger.Warn("POST /bookings - Store not found: user=%d", userID)
		handlers.RespondNotFound(w, msgStoreNotFound)

	case errors.Is(err, createBooking.ErrServiceNotFound):
		h.logger.Warn("POST /bookings - Service not found: user=%d", userID)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, createBooking.ErrOfferNotFound):
		h.logger.Warn("POST /bookings - Offer not found: user=%d", userID)
		handlers.RespondNotFound(w, msgOfferNotFound)

	case errors.Is(err, createBooking.ErrStaffNotFound):
		h.logger.Warn("POST /bookings - Staff not found: user=%d", userID)
		handlers.RespondNotFound(w, msgStaffNotFound)

	case errors.Is(err, createBooking.ErrStaffNotAssigned):
		h.logger.Warn("POST /bookings - Staff not assigned: user=%d", userID)
		handlers.RespondBadRequest(w, msgStaffNotAssigned)

	case errors.Is(err, createBooking.ErrOfferExpired),
		errors.Is(err, createBooking.ErrBookingDisabled),
		errors.Is(err, createBooking.ErrStoreClosed),
		errors.Is(err, createBooking.ErrScheduleMissing),
		errors.Is(err, createBooking.ErrDateInPast),
		errors.Is(err, createBooking.ErrDateTooFarInFuture),
		errors.Is(err, createBooking.ErrTooLateToBook),
		errors.Is(err, createBooking.ErrInvalidTimeSlot):
		h.logger.Warn("POST /bookings - Business rule violation: user=%d, error=%v", userID, err)
		handlers.RespondBusinessRuleViolation(w, clientMessage(err))

	case errors.Is(err, createBooking.ErrInvalidInput):
		h.logger.Warn("POST /bookings - Invalid input: user=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, clientMessage(err))

	default:
		h.logger.Error("POST /bookings - Failed to create booking: user=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
	}
}

// clientMessage убирает префикс пакета из текста ошибки
func clientMessage(err error) string {
	return strings.TrimPrefix(err.Error(), errMessagePrefix)
}
