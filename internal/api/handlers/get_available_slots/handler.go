package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/okettle/marketplace-booking/internal/api/handlers"
	"github.com/okettle/marketplace-booking/internal/api/middleware"
	getAvailableSlots "github.com/okettle/marketplace-booking/internal/usecase/get_available_slots"
)

const (
	msgInvalidEntityType = "entityType must be 'service' or 'offer'"
	msgInvalidEntityID   = "invalid entity ID"
	msgInvalidStaffID    = "invalid staff ID"
	msgMissingDate       = "date is required"
	msgInvalidDate       = "invalid date format, expected YYYY-MM-DD"
	msgStoreNotFound     = "store not found"
	msgServiceNotFound   = "service not found"
	msgOfferNotFound     = "offer not found"
	msgStaffNotFound     = "staff member not found"
	msgStaffNotAssigned  = "staff member is not assigned to this service"
)

// errMessagePrefix префикс sentinel-ошибок usecase, отрезаемый
// перед отправкой сообщения клиенту
const errMessagePrefix = "get_available_slots: "

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/{entityType}/{entityId}/available-slots
// Query params: date (required, YYYY-MM-DD), staffId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	vars := mux.Vars(r)

	entityType := vars["entityType"]
	if entityType != "service" && entityType != "offer" {
		h.logger.Warn("GET /{entityType}/{id}/available-slots - Invalid entity type: %s", entityType)
		handlers.RespondBadRequest(w, msgInvalidEntityType)
		return
	}

	entityID, err := strconv.ParseInt(vars["entityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /{entityType}/{id}/available-slots - Invalid entity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntityID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /{entityType}/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	var staffID *int64
	if staffIDStr := r.URL.Query().Get("staffId"); staffIDStr != "" {
		id, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /{entityType}/{id}/available-slots - Invalid staff ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		staffID = &id
	}

	useCaseReq, err := ToUseCaseRequest(userID, entityType, entityID, dateStr, staffID)
	if err != nil {
		h.logger.Warn("GET /{entityType}/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, err, entityType, entityID)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /{entityType}/{id}/available-slots - Slots retrieved successfully: entity=%s/%d, date=%s, slots_count=%d",
		entityType, entityID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}

// respondError маппит ошибки use case на HTTP ответы
// Отказы по бизнес-правилам возвращаются как 400 с флагом
// businessRuleViolation и сообщением для пользователя
func (h *Handler) respondError(w http.ResponseWriter, err error, entityType string, entityID int64) {
	switch {
	case errors.Is(err, getAvailableSlots.ErrStoreNotFound):
		h.logger.Warn("GET /{entityType}/{id}/available-slots - Store not found: entity=%s/%d", entityType, entityID)
		handlers.RespondNotFound(w, msgStoreNotFound)

	case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
		h.logger.Warn("GET /{entityType}/{id}/available-slots - Service not found: entity=%s/%d", entityType, entityID)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, getAvailableSlots.ErrOfferNotFound):
		h.logger.Warn("GET /{entityType}/{id}/available-slots - Offer not found: entity=%s/%d", entityType, entityID)
		handlers.RespondNotFound(w, msgOfferNotFound)

	case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
		h.logger.Warn("GET /{entityType}/{id}/available-slots - Staff not found: entity=%s/%d", entityType, entityID)
		handlers.RespondNotFound(w, msgStaffNotFound)

	case errors.Is(err, getAvailableSlots.ErrStaffNotAssigned):
		h.logger.Warn("GET /{entityType}/{id}/available-slots - Staff not assigned: entity=%s/%d", entityType, entityID)
		handlers.RespondBadRequest(w, msgStaffNotAssigned)

	case errors.Is(err, getAvailableSlots.ErrOfferExpired),
		errors.Is(err, getAvailableSlots.ErrBookingDisabled),
		errors.Is(err, getAvailableSlots.ErrDateInPast),
		errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture),
		errors.Is(err, getAvailableSlots.ErrStoreClosed),
		errors.Is(err, getAvailableSlots.ErrScheduleMissing):
		h.logger.Warn("GET /{entityType}/{id}/available-slots - Business rule violation: entity=%s/%d, error=%v",
			entityType, entityID, err)
		handlers.RespondBusinessRuleViolation(w, clientMessage(err))

	case errors.Is(err, getAvailableSlots.ErrInvalidInput):
		h.logger.Warn("GET /{entityType}/{id}/available-slots - Invalid input: entity=%s/%d, error=%v",
			entityType, entityID, err)
		handlers.RespondBadRequest(w, clientMessage(err))

	default:
		h.logger.Error("GET /{entityType}/{id}/available-slots - Failed to get slots: entity=%s/%d, error=%v",
			entityType, entityID, err)
		handlers.RespondInternalError(w)
	}
}

// clientMessage убирает префикс пакета из текста ошибки
func clientMessage(err error) string {
	return strings.TrimPrefix(err.Error(), errMessagePrefix)
}
