package check_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/okettle/marketplace-booking/internal/api/handlers"
	"github.com/okettle/marketplace-booking/internal/api/middleware"
	checkSlot "github.com/okettle/marketplace-booking/internal/usecase/check_slot"
)

const (
	msgInvalidEntityType = "entityType must be 'service' or 'offer'"
	msgInvalidEntityID   = "invalid entity ID"
	msgInvalidStaffID    = "invalid staff ID"
	msgMissingDate       = "date is required"
	msgMissingTime       = "time is required"
	msgInvalidParams     = "invalid date or time format, expected YYYY-MM-DD and HH:MM"
	msgStoreNotFound     = "store not found"
	msgServiceNotFound   = "service not found"
	msgOfferNotFound     = "offer not found"
	msgStaffNotFound     = "staff member not found"
	msgStaffNotAssigned  = "staff member is not assigned to this service"
)

type Handler struct {
	useCase CheckSlotUseCase
	logger  Logger
}

func NewHandler(useCase CheckSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/{entityType}/{entityId}/slot-availability
// Query params: date (required, YYYY-MM-DD), time (required, HH:MM), staffId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	vars := mux.Vars(r)

	entityType := vars["entityType"]
	if entityType != "service" && entityType != "offer" {
		h.logger.Warn("GET /{entityType}/{id}/slot-availability - Invalid entity type: %s", entityType)
		handlers.RespondBadRequest(w, msgInvalidEntityType)
		return
	}

	entityID, err := strconv.ParseInt(vars["entityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /{entityType}/{id}/slot-availability - Invalid entity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntityID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /{entityType}/{id}/slot-availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	timeStr := r.URL.Query().Get("time")
	if timeStr == "" {
		h.logger.Warn("GET /{entityType}/{id}/slot-availability - Missing time")
		handlers.RespondBadRequest(w, msgMissingTime)
		return
	}

	var staffID *int64
	if staffIDStr := r.URL.Query().Get("staffId"); staffIDStr != "" {
		id, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /{entityType}/{id}/slot-availability - Invalid staff ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		staffID = &id
	}

	useCaseReq, err := ToUseCaseRequest(userID, entityType, entityID, dateStr, timeStr, staffID)
	if err != nil {
		h.logger.Warn("GET /{entityType}/{id}/slot-availability - Invalid date/time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkSlot.ErrStoreNotFound):
			handlers.RespondNotFound(w, msgStoreNotFound)
		case errors.Is(err, checkSlot.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, checkSlot.ErrOfferNotFound):
			handlers.RespondNotFound(w, msgOfferNotFound)
		case errors.Is(err, checkSlot.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)
		case errors.Is(err, checkSlot.ErrStaffNotAssigned):
			handlers.RespondBadRequest(w, msgStaffNotAssigned)
		case errors.Is(err, checkSlot.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /{entityType}/{id}/slot-availability - Failed to check slot: entity=%s/%d, error=%v",
				entityType, entityID, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("GET /{entityType}/{id}/slot-availability - Request rejected: entity=%s/%d, error=%v",
			entityType, entityID, err)
		return
	}

	h.logger.Info("GET /{entityType}/{id}/slot-availability - Checked: entity=%s/%d, time=%s, available=%t",
		entityType, entityID, timeStr, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
