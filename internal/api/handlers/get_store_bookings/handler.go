package get_store_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/okettle/marketplace-booking/internal/api/handlers"
	"github.com/okettle/marketplace-booking/internal/api/middleware"
	"github.com/okettle/marketplace-booking/internal/service/bookings"
)

const (
	msgInvalidStoreID = "invalid store ID"
	msgInvalidFilter  = "invalid filter parameters"
	msgInvalidDate    = "invalid date format, expected YYYY-MM-DD"
	msgStoreNotFound  = "store not found"
	msgAccessDenied   = "access denied"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stores/{storeId}/bookings
// Query params: date | startDate+endDate, status, includeInactive
// Доступно только мерчанту магазина
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	vars := mux.Vars(r)
	storeID, err := strconv.ParseInt(vars["storeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /stores/{id}/bookings - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	req, err := ToServiceRequest(userID, storeID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /stores/{id}/bookings - Invalid date filter: store=%d, error=%v", storeID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetStoreBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrStoreNotFound):
			h.logger.Warn("GET /stores/{id}/bookings - Store not found: store=%d", storeID)
			handlers.RespondNotFound(w, msgStoreNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /stores/{id}/bookings - Access denied: store=%d, user=%d", storeID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /stores/{id}/bookings - Invalid filter: store=%d, error=%v", storeID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /stores/{id}/bookings - Failed to get bookings: store=%d, error=%v", storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stores/{id}/bookings - Retrieved %d bookings for store=%d", len(result.Bookings), storeID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
