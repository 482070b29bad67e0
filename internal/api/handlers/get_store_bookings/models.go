package get_store_bookings

import (
	"net/url"
	"time"

	"github.com/okettle/marketplace-booking/internal/domain"
	"github.com/okettle/marketplace-booking/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров
// Параметр date задаёт один день; startDate/endDate — период.
// Одновременно указывать date и период нельзя
func ToServiceRequest(userID, storeID int64, query url.Values) (*models.GetStoreBookingsRequest, error) {
	req := &models.GetStoreBookingsRequest{
		UserID:  userID,
		StoreID: storeID,
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		if startStr := query.Get("startDate"); startStr != "" {
			start, err := time.Parse(domain.DateFormat, startStr)
			if err != nil {
				return nil, err
			}
			req.StartDate = &start
		}
		if endStr := query.Get("endDate"); endStr != "" {
			end, err := time.Parse(domain.DateFormat, endStr)
			if err != nil {
				return nil, err
			}
			req.EndDate = &end
		}
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	return req, nil
}
