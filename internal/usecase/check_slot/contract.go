package check_slot

import (
	"context"
	"time"

	"github.com/okettle/marketplace-booking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByScopeAndDate(ctx context.Context, scope domain.BookingScope, date time.Time) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetStore(ctx context.Context, id int64) (*domain.Store, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetOffer(ctx context.Context, id int64) (*domain.Offer, error)
	GetStaff(ctx context.Context, id int64) (*domain.Staff, error)
	ListServiceIDsByStore(ctx context.Context, storeID int64) ([]int64, error)
	ListOfferIDsByServices(ctx context.Context, serviceIDs []int64) ([]int64, error)
	IsStaffAssignedToService(ctx context.Context, staffID, serviceID int64) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
