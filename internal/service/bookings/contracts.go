package bookings

import (
	"context"

	"github.com/okettle/marketplace-booking/internal/domain"
	"github.com/okettle/marketplace-booking/internal/integrations/notifyservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByStoreWithFilter(ctx context.Context, filter domain.StoreBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// CatalogRepository интерфейс репозитория каталога
// Используется для проверки прав: владелец магазина определяется по merchant_id
type CatalogRepository interface {
	GetStore(ctx context.Context, id int64) (*domain.Store, error)
}

// NotifyServiceClient интерфейс клиента сервиса уведомлений
// Может быть nil: уведомления не влияют на результат операции
type NotifyServiceClient interface {
	SendBookingCancelled(ctx context.Context, event notifyservice.BookingCancelledEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
