package create_booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/okettle/marketplace-booking/internal/domain"
	"github.com/okettle/marketplace-booking/internal/integrations/notifyservice"
)

// UseCase use case для создания бронирования
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции
// с блокировкой строк леджера (FOR UPDATE) — два конкурентных запроса
// на последнее место не могут оба пройти проверку
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	notifyClient NotifyServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// notifyClient может быть nil, если сервис уведомлений не настроен
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	notifyClient NotifyServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		notifyClient: notifyClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, entity=%s/%d, date=%s, time=%s, staff=%v",
		req.UserID, req.EntityType, req.EntityID, req.Date.Format(domain.DateFormat), req.StartTime, req.StaffID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время
	now := uc.timeProvider.Now()

	// 3. Разрешаем сущность: оффер -> услуга -> магазин
	resolved, err := resolveEntity(ctx, uc.catalogRepo, req.EntityType, req.EntityID, now)
	if err != nil {
		uc.logger.Warn("CreateBooking: entity resolution failed for %s/%d: %v",
			req.EntityType, req.EntityID, err)
		return nil, err
	}

	store := resolved.Store
	service := resolved.Service

	// 4. Календарь магазина: прошлое, рабочие дни, закрытые дни
	if err := validateCalendar(store, req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: calendar validation failed for store=%d: %v", store.ID, err)
		return nil, err
	}

	// 5. Слот помещается в часы работы
	if !store.HasOperatingHours() {
		uc.logger.Warn("CreateBooking: store=%d has no operating hours configured", store.ID)
		return nil, ErrScheduleMissing
	}
	if err := validateWithinHours(store, req.StartTime, service.DurationMinutes); err != nil {
		uc.logger.Warn("CreateBooking: time slot validation failed: %v", err)
		return nil, err
	}

	// 6. Окно бронирования услуги
	if err := validateBookingWindow(req.Date, req.StartTime, now, service.MinAdvanceMinutes, service.MaxAdvanceMinutes); err != nil {
		uc.logger.Warn("CreateBooking: booking window validation failed: %v", err)
		return nil, err
	}

	// 7. Сотрудник, если указан
	if req.StaffID != nil {
		if _, err := resolveStaff(ctx, uc.catalogRepo, *req.StaffID, service); err != nil {
			uc.logger.Warn("CreateBooking: staff validation failed for staff=%d: %v", *req.StaffID, err)
			return nil, err
		}
	}

	// 8. Scope подсчёта конфликтов
	scope, err := buildScope(ctx, uc.catalogRepo, service, req.StaffID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to build scope: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 9. Критическая секция: перечитываем леджер под блокировкой и вставляем
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Активные бронирования scope на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByScopeAndDate(txCtx, scope, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 9.2. Проверяем вместимость слота
		overlappingCount, err := countOverlappingBookings(req.StartTime, service.DurationMinutes, bookings)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to count overlapping bookings: %v", ErrInternal, err)
		}

		if overlappingCount >= scope.Capacity {
			uc.logger.Warn("CreateBooking: slot not available, %d/%d spots taken",
				overlappingCount, scope.Capacity)
			return ErrSlotNotAvailable
		}

		uc.logger.Info("CreateBooking: slot available, %d/%d spots taken",
			overlappingCount, scope.Capacity)

		// 9.3. Создаем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			Reference:       newBookingReference(),
			UserID:          req.UserID,
			StoreID:         store.ID,
			ServiceID:       service.ID,
			StaffID:         req.StaffID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			ServicePrice:    bookingPrice(service, resolved.Offer),
			Notes:           req.Notes,
		}
		if resolved.Offer != nil {
			booking.OfferID = &resolved.Offer.ID
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d reference=%s", result.ID, result.Reference)

	// 10. Уведомление — вне транзакции, ошибка не влияет на результат
	uc.notifyBookingCreated(ctx, result)

	endTime, err := result.EndTime()
	if err != nil {
		uc.logger.Error("CreateBooking: failed to calculate end time for booking id=%d: %v", result.ID, err)
		return nil, fmt.Errorf("%w: failed to calculate end time: %v", ErrInternal, err)
	}

	return &Response{
		ID:              result.ID,
		Reference:       result.Reference,
		UserID:          result.UserID,
		StoreID:         result.StoreID,
		ServiceID:       result.ServiceID,
		OfferID:         result.OfferID,
		StaffID:         result.StaffID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		EndTime:         endTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// notifyBookingCreated отправляет событие в сервис уведомлений
// Сбой отправки только логируется — бронирование уже создано
func (uc *UseCase) notifyBookingCreated(ctx context.Context, booking *domain.Booking) {
	if uc.notifyClient == nil {
		return
	}

	event := notifyservice.BookingCreatedEvent{
		BookingID:   booking.ID,
		Reference:   booking.Reference,
		UserID:      booking.UserID,
		StoreID:     booking.StoreID,
		ServiceName: booking.ServiceName,
		BookingDate: booking.BookingDate.Format(domain.DateFormat),
		StartTime:   booking.StartTime.String(),
	}

	if err := uc.notifyClient.SendBookingCreated(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to send notification for booking id=%d: %v", booking.ID, err)
	}
}

// bookingPrice вычисляет цену бронирования с учётом скидки оффера
func bookingPrice(service *domain.Service, offer *domain.Offer) float64 {
	price := 0.0
	if service.Price != nil {
		price = *service.Price
	}
	if offer != nil {
		price = offer.DiscountedPrice(price)
	}
	return price
}

// newBookingReference генерирует публичный код бронирования вида BK-3F7A21C9
func newBookingReference() string {
	id := uuid.New().String()
	return "BK-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}
