package get_available_slots

import (
	"context"
	"fmt"

	"github.com/okettle/marketplace-booking/internal/domain"
)

// UseCase use case для получения доступных слотов бронирования
// Композиция: календарь магазина -> сетка слотов -> леджер бронирований ->
// калькулятор доступности. Путь только для чтения, без блокировок —
// авторитетная перепроверка происходит в create_booking под FOR UPDATE
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, entity=%s/%d, date=%s, staff=%v",
		req.UserID, req.EntityType, req.EntityID, req.Date.Format(domain.DateFormat), req.StaffID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время
	now := uc.timeProvider.Now()

	// 3. Разрешаем сущность: оффер -> услуга -> магазин, с проверкой предусловий
	resolved, err := resolveEntity(ctx, uc.catalogRepo, req.EntityType, req.EntityID, now)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: entity resolution failed for %s/%d: %v",
			req.EntityType, req.EntityID, err)
		return nil, err
	}

	store := resolved.Store
	service := resolved.Service

	// 4. Календарь магазина: прошлое, рабочие дни, закрытые дни (fail closed)
	if _, err := validateCalendar(store, req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: calendar validation failed for store=%d: %v", store.ID, err)
		return nil, err
	}

	// 5. Окно бронирования услуги
	if err := validateMaxAdvance(req.Date, now, service.MaxAdvanceMinutes); err != nil {
		uc.logger.Warn("GetAvailableSlots: date beyond booking window for service=%d: %v", service.ID, err)
		return nil, err
	}

	// 6. Сотрудник, если указан
	if req.StaffID != nil {
		if _, err := resolveStaff(ctx, uc.catalogRepo, *req.StaffID, service); err != nil {
			uc.logger.Warn("GetAvailableSlots: staff validation failed for staff=%d: %v", *req.StaffID, err)
			return nil, err
		}
	}

	rules := BookingRules{
		DurationMinutes:       service.DurationMinutes,
		BufferMinutes:         service.BufferMinutes,
		MaxConcurrentBookings: service.MaxConcurrentBookings,
		MinAdvanceMinutes:     service.MinAdvanceMinutes,
		MaxAdvanceMinutes:     service.MaxAdvanceMinutes,
		Scope:                 domain.ScopeStoreWide,
	}
	if req.StaffID != nil {
		rules.Scope = domain.ScopePerStaff
	}

	// 7. Часы работы не заданы — пустая сетка, не ошибка
	if !store.HasOperatingHours() {
		uc.logger.Warn("GetAvailableSlots: store=%d has no operating hours configured", store.ID)
		return uc.emptyResponse(req, service, rules), nil
	}

	// 8. Генерируем сетку слотов
	timeSlots, err := generateTimeSlots(
		*store.OpeningTime,
		*store.ClosingTime,
		service.DurationMinutes,
		service.BufferMinutes,
		req.Date,
		now,
		service.MinAdvanceMinutes,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 9. Строим scope подсчёта конфликтов
	scope, err := buildScope(ctx, uc.catalogRepo, service, req.StaffID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build scope: %v", err)
		return nil, err
	}

	// 10. Леджер: активные бронирования scope на дату
	bookings, err := uc.bookingRepo.GetByScopeAndDate(ctx, scope, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 11. Вычисляем занятость каждого слота
	slots := calculateAvailableSpots(timeSlots, service.DurationMinutes, bookings, scope.Capacity)

	uc.logger.Info("GetAvailableSlots: generated %d slots for %s/%d, date=%s, scope=%s",
		len(slots), req.EntityType, req.EntityID, req.Date.Format(domain.DateFormat), scope.Kind)

	return &Response{
		Date:       req.Date,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		ServiceID:  service.ID,
		StaffID:    req.StaffID,
		Slots:      slots,
		Rules:      rules,
	}, nil
}

// emptyResponse ответ с пустой сеткой слотов
func (uc *UseCase) emptyResponse(req *Request, service *domain.Service, rules BookingRules) *Response {
	return &Response{
		Date:       req.Date,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		ServiceID:  service.ID,
		StaffID:    req.StaffID,
		Slots:      []domain.AvailableSlot{},
		Rules:      rules,
	}
}
