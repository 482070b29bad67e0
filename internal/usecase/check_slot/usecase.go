package check_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okettle/marketplace-booking/internal/domain"
	catalogRepo "github.com/okettle/marketplace-booking/internal/infra/storage/catalog"
	"github.com/okettle/marketplace-booking/pkg/types"
)

// UseCase use case проверки доступности одного слота
// Читающий путь без блокировок: результат — подсказка для UI.
// Гарантию даёт только заблокированная перепроверка в create_booking
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

// Execute выполняет проверку доступности слота
// Бизнес-отказы (закрыто, прошлое, вне окна, вне часов работы) возвращаются
// как Available=false с причиной; ошибки поиска сущностей — как error
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckSlot: user=%d, entity=%s/%d, date=%s, time=%s, staff=%v",
		req.UserID, req.EntityType, req.EntityID, req.Date.Format(domain.DateFormat), req.StartTime, req.StaffID)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	// Разрешаем сущность
	service, store, err := uc.resolveEntity(ctx, req, now)
	if err != nil {
		return nil, err
	}
	if store == nil {
		// Предусловие нарушено (оффер истёк, бронирование выключено) — это отказ, не ошибка
		return unavailable("booking is not available for this entity"), nil
	}

	// Календарь магазина
	if reason := uc.checkCalendar(store, req.Date, now); reason != "" {
		return unavailable(reason), nil
	}

	// Часы работы и попадание слота в них
	if !store.HasOperatingHours() {
		return unavailable("store has no operating hours configured"), nil
	}
	if reason := checkWithinHours(store, req.StartTime, service.DurationMinutes); reason != "" {
		return unavailable(reason), nil
	}

	// Окно бронирования: минимальный и максимальный запас до начала слота
	if reason := checkBookingWindow(req.Date, req.StartTime, now, service.MinAdvanceMinutes, service.MaxAdvanceMinutes); reason != "" {
		return unavailable(reason), nil
	}

	// Сотрудник
	if req.StaffID != nil {
		if err := uc.checkStaff(ctx, *req.StaffID, service); err != nil {
			return nil, err
		}
	}

	// Scope и занятость
	scope, err := uc.buildScope(ctx, service, req.StaffID)
	if err != nil {
		return nil, err
	}

	bookings, err := uc.bookingRepo.GetByScopeAndDate(ctx, scope, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	booked := countOverlappingBookings(req.StartTime, service.DurationMinutes, bookings)
	remaining := scope.Capacity - booked
	if remaining < 0 {
		remaining = 0
	}

	resp := &Response{
		Available:      remaining > 0,
		RemainingSlots: remaining,
		TotalSlots:     scope.Capacity,
	}
	if !resp.Available {
		resp.Reason = "slot is fully booked"
	}

	uc.logger.Info("CheckSlot: entity=%s/%d time=%s available=%t (%d/%d)",
		req.EntityType, req.EntityID, req.StartTime, resp.Available, remaining, scope.Capacity)

	return resp, nil
}

// resolveEntity разрешает сущность; (nil, nil, nil) store означает бизнес-отказ
func (uc *UseCase) resolveEntity(ctx context.Context, req *Request, now time.Time) (*domain.Service, *domain.Store, error) {
	serviceID := req.EntityID

	if req.EntityType == EntityOffer {
		offer, err := uc.catalogRepo.GetOffer(ctx, req.EntityID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrOfferNotFound) {
				return nil, nil, ErrOfferNotFound
			}
			return nil, nil, fmt.Errorf("%w: failed to get offer: %v", ErrInternal, err)
		}
		if !offer.Active || offer.IsExpired(now) {
			return nil, nil, nil
		}
		serviceID = offer.ServiceID
	}

	service, err := uc.catalogRepo.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, nil, ErrServiceNotFound
		}
		return nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		return nil, nil, ErrServiceNotFound
	}

	store, err := uc.catalogRepo.GetStore(ctx, service.StoreID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStoreNotFound) {
			return nil, nil, ErrStoreNotFound
		}
		return nil, nil, fmt.Errorf("%w: failed to get store: %v", ErrInternal, err)
	}
	if !store.BookingEnabled {
		return service, nil, nil
	}

	return service, store, nil
}

// checkCalendar проверяет дату по календарю магазина, возвращая причину отказа
func (uc *UseCase) checkCalendar(store *domain.Store, date time.Time, now time.Time) string {
	if isDateInPast(date, now) {
		return "date is in the past"
	}

	workingDays, err := domain.ParseWorkingDays(store.WorkingDaysRaw)
	if err != nil {
		return "store has no working days configured"
	}

	weekday := date.Weekday()
	if !workingDays.Contains(weekday) {
		return fmt.Sprintf("store is closed on %s. Open days: %s", weekday, workingDays.FormatList())
	}

	return ""
}

// checkStaff проверяет сотрудника
func (uc *UseCase) checkStaff(ctx context.Context, staffID int64, service *domain.Service) error {
	staff, err := uc.catalogRepo.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			return ErrStaffNotFound
		}
		return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.Active || staff.StoreID != service.StoreID {
		return ErrStaffNotFound
	}

	assigned, err := uc.catalogRepo.IsStaffAssignedToService(ctx, staffID, service.ID)
	if err != nil {
		return fmt.Errorf("%w: failed to check staff assignment: %v", ErrInternal, err)
	}
	if !assigned {
		return ErrStaffNotAssigned
	}

	return nil
}

// buildScope строит область подсчёта конфликтов
func (uc *UseCase) buildScope(ctx context.Context, service *domain.Service, staffID *int64) (domain.BookingScope, error) {
	if staffID != nil {
		return domain.NewPerStaffScope(*staffID), nil
	}

	serviceIDs, err := uc.catalogRepo.ListServiceIDsByStore(ctx, service.StoreID)
	if err != nil {
		return domain.BookingScope{}, fmt.Errorf("%w: failed to list store services: %v", ErrInternal, err)
	}

	offerIDs, err := uc.catalogRepo.ListOfferIDsByServices(ctx, serviceIDs)
	if err != nil {
		return domain.BookingScope{}, fmt.Errorf("%w: failed to list service offers: %v", ErrInternal, err)
	}

	return domain.NewStoreWideScope(service.StoreID, serviceIDs, offerIDs, service.MaxConcurrentBookings), nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.EntityType.IsValid() {
		return fmt.Errorf("%w: entityType must be 'service' or 'offer'", ErrInvalidInput)
	}
	if req.EntityID <= 0 {
		return fmt.Errorf("%w: entityID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	return nil
}

// unavailable ответ-отказ с причиной
func unavailable(reason string) *Response {
	return &Response{Available: false, Reason: reason}
}

// checkWithinHours проверяет, что слот целиком помещается в часы работы
func checkWithinHours(store *domain.Store, startTime types.TimeString, durationMinutes int) string {
	if startTime.IsBefore(*store.OpeningTime) {
		return "slot starts before opening time"
	}

	slotEnd, err := startTime.AddMinutes(durationMinutes)
	if err != nil || slotEnd.IsAfter(*store.ClosingTime) {
		return "slot ends after closing time"
	}

	return ""
}

// checkBookingWindow проверяет минимальный и максимальный запас до начала слота
func checkBookingWindow(date time.Time, startTime types.TimeString, now time.Time, minAdvance, maxAdvance int) string {
	start := slotStartDateTime(date, startTime)
	minutesAhead := int(start.Sub(now).Minutes())

	if minutesAhead < minAdvance {
		return fmt.Sprintf("must book at least %d minutes in advance", minAdvance)
	}
	if maxAdvance > 0 && minutesAhead > maxAdvance {
		return fmt.Sprintf("can only book up to %d minutes in advance", maxAdvance)
	}

	return ""
}

// slotStartDateTime собирает полный момент начала слота из даты и времени
func slotStartDateTime(date time.Time, startTime types.TimeString) time.Time {
	var hours, minutes int
	fmt.Sscanf(startTime.String(), "%02d:%02d", &hours, &minutes)
	return time.Date(date.Year(), date.Month(), date.Day(), hours, minutes, 0, 0, date.Location())
}

// countOverlappingBookings подсчитывает активные бронирования, пересекающие слот
// Полуоткрытые интервалы: граничные случаи не считаются пересечением
func countOverlappingBookings(slotStart types.TimeString, durationMinutes int, bookings []*domain.Booking) int {
	slotEnd, err := slotStart.AddMinutes(durationMinutes)
	if err != nil {
		return 0
	}

	count := 0
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			continue
		}

		if booking.StartTime.IsBefore(slotEnd) && bookingEnd.IsAfter(slotStart) {
			count++
		}
	}

	return count
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
