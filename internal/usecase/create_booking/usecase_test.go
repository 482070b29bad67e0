package create_booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okettle/marketplace-booking/internal/domain"
	catalogRepo "github.com/okettle/marketplace-booking/internal/infra/storage/catalog"
	"github.com/okettle/marketplace-booking/internal/integrations/notifyservice"
	"github.com/okettle/marketplace-booking/pkg/ptr"
	"github.com/okettle/marketplace-booking/pkg/types"
)

// Фейки: репозиторий накапливает созданные бронирования, так что повторная
// попытка на тот же слот видит результат первой

type fakeBookingRepo struct {
	created []*domain.Booking
	nextID  int64
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	stored := *booking
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.created = append(f.created, &stored)
	return &stored, nil
}

func (f *fakeBookingRepo) GetByScopeAndDate(_ context.Context, scope domain.BookingScope, date time.Time) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.created {
		if !b.BookingDate.Equal(date) {
			continue
		}
		if scope.IsPerStaff() {
			if b.StaffID != nil && *b.StaffID == scope.StaffID {
				result = append(result, b)
			}
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type fakeCatalogRepo struct {
	stores      map[int64]*domain.Store
	services    map[int64]*domain.Service
	offers      map[int64]*domain.Offer
	staff       map[int64]*domain.Staff
	assignments map[int64]map[int64]bool
}

func (f *fakeCatalogRepo) GetStore(_ context.Context, id int64) (*domain.Store, error) {
	if store, ok := f.stores[id]; ok {
		return store, nil
	}
	return nil, catalogRepo.ErrStoreNotFound
}

func (f *fakeCatalogRepo) GetService(_ context.Context, id int64) (*domain.Service, error) {
	if service, ok := f.services[id]; ok {
		return service, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (f *fakeCatalogRepo) GetOffer(_ context.Context, id int64) (*domain.Offer, error) {
	if offer, ok := f.offers[id]; ok {
		return offer, nil
	}
	return nil, catalogRepo.ErrOfferNotFound
}

func (f *fakeCatalogRepo) GetStaff(_ context.Context, id int64) (*domain.Staff, error) {
	if member, ok := f.staff[id]; ok {
		return member, nil
	}
	return nil, catalogRepo.ErrStaffNotFound
}

func (f *fakeCatalogRepo) ListServiceIDsByStore(_ context.Context, storeID int64) ([]int64, error) {
	ids := make([]int64, 0)
	for id, service := range f.services {
		if service.StoreID == storeID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeCatalogRepo) ListOfferIDsByServices(_ context.Context, serviceIDs []int64) ([]int64, error) {
	ids := make([]int64, 0)
	for id, offer := range f.offers {
		for _, serviceID := range serviceIDs {
			if offer.ServiceID == serviceID {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

func (f *fakeCatalogRepo) IsStaffAssignedToService(_ context.Context, staffID, serviceID int64) (bool, error) {
	return f.assignments[staffID][serviceID], nil
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeNotifyClient struct {
	events []notifyservice.BookingCreatedEvent
}

func (f *fakeNotifyClient) SendBookingCreated(_ context.Context, event notifyservice.BookingCreatedEvent) error {
	f.events = append(f.events, event)
	return nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	bookNow  = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) // вторник
	bookDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)  // понедельник
)

func testCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		stores: map[int64]*domain.Store{
			1: {
				ID:             1,
				MerchantID:     100,
				Name:           "Main store",
				OpeningTime:    ptr.Ptr(types.TimeString("09:00")),
				ClosingTime:    ptr.Ptr(types.TimeString("17:00")),
				WorkingDaysRaw: `["monday","tuesday","wednesday","thursday","friday"]`,
				BookingEnabled: true,
			},
		},
		services: map[int64]*domain.Service{
			10: {
				ID:                    10,
				StoreID:               1,
				Name:                  "Haircut",
				Price:                 ptr.Ptr(50.0),
				DurationMinutes:       60,
				BufferMinutes:         0,
				MaxConcurrentBookings: 1,
				Active:                true,
			},
		},
		offers:      map[int64]*domain.Offer{},
		staff:       map[int64]*domain.Staff{},
		assignments: map[int64]map[int64]bool{},
	}
}

type testEnv struct {
	uc          *UseCase
	bookingRepo *fakeBookingRepo
	catalog     *fakeCatalogRepo
	txManager   *fakeTxManager
	notify      *fakeNotifyClient
}

func newTestEnv() *testEnv {
	env := &testEnv{
		bookingRepo: &fakeBookingRepo{},
		catalog:     testCatalog(),
		txManager:   &fakeTxManager{},
		notify:      &fakeNotifyClient{},
	}
	env.uc = NewUseCase(env.bookingRepo, env.catalog, env.txManager, env.notify, nopLogger{})
	env.uc.timeProvider = &fakeTimeProvider{now: bookNow}
	return env
}

func serviceRequest(startTime types.TimeString) *Request {
	return &Request{
		UserID:     42,
		EntityType: EntityService,
		EntityID:   10,
		Date:       bookDate,
		StartTime:  startTime,
	}
}

func TestExecuteCreatesConfirmedBooking(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), serviceRequest("10:00"))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 50.0, resp.ServicePrice)
	assert.Equal(t, int64(42), resp.UserID)

	// Публичный код вида BK-XXXXXXXX
	assert.Len(t, resp.Reference, 11)
	assert.True(t, strings.HasPrefix(resp.Reference, "BK-"))
	assert.Equal(t, strings.ToUpper(resp.Reference), resp.Reference)

	assert.Equal(t, 1, env.txManager.calls)
	require.Len(t, env.bookingRepo.created, 1)
}

func TestExecuteSendsNotification(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), serviceRequest("10:00"))
	require.NoError(t, err)

	require.Len(t, env.notify.events, 1)
	event := env.notify.events[0]
	assert.Equal(t, resp.ID, event.BookingID)
	assert.Equal(t, resp.Reference, event.Reference)
	assert.Equal(t, "2026-09-07", event.BookingDate)
	assert.Equal(t, "10:00", event.StartTime)
}

func TestExecuteWithoutNotifyClient(t *testing.T) {
	env := newTestEnv()
	env.uc.notifyClient = nil

	_, err := env.uc.Execute(context.Background(), serviceRequest("10:00"))
	assert.NoError(t, err)
}

func TestExecuteSecondBookingOnFullSlotRejected(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.Execute(context.Background(), serviceRequest("10:00"))
	require.NoError(t, err)

	// Вместимость 1: второй запрос на тот же слот видит первое бронирование
	_, err = env.uc.Execute(context.Background(), serviceRequest("10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Len(t, env.bookingRepo.created, 1)
}

func TestExecuteOverlappingSlotRejected(t *testing.T) {
	env := newTestEnv()
	env.catalog.services[10].DurationMinutes = 90

	_, err := env.uc.Execute(context.Background(), serviceRequest("10:00"))
	require.NoError(t, err)

	// 11:00-12:30 пересекается с 10:00-11:30
	_, err = env.uc.Execute(context.Background(), serviceRequest("11:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecuteAdjacentSlotsDoNotConflict(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.Execute(context.Background(), serviceRequest("10:00"))
	require.NoError(t, err)

	// Полуоткрытые интервалы: 11:00 начинается ровно в конце 10:00-11:00
	_, err = env.uc.Execute(context.Background(), serviceRequest("11:00"))
	assert.NoError(t, err)
	assert.Len(t, env.bookingRepo.created, 2)
}

func TestExecuteCapacityAllowsConcurrentBookings(t *testing.T) {
	env := newTestEnv()
	env.catalog.services[10].MaxConcurrentBookings = 2

	_, err := env.uc.Execute(context.Background(), serviceRequest("10:00"))
	require.NoError(t, err)

	_, err = env.uc.Execute(context.Background(), serviceRequest("10:00"))
	require.NoError(t, err)

	_, err = env.uc.Execute(context.Background(), serviceRequest("10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecuteOfferAppliesDiscount(t *testing.T) {
	env := newTestEnv()
	env.catalog.offers[20] = &domain.Offer{
		ID:              20,
		ServiceID:       10,
		Title:           "Haircut -20%",
		DiscountPercent: 20,
		Active:          true,
	}

	resp, err := env.uc.Execute(context.Background(), &Request{
		UserID:     42,
		EntityType: EntityOffer,
		EntityID:   20,
		Date:       bookDate,
		StartTime:  "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 40.0, resp.ServicePrice)
	require.NotNil(t, resp.OfferID)
	assert.Equal(t, int64(20), *resp.OfferID)
	assert.Equal(t, int64(10), resp.ServiceID)
}

func TestExecuteOfferCompetesWithDirectServiceBooking(t *testing.T) {
	env := newTestEnv()
	env.catalog.offers[20] = &domain.Offer{ID: 20, ServiceID: 10, Active: true}

	_, err := env.uc.Execute(context.Background(), serviceRequest("10:00"))
	require.NoError(t, err)

	_, err = env.uc.Execute(context.Background(), &Request{
		UserID:     43,
		EntityType: EntityOffer,
		EntityID:   20,
		Date:       bookDate,
		StartTime:  "10:00",
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecuteExpiredOfferRejected(t *testing.T) {
	env := newTestEnv()
	env.catalog.offers[20] = &domain.Offer{
		ID:        20,
		ServiceID: 10,
		Active:    true,
		ExpiresAt: ptr.Ptr(bookNow.AddDate(0, 0, -1)),
	}

	_, err := env.uc.Execute(context.Background(), &Request{
		UserID:     42,
		EntityType: EntityOffer,
		EntityID:   20,
		Date:       bookDate,
		StartTime:  "10:00",
	})
	assert.ErrorIs(t, err, ErrOfferExpired)
}

func TestExecuteStaffCalendarIndependentFromStoreCapacity(t *testing.T) {
	env := newTestEnv()
	env.catalog.services[10].MaxConcurrentBookings = 5
	env.catalog.staff[30] = &domain.Staff{ID: 30, StoreID: 1, Name: "Alex", Active: true}
	env.catalog.assignments[30] = map[int64]bool{10: true}

	staffReq := func() *Request {
		req := serviceRequest("10:00")
		req.StaffID = ptr.Ptr(int64(30))
		return req
	}

	_, err := env.uc.Execute(context.Background(), staffReq())
	require.NoError(t, err)

	// Личный календарь сотрудника всегда с вместимостью 1
	_, err = env.uc.Execute(context.Background(), staffReq())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecuteStaffNotAssignedRejected(t *testing.T) {
	env := newTestEnv()
	env.catalog.staff[30] = &domain.Staff{ID: 30, StoreID: 1, Name: "Alex", Active: true}

	req := serviceRequest("10:00")
	req.StaffID = ptr.Ptr(int64(30))

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffNotAssigned)
}

func TestExecuteSlotOutsideOperatingHours(t *testing.T) {
	env := newTestEnv()

	// Начало раньше открытия
	_, err := env.uc.Execute(context.Background(), serviceRequest("08:00"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	// Конец позже закрытия
	_, err = env.uc.Execute(context.Background(), serviceRequest("16:30"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	// Конец ровно в закрытие допустим
	_, err = env.uc.Execute(context.Background(), serviceRequest("16:00"))
	assert.NoError(t, err)
}

func TestExecuteMinAdvanceEnforced(t *testing.T) {
	env := newTestEnv()
	env.catalog.services[10].MinAdvanceMinutes = 120

	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	req := serviceRequest("13:00") // через 60 минут от 12:00
	req.Date = today

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecuteMaxAdvanceEnforced(t *testing.T) {
	env := newTestEnv()
	env.catalog.services[10].MaxAdvanceMinutes = 24 * 60 // сутки

	_, err := env.uc.Execute(context.Background(), serviceRequest("10:00"))
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecuteClosedDayRejected(t *testing.T) {
	env := newTestEnv()

	req := serviceRequest("10:00")
	req.Date = time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC) // суббота

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestExecutePastDateRejected(t *testing.T) {
	env := newTestEnv()

	req := serviceRequest("10:00")
	req.Date = bookNow.AddDate(0, 0, -1)

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecuteMissingScheduleFailsClosed(t *testing.T) {
	env := newTestEnv()
	env.catalog.stores[1].WorkingDaysRaw = "[]"

	_, err := env.uc.Execute(context.Background(), serviceRequest("10:00"))
	assert.ErrorIs(t, err, ErrScheduleMissing)
}

func TestExecuteInvalidInput(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero user", func(r *Request) { r.UserID = 0 }},
		{"bad entity type", func(r *Request) { r.EntityType = "bundle" }},
		{"zero entity id", func(r *Request) { r.EntityID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"bad time", func(r *Request) { r.StartTime = "25:99" }},
		{"negative staff", func(r *Request) { r.StaffID = ptr.Ptr(int64(-1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := serviceRequest("10:00")
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
