package check_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okettle/marketplace-booking/internal/domain"
	catalogRepo "github.com/okettle/marketplace-booking/internal/infra/storage/catalog"
	"github.com/okettle/marketplace-booking/pkg/ptr"
	"github.com/okettle/marketplace-booking/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByScopeAndDate(_ context.Context, _ domain.BookingScope, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, nil
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

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	checkNow  = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) // вторник
	checkDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)  // понедельник
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
				DurationMinutes:       60,
				MaxConcurrentBookings: 3,
				Active:                true,
			},
		},
		offers:      map[int64]*domain.Offer{},
		staff:       map[int64]*domain.Staff{},
		assignments: map[int64]map[int64]bool{},
	}
}

func newTestUseCase(bookingRepo *fakeBookingRepo, catalog *fakeCatalogRepo) *UseCase {
	uc := NewUseCase(bookingRepo, catalog, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: checkNow}
	return uc
}

func checkRequest(startTime types.TimeString) *Request {
	return &Request{
		UserID:     42,
		EntityType: EntityService,
		EntityID:   10,
		Date:       checkDate,
		StartTime:  startTime,
	}
}

func TestExecuteSlotAvailable(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, testCatalog())

	resp, err := uc.Execute(context.Background(), checkRequest("10:00"))
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Equal(t, 3, resp.RemainingSlots)
	assert.Equal(t, 3, resp.TotalSlots)
	assert.Empty(t, resp.Reason)
}

func TestExecuteCountsOverlappingBookings(t *testing.T) {
	bookingRepo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ServiceID: 10, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
			{ServiceID: 10, StartTime: "09:30", DurationMinutes: 60, Status: domain.StatusPending},
			// Отменённое не считается
			{ServiceID: 10, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusCancelled},
		},
	}
	uc := newTestUseCase(bookingRepo, testCatalog())

	resp, err := uc.Execute(context.Background(), checkRequest("10:00"))
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Equal(t, 1, resp.RemainingSlots)
}

func TestExecuteFullyBookedSlot(t *testing.T) {
	bookingRepo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ServiceID: 10, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
			{ServiceID: 10, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
			{ServiceID: 10, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusInProgress},
		},
	}
	uc := newTestUseCase(bookingRepo, testCatalog())

	resp, err := uc.Execute(context.Background(), checkRequest("10:00"))
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Equal(t, 0, resp.RemainingSlots)
	assert.Equal(t, "slot is fully booked", resp.Reason)
}

func TestExecuteClosedDayIsRefusalNotError(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, testCatalog())

	req := checkRequest("10:00")
	req.Date = time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC) // суббота

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Contains(t, resp.Reason, "closed on Saturday")
	assert.Contains(t, resp.Reason, "Monday")
}

func TestExecutePastDateIsRefusal(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, testCatalog())

	req := checkRequest("10:00")
	req.Date = checkNow.AddDate(0, 0, -1)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Equal(t, "date is in the past", resp.Reason)
}

func TestExecuteOutsideOperatingHoursIsRefusal(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, testCatalog())

	resp, err := uc.Execute(context.Background(), checkRequest("08:00"))
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, "slot starts before opening time", resp.Reason)

	resp, err = uc.Execute(context.Background(), checkRequest("16:30"))
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, "slot ends after closing time", resp.Reason)
}

func TestExecuteMinAdvanceIsRefusal(t *testing.T) {
	catalog := testCatalog()
	catalog.services[10].MinAdvanceMinutes = 120
	uc := newTestUseCase(&fakeBookingRepo{}, catalog)

	req := checkRequest("13:00")
	req.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) // сегодня, через час

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Contains(t, resp.Reason, "at least 120 minutes in advance")
}

func TestExecuteBookingDisabledIsRefusal(t *testing.T) {
	catalog := testCatalog()
	catalog.stores[1].BookingEnabled = false
	uc := newTestUseCase(&fakeBookingRepo{}, catalog)

	resp, err := uc.Execute(context.Background(), checkRequest("10:00"))
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Equal(t, "booking is not available for this entity", resp.Reason)
}

func TestExecuteExpiredOfferIsRefusal(t *testing.T) {
	catalog := testCatalog()
	catalog.offers[20] = &domain.Offer{
		ID:        20,
		ServiceID: 10,
		Active:    true,
		ExpiresAt: ptr.Ptr(checkNow.AddDate(0, 0, -1)),
	}
	uc := newTestUseCase(&fakeBookingRepo{}, catalog)

	req := checkRequest("10:00")
	req.EntityType = EntityOffer
	req.EntityID = 20

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Equal(t, "booking is not available for this entity", resp.Reason)
}

func TestExecuteStaffScopeCapacityOne(t *testing.T) {
	catalog := testCatalog()
	catalog.staff[30] = &domain.Staff{ID: 30, StoreID: 1, Name: "Alex", Active: true}
	catalog.assignments[30] = map[int64]bool{10: true}

	uc := newTestUseCase(&fakeBookingRepo{}, catalog)

	req := checkRequest("10:00")
	req.StaffID = ptr.Ptr(int64(30))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Equal(t, 1, resp.TotalSlots)
}

func TestExecuteUnknownServiceIsError(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, testCatalog())

	req := checkRequest("10:00")
	req.EntityID = 999

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecuteUnknownStaffIsError(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, testCatalog())

	req := checkRequest("10:00")
	req.StaffID = ptr.Ptr(int64(999))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecuteInvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, testCatalog())

	req := checkRequest("not-a-time")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
