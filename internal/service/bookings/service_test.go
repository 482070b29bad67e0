package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okettle/marketplace-booking/internal/domain"
	bookingRepo "github.com/okettle/marketplace-booking/internal/infra/storage/booking"
	catalogRepo "github.com/okettle/marketplace-booking/internal/infra/storage/catalog"
	"github.com/okettle/marketplace-booking/internal/integrations/notifyservice"
	"github.com/okettle/marketplace-booking/internal/service/bookings/models"
)

const (
	ownerID    = int64(42)  // Владелец бронирования
	merchantID = int64(100) // Мерчант магазина
	strangerID = int64(777) // Посторонний пользователь
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	cancelledID     int64
	cancelledReason string
	updatedID       int64
	updatedStatus   domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if b, ok := f.bookings[id]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) GetByStoreWithFilter(_ context.Context, filter domain.StoreBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.StoreID != filter.StoreID {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedID = id
	f.updatedStatus = status
	f.bookings[id].Status = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelledID = id
	f.cancelledReason = reason
	f.bookings[id].Status = domain.StatusCancelled
	return nil
}

type fakeCatalogRepo struct {
	stores map[int64]*domain.Store
}

func (f *fakeCatalogRepo) GetStore(_ context.Context, id int64) (*domain.Store, error) {
	if store, ok := f.stores[id]; ok {
		return store, nil
	}
	return nil, catalogRepo.ErrStoreNotFound
}

type fakeNotifyClient struct {
	cancelled []notifyservice.BookingCancelledEvent
}

func (f *fakeNotifyClient) SendBookingCancelled(_ context.Context, event notifyservice.BookingCancelledEvent) error {
	f.cancelled = append(f.cancelled, event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		Reference:       "BK-3F7A21C9",
		UserID:          ownerID,
		StoreID:         1,
		ServiceID:       10,
		BookingDate:     time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          status,
		ServiceName:     "Haircut",
		ServicePrice:    50.0,
	}
}

type testEnv struct {
	svc         *Service
	bookingRepo *fakeBookingRepo
	notify      *fakeNotifyClient
}

func newTestEnv(bookings ...*domain.Booking) *testEnv {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	catalog := &fakeCatalogRepo{
		stores: map[int64]*domain.Store{
			1: {ID: 1, MerchantID: merchantID, Name: "Main store"},
		},
	}
	notify := &fakeNotifyClient{}
	return &testEnv{
		svc:         NewService(repo, catalog, notify, nopLogger{}),
		bookingRepo: repo,
		notify:      notify,
	}
}

func TestGetByIDOwnerAccess(t *testing.T) {
	env := newTestEnv(testBooking(1, domain.StatusConfirmed))

	resp, err := env.svc.GetByID(context.Background(), 1, ownerID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "BK-3F7A21C9", resp.Reference)
	assert.Equal(t, "2026-09-07", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:00", resp.EndTime)
}

func TestGetByIDMerchantAccess(t *testing.T) {
	env := newTestEnv(testBooking(1, domain.StatusConfirmed))

	_, err := env.svc.GetByID(context.Background(), 1, merchantID)
	assert.NoError(t, err)
}

func TestGetByIDStrangerDenied(t *testing.T) {
	env := newTestEnv(testBooking(1, domain.StatusConfirmed))

	_, err := env.svc.GetByID(context.Background(), 1, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByIDNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetByID(context.Background(), 999, ownerID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelByOwner(t *testing.T) {
	env := newTestEnv(testBooking(1, domain.StatusConfirmed))

	err := env.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             ownerID,
		CancellationReason: "changed plans",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), env.bookingRepo.cancelledID)
	assert.Equal(t, "changed plans", env.bookingRepo.cancelledReason)

	require.Len(t, env.notify.cancelled, 1)
	event := env.notify.cancelled[0]
	assert.Equal(t, int64(1), event.BookingID)
	require.NotNil(t, event.Reason)
	assert.Equal(t, "changed plans", *event.Reason)
}

func TestCancelByMerchant(t *testing.T) {
	env := newTestEnv(testBooking(1, domain.StatusPending))

	err := env.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: merchantID})
	assert.NoError(t, err)
}

func TestCancelByStrangerDenied(t *testing.T) {
	env := newTestEnv(testBooking(1, domain.StatusConfirmed))

	err := env.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: strangerID})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, env.bookingRepo.cancelledID)
}

// Отмена допустима только из pending и confirmed
func TestCancelStatusRules(t *testing.T) {
	tests := []struct {
		status  domain.BookingStatus
		wantErr error
	}{
		{domain.StatusPending, nil},
		{domain.StatusConfirmed, nil},
		{domain.StatusInProgress, ErrCannotCancel},
		{domain.StatusCompleted, ErrCannotCancel},
		{domain.StatusCancelled, ErrCannotCancel},
		{domain.StatusNoShow, ErrCannotCancel},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			env := newTestEnv(testBooking(1, tt.status))

			err := env.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: ownerID})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateStatusByMerchant(t *testing.T) {
	env := newTestEnv(testBooking(1, domain.StatusConfirmed))

	err := env.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: merchantID,
		Status: "in_progress",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusInProgress, env.bookingRepo.updatedStatus)
}

func TestUpdateStatusOwnerDenied(t *testing.T) {
	// Смена статуса — операция мерчанта, даже для собственного бронирования
	env := newTestEnv(testBooking(1, domain.StatusConfirmed))

	err := env.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "in_progress",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	env := newTestEnv(testBooking(1, domain.StatusInProgress))

	err := env.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: merchantID,
		Status: "cancelled",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	env := newTestEnv(testBooking(1, domain.StatusConfirmed))

	err := env.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: merchantID,
		Status: "rescheduled",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserBookingsFiltersByStatus(t *testing.T) {
	confirmed := testBooking(1, domain.StatusConfirmed)
	cancelled := testBooking(2, domain.StatusCancelled)
	env := newTestEnv(confirmed, cancelled)

	status := "confirmed"
	resp, err := env.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: ownerID,
		Status: &status,
	})
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
}

func TestGetUserBookingsInvalidStatus(t *testing.T) {
	env := newTestEnv()

	status := "whenever"
	_, err := env.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: ownerID,
		Status: &status,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetStoreBookingsMerchantOnly(t *testing.T) {
	env := newTestEnv(testBooking(1, domain.StatusConfirmed))

	_, err := env.svc.GetStoreBookings(context.Background(), &models.GetStoreBookingsRequest{
		UserID:  ownerID,
		StoreID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := env.svc.GetStoreBookings(context.Background(), &models.GetStoreBookingsRequest{
		UserID:  merchantID,
		StoreID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

func TestGetStoreBookingsExcludesInactiveByDefault(t *testing.T) {
	env := newTestEnv(
		testBooking(1, domain.StatusConfirmed),
		testBooking(2, domain.StatusCancelled),
		testBooking(3, domain.StatusNoShow),
	)

	resp, err := env.svc.GetStoreBookings(context.Background(), &models.GetStoreBookingsRequest{
		UserID:  merchantID,
		StoreID: 1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)

	resp, err = env.svc.GetStoreBookings(context.Background(), &models.GetStoreBookingsRequest{
		UserID:          merchantID,
		StoreID:         1,
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 3)
}

func TestGetStoreBookingsUnknownStore(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetStoreBookings(context.Background(), &models.GetStoreBookingsRequest{
		UserID:  merchantID,
		StoreID: 999,
	})
	assert.ErrorIs(t, err, ErrStoreNotFound)
}
