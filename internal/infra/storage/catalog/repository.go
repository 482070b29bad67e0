package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/okettle/marketplace-booking/internal/domain"
	"github.com/okettle/marketplace-booking/pkg/dbmetrics"
	"github.com/okettle/marketplace-booking/pkg/psqlbuilder"
	"github.com/okettle/marketplace-booking/pkg/types"
)

// Repository репозиторий каталога: магазины, услуги, офферы, сотрудники
// С точки зрения ядра бронирования каталог read-only — единственная
// изменяемая таблица это bookings
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetStore получает магазин по ID
func (r *Repository) GetStore(ctx context.Context, id int64) (*domain.Store, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"merchant_id",
		"name",
		"opening_time",
		"closing_time",
		"working_days",
		"booking_enabled",
		"created_at",
		"updated_at",
	).
		From("stores").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStore - build select query: %v", ErrBuildQuery, err)
	}

	var store domain.Store
	var openingTime, closingTime, workingDays sql.NullString
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&store.ID,
		&store.MerchantID,
		&store.Name,
		&openingTime,
		&closingTime,
		&workingDays,
		&store.BookingEnabled,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStore - scan store: %v", ErrScanRow, err)
	}

	if openingTime.Valid {
		ts := types.TimeString(openingTime.String)
		store.OpeningTime = &ts
	}
	if closingTime.Valid {
		ts := types.TimeString(closingTime.String)
		store.ClosingTime = &ts
	}
	store.WorkingDaysRaw = workingDays.String
	store.CreatedAt = createdAt.Time
	store.UpdatedAt = updatedAt.Time

	return &store, nil
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"store_id",
		"name",
		"price",
		"duration_minutes",
		"buffer_minutes",
		"max_concurrent_bookings",
		"min_advance_minutes",
		"max_advance_minutes",
		"active",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.StoreID,
		&service.Name,
		&service.Price,
		&service.DurationMinutes,
		&service.BufferMinutes,
		&service.MaxConcurrentBookings,
		&service.MinAdvanceMinutes,
		&service.MaxAdvanceMinutes,
		&service.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}

// GetOffer получает оффер по ID
func (r *Repository) GetOffer(ctx context.Context, id int64) (*domain.Offer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"title",
		"discount_percent",
		"active",
		"expires_at",
		"created_at",
		"updated_at",
	).
		From("offers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOffer - build select query: %v", ErrBuildQuery, err)
	}

	var offer domain.Offer
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&offer.ID,
		&offer.ServiceID,
		&offer.Title,
		&offer.DiscountPercent,
		&offer.Active,
		&offer.ExpiresAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOfferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOffer - scan offer: %v", ErrScanRow, err)
	}

	offer.CreatedAt = createdAt.Time
	offer.UpdatedAt = updatedAt.Time

	return &offer, nil
}

// GetStaff получает сотрудника по ID
func (r *Repository) GetStaff(ctx context.Context, id int64) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"store_id",
		"name",
		"active",
		"created_at",
		"updated_at",
	).
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - build select query: %v", ErrBuildQuery, err)
	}

	var staff domain.Staff
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&staff.ID,
		&staff.StoreID,
		&staff.Name,
		&staff.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - scan staff: %v", ErrScanRow, err)
	}

	staff.CreatedAt = createdAt.Time
	staff.UpdatedAt = updatedAt.Time

	return &staff, nil
}

// ListServiceIDsByStore получает ID всех услуг магазина
// Используется для построения store-wide scope: бронирования любых услуг
// и офферов магазина конкурируют за общий календарь
func (r *Repository) ListServiceIDsByStore(ctx context.Context, storeID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("services").
		Where(squirrel.Eq{"store_id": storeID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListServiceIDsByStore - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanIDs(ctx, executor, query, args, "ListServiceIDsByStore")
}

// ListOfferIDsByServices получает ID всех офферов, обёрнутых над указанными услугами
func (r *Repository) ListOfferIDsByServices(ctx context.Context, serviceIDs []int64) ([]int64, error) {
	if len(serviceIDs) == 0 {
		return []int64{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("offers").
		Where(squirrel.Eq{"service_id": serviceIDs}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOfferIDsByServices - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanIDs(ctx, executor, query, args, "ListOfferIDsByServices")
}

// IsStaffAssignedToService проверяет назначение сотрудника на услугу
func (r *Repository) IsStaffAssignedToService(ctx context.Context, staffID, serviceID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("service_staff").
		Where(squirrel.Eq{"staff_id": staffID, "service_id": serviceID}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsStaffAssignedToService - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: IsStaffAssignedToService - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// scanIDs выполняет запрос и сканирует список int64 ID
func (r *Repository) scanIDs(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string) ([]int64, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %s - scan id: %v", ErrScanRow, method, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return ids, nil
}
