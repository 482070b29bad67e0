package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okettle/marketplace-booking/internal/domain"
	catalogRepo "github.com/okettle/marketplace-booking/internal/infra/storage/catalog"
)

// resolvedEntity результат разрешения бронируемой сущности
// Для оффера services/store разрешаются через его базовую услугу
type resolvedEntity struct {
	Store   *domain.Store
	Service *domain.Service
	Offer   *domain.Offer // nil для entityType=service
}

// resolveEntity разрешает (entityType, entityID) в store/service/offer
// с проверкой предусловий: оффер активен и не истёк, услуга активна,
// у магазина включено онлайн-бронирование
func resolveEntity(
	ctx context.Context,
	catalog CatalogRepository,
	entityType EntityType,
	entityID int64,
	now time.Time,
) (*resolvedEntity, error) {
	var resolved resolvedEntity

	serviceID := entityID
	if entityType == EntityOffer {
		offer, err := catalog.GetOffer(ctx, entityID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrOfferNotFound) {
				return nil, ErrOfferNotFound
			}
			return nil, fmt.Errorf("%w: failed to get offer: %v", ErrInternal, err)
		}
		if !offer.Active || offer.IsExpired(now) {
			return nil, ErrOfferExpired
		}
		resolved.Offer = offer
		serviceID = offer.ServiceID
	}

	service, err := catalog.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		return nil, ErrServiceNotFound
	}
	resolved.Service = service

	store, err := catalog.GetStore(ctx, service.StoreID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStoreNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("%w: failed to get store: %v", ErrInternal, err)
	}
	if !store.BookingEnabled {
		return nil, ErrBookingDisabled
	}
	resolved.Store = store

	return &resolved, nil
}

// resolveStaff проверяет сотрудника: существует, активен, принадлежит магазину
// и назначен на услугу
func resolveStaff(
	ctx context.Context,
	catalog CatalogRepository,
	staffID int64,
	service *domain.Service,
) (*domain.Staff, error) {
	staff, err := catalog.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	if !staff.Active || staff.StoreID != service.StoreID {
		return nil, ErrStaffNotFound
	}

	assigned, err := catalog.IsStaffAssignedToService(ctx, staffID, service.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check staff assignment: %v", ErrInternal, err)
	}
	if !assigned {
		return nil, ErrStaffNotAssigned
	}

	return staff, nil
}

// buildScope строит область подсчёта конфликтов
// staff-режим: личный календарь, вместимость 1.
// store-wide режим: все услуги магазина и все офферы над ними
// конкурируют за общий календарь с вместимостью услуги
func buildScope(
	ctx context.Context,
	catalog CatalogRepository,
	service *domain.Service,
	staffID *int64,
) (domain.BookingScope, error) {
	if staffID != nil {
		return domain.NewPerStaffScope(*staffID), nil
	}

	serviceIDs, err := catalog.ListServiceIDsByStore(ctx, service.StoreID)
	if err != nil {
		return domain.BookingScope{}, fmt.Errorf("%w: failed to list store services: %v", ErrInternal, err)
	}

	offerIDs, err := catalog.ListOfferIDsByServices(ctx, serviceIDs)
	if err != nil {
		return domain.BookingScope{}, fmt.Errorf("%w: failed to list service offers: %v", ErrInternal, err)
	}

	return domain.NewStoreWideScope(service.StoreID, serviceIDs, offerIDs, service.MaxConcurrentBookings), nil
}
