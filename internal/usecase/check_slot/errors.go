package check_slot

import "errors"

var (
	// ErrStoreNotFound возвращается, когда магазин не найден
	ErrStoreNotFound = errors.New("check_slot: store not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("check_slot: service not found")

	// ErrOfferNotFound возвращается, когда оффер не найден
	ErrOfferNotFound = errors.New("check_slot: offer not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден или неактивен
	ErrStaffNotFound = errors.New("check_slot: staff member not found")

	// ErrStaffNotAssigned возвращается, когда сотрудник не назначен на услугу
	ErrStaffNotAssigned = errors.New("check_slot: staff member is not assigned to this service")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_slot: internal error")
)
