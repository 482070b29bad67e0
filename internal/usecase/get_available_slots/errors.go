package get_available_slots

import "errors"

var (
	// ErrStoreNotFound возвращается, когда магазин не найден
	ErrStoreNotFound = errors.New("get_available_slots: store not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrOfferNotFound возвращается, когда оффер не найден
	ErrOfferNotFound = errors.New("get_available_slots: offer not found")

	// ErrOfferExpired возвращается, когда срок действия оффера истёк или оффер выключен
	ErrOfferExpired = errors.New("get_available_slots: offer is expired or inactive")

	// ErrBookingDisabled возвращается, когда у магазина выключено онлайн-бронирование
	ErrBookingDisabled = errors.New("get_available_slots: online booking is disabled for this store")

	// ErrStaffNotFound возвращается, когда сотрудник не найден или неактивен
	ErrStaffNotFound = errors.New("get_available_slots: staff member not found")

	// ErrStaffNotAssigned возвращается, когда сотрудник не назначен на услугу
	ErrStaffNotAssigned = errors.New("get_available_slots: staff member is not assigned to this service")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrDateInPast возвращается, когда дата раньше сегодняшнего дня
	ErrDateInPast = errors.New("get_available_slots: date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает окно бронирования услуги
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrStoreClosed возвращается, когда магазин закрыт в указанный день недели
	ErrStoreClosed = errors.New("get_available_slots: store is closed")

	// ErrScheduleMissing возвращается, когда у магазина не заданы рабочие дни
	// Отсутствие расписания трактуется как "закрыто", а не "всегда открыто"
	ErrScheduleMissing = errors.New("get_available_slots: store has no working days configured")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
