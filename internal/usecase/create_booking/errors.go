package create_booking

import "errors"

var (
	// ErrStoreNotFound возвращается, когда магазин не найден
	ErrStoreNotFound = errors.New("create_booking: store not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrOfferNotFound возвращается, когда оффер не найден
	ErrOfferNotFound = errors.New("create_booking: offer not found")

	// ErrOfferExpired возвращается, когда оффер истёк или деактивирован
	ErrOfferExpired = errors.New("create_booking: offer has expired")

	// ErrBookingDisabled возвращается, когда у магазина выключено онлайн-бронирование
	ErrBookingDisabled = errors.New("create_booking: online booking is disabled for this store")

	// ErrStaffNotFound возвращается, когда сотрудник не найден или неактивен
	ErrStaffNotFound = errors.New("create_booking: staff member not found")

	// ErrStaffNotAssigned возвращается, когда сотрудник не назначен на услугу
	ErrStaffNotAssigned = errors.New("create_booking: staff member is not assigned to this service")

	// ErrStoreClosed возвращается, когда магазин закрыт в выбранный день
	ErrStoreClosed = errors.New("create_booking: store is closed on this day")

	// ErrScheduleMissing возвращается, когда у магазина не настроены рабочие дни
	ErrScheduleMissing = errors.New("create_booking: store has no working days configured")

	// ErrDateInPast возвращается при попытке бронирования на прошедшую дату
	ErrDateInPast = errors.New("create_booking: booking date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата за пределами окна бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: booking date is too far in the future")

	// ErrTooLateToBook возвращается, когда до начала слота меньше минимального запаса
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidTimeSlot возвращается, когда слот не помещается в часы работы
	ErrInvalidTimeSlot = errors.New("create_booking: time slot is outside operating hours")

	// ErrSlotNotAvailable возвращается, когда вместимость слота исчерпана
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
