package domain

// Значения по умолчанию для параметров слотов услуги
const (
	DefaultDurationMinutes       = 60
	DefaultBufferMinutes         = 0
	DefaultMaxConcurrentBookings = 1
	DefaultMinAdvanceMinutes     = 0
	DefaultMaxAdvanceMinutes     = 0 // 0 = без ограничения
)

// Бизнес-ограничения
const (
	MinDurationMinutes          = 5
	MaxDurationMinutes          = 480 // 8 часов
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, не занимающие слот
// Используются для фильтрации при подсчёте доступности
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses статусы, занимающие слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
