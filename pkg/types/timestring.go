package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeString время в формате HH:MM (без даты и таймзоны)
// Используется для времени начала слотов и рабочих часов магазина.
// Специальное значение "24:00" допускается как маркер конца дня
// (например, конец последнего слота при закрытии в полночь).
type TimeString string

// EndOfDayMinutes количество минут в сутках
const EndOfDayMinutes = 24 * 60

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrTimeOutOfRange = errors.New("types: time out of range")
)

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет корректность формата HH:MM
func (t TimeString) Validate() error {
	_, err := t.toMinutes()
	return err
}

// toMinutes конвертирует время в количество минут с начала суток
// Принимает "24:00" как конец дня (1440 минут)
func (t TimeString) toMinutes() (int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}

	if minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}

	total := hours*60 + minutes
	if hours < 0 || total > EndOfDayMinutes {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}

	return total, nil
}

// fromMinutes создает TimeString из количества минут с начала суток
func fromMinutes(total int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60))
}

// AddMinutes возвращает время, сдвинутое на указанное количество минут
// Возвращает ошибку, если результат выходит за пределы суток (больше 24:00)
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.toMinutes()
	if err != nil {
		return "", err
	}

	total += minutes
	if total < 0 || total > EndOfDayMinutes {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrTimeOutOfRange, string(t), minutes)
	}

	return fromMinutes(total), nil
}

// IsBefore возвращает true, если время строго раньше other
// Некорректные значения считаются несравнимыми и возвращают false
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.toMinutes()
	if err != nil {
		return false
	}
	b, err := other.toMinutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если время строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, err := t.toMinutes()
	if err != nil {
		return false
	}
	b, err := other.toMinutes()
	if err != nil {
		return false
	}
	return a > b
}

// MinutesUntil возвращает количество минут от t до other (может быть отрицательным)
func (t TimeString) MinutesUntil(other TimeString) (int, error) {
	a, err := t.toMinutes()
	if err != nil {
		return 0, err
	}
	b, err := other.toMinutes()
	if err != nil {
		return 0, err
	}
	return b - a, nil
}

// Format12Hour возвращает время в 12-часовом формате для отображения пользователю
// Например: "09:00" -> "9:00 AM", "16:30" -> "4:30 PM"
func (t TimeString) Format12Hour() string {
	total, err := t.toMinutes()
	if err != nil {
		return string(t)
	}

	hours := total / 60
	minutes := total % 60

	period := "AM"
	displayHours := hours
	switch {
	case hours == 0 || hours == 24:
		displayHours = 12
	case hours == 12:
		period = "PM"
	case hours > 12:
		displayHours = hours - 12
		period = "PM"
	}

	return fmt.Sprintf("%d:%02d %s", displayHours, minutes, period)
}
