package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// WorkingDays канонический набор рабочих дней недели магазина
// Единственное место нормализации working_days — downstream-код работает
// только с этим типом и никогда не парсит сырую строку повторно
type WorkingDays map[time.Weekday]bool

// ErrEmptyWorkingDays возвращается, когда рабочие дни не заданы или не распознаны
// Пустое расписание трактуется как "магазин закрыт" (fail closed), а не "всегда открыт"
var ErrEmptyWorkingDays = errors.New("domain: working days are empty or unparseable")

// weekdayNames распознаваемые имена дней недели (полные и трёхбуквенные, в нижнем регистре)
var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
	"monday":    time.Monday,
	"mon":       time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
}

// orderedWeekdays порядок дней для форматирования списка (неделя с понедельника)
var orderedWeekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// ParseWorkingDays нормализует сырое значение working_days в канонический набор
// Принимает JSON-список (`["Monday","tuesday"]`) или строку через запятую
// (`monday, Tuesday,WED`). Регистр и пробелы игнорируются, нераспознанные
// элементы пропускаются. Если в итоге не распознан ни один день — ErrEmptyWorkingDays.
func ParseWorkingDays(raw string) (WorkingDays, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptyWorkingDays
	}

	var parts []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &parts); err != nil {
			return nil, ErrEmptyWorkingDays
		}
	} else {
		parts = strings.Split(raw, ",")
	}

	days := make(WorkingDays)
	for _, part := range parts {
		name := strings.ToLower(strings.TrimSpace(part))
		if day, ok := weekdayNames[name]; ok {
			days[day] = true
		}
	}

	if len(days) == 0 {
		return nil, ErrEmptyWorkingDays
	}

	return days, nil
}

// Contains возвращает true, если день недели рабочий
func (w WorkingDays) Contains(day time.Weekday) bool {
	return w[day]
}

// FormatList возвращает отформатированный список рабочих дней
// в порядке недели: "Monday, Tuesday, Saturday"
// Используется в сообщении об отказе, чтобы подсказать пользователю открытые дни
func (w WorkingDays) FormatList() string {
	names := make([]string, 0, len(w))
	for _, day := range orderedWeekdays {
		if w[day] {
			names = append(names, day.String())
		}
	}
	return strings.Join(names, ", ")
}
