package domain

// ScopeKind гранулярность проверки конфликтов бронирований
type ScopeKind string

const (
	// ScopeStoreWide все бронирования услуг и офферов магазина считаются вместе
	ScopeStoreWide ScopeKind = "store_wide"

	// ScopePerStaff личный календарь сотрудника, вместимость всегда 1
	ScopePerStaff ScopeKind = "per_staff"
)

// BookingScope область подсчёта конфликтов
// Явное моделирование трёх режимов источника (магазин через оффер, магазин
// напрямую через услугу, конкретный сотрудник) вместо ветвлений по nullable id.
// BookingLedger и калькулятор доступности потребляют scope единообразно.
type BookingScope struct {
	Kind ScopeKind

	// Для ScopeStoreWide
	StoreID    int64
	ServiceIDs []int64 // Все услуги магазина
	OfferIDs   []int64 // Все офферы, обёрнутые над этими услугами

	// Для ScopePerStaff
	StaffID int64

	// Вместимость слота: max_concurrent_bookings услуги для store-wide, 1 для staff
	Capacity int
}

// NewStoreWideScope создает store-wide scope с вместимостью услуги
func NewStoreWideScope(storeID int64, serviceIDs, offerIDs []int64, capacity int) BookingScope {
	if capacity < 1 {
		capacity = 1
	}
	return BookingScope{
		Kind:       ScopeStoreWide,
		StoreID:    storeID,
		ServiceIDs: serviceIDs,
		OfferIDs:   offerIDs,
		Capacity:   capacity,
	}
}

// NewPerStaffScope создает scope личного календаря сотрудника
func NewPerStaffScope(staffID int64) BookingScope {
	return BookingScope{
		Kind:     ScopePerStaff,
		StaffID:  staffID,
		Capacity: 1,
	}
}

// IsPerStaff возвращает true для staff-scope
func (s BookingScope) IsPerStaff() bool {
	return s.Kind == ScopePerStaff
}
