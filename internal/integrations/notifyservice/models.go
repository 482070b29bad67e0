package notifyservice

// BookingCreatedEvent событие о созданном бронировании
type BookingCreatedEvent struct {
	BookingID   int64  `json:"bookingId"`
	Reference   string `json:"reference"`
	UserID      int64  `json:"userId"`
	StoreID     int64  `json:"storeId"`
	ServiceName string `json:"serviceName"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
}

// BookingCancelledEvent событие об отменённом бронировании
type BookingCancelledEvent struct {
	BookingID int64   `json:"bookingId"`
	Reference string  `json:"reference"`
	UserID    int64   `json:"userId"`
	StoreID   int64   `json:"storeId"`
	Reason    *string `json:"reason,omitempty"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
