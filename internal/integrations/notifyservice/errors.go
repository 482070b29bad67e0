package notifyservice

import "errors"

var (
	// ErrInvalidResponse возвращается при некорректном ответе NotifyService
	ErrInvalidResponse = errors.New("notifyservice: invalid response")

	// ErrServiceDegraded возвращается при недоступности NotifyService
	// Уведомления не критичны: вызывающий код логирует и продолжает работу
	ErrServiceDegraded = errors.New("notifyservice: service unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice: internal error")
)
