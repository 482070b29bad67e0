package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с NotifyService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingCreated отправляет событие о создании бронирования
// При недоступности NotifyService возвращает ErrServiceDegraded —
// бронирование уже создано, сбой уведомления не должен его откатывать
func (c *Client) SendBookingCreated(ctx context.Context, event BookingCreatedEvent) error {
	c.log.Info("Sending booking-created event for booking id=%d", event.BookingID)

	if err := c.post(ctx, "/internal/events/booking-created", event); err != nil {
		c.log.Error("NotifyService unavailable, booking id=%d event dropped: %v", event.BookingID, err)
		return fmt.Errorf("%w: booking_id=%d, error=%v", ErrServiceDegraded, event.BookingID, err)
	}

	return nil
}

// SendBookingCancelled отправляет событие об отмене бронирования
func (c *Client) SendBookingCancelled(ctx context.Context, event BookingCancelledEvent) error {
	c.log.Info("Sending booking-cancelled event for booking id=%d", event.BookingID)

	if err := c.post(ctx, "/internal/events/booking-cancelled", event); err != nil {
		c.log.Error("NotifyService unavailable, booking id=%d event dropped: %v", event.BookingID, err)
		return fmt.Errorf("%w: booking_id=%d, error=%v", ErrServiceDegraded, event.BookingID, err)
	}

	return nil
}

// post выполняет POST-запрос с JSON-телом
func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}
