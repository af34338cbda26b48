package mailservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
)

// Client клиент почтового шлюза. Письма гостю и оператору отправляет
// внешний шлюз; сервис лишь сообщает ему о событии жизненного цикла.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента почтового шлюза
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// send выполняет POST на шлюз и разбирает ответ
func (c *Client) send(ctx context.Context, payload NotifyRequest) (*NotifyResponse, error) {
	url := fmt.Sprintf("%s/send-booking-mail", c.baseURL)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var out NotifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return &out, nil
}

// Notify сообщает шлюзу о смене статуса заявки. Ошибки отправки не
// фатальны для жизненного цикла: статус в БД уже изменен, поэтому
// результат всегда возвращается как NotifyResult, а не error.
func (c *Client) Notify(ctx context.Context, action string, booking *domain.Booking, propertyName string) domain.NotifyResult {
	payload := NotifyRequest{
		Action:       action,
		BookingID:    booking.ID.String(),
		PropertyName: propertyName,
		StartDate:    booking.StartDate.String(),
		EndDate:      booking.EndDate.String(),
		Adults:       booking.Adults,
		Children:     booking.Children,
		GuestName:    booking.Contact.Name,
		GuestEmail:   booking.Contact.Email,
		GuestPhone:   booking.Contact.Phone,
		Message:      booking.Message,
	}
	if booking.Summary != nil {
		payload.GrandTotal = booking.Summary.GrandTotal
		payload.Currency = booking.Summary.Currency
	}

	resp, err := c.send(ctx, payload)
	if err != nil {
		c.log.Error("Mail gateway unavailable, booking_id=%s action=%s: %v", booking.ID, action, err)
		return domain.NotifyResult{OK: false, Detail: err.Error()}
	}
	if !resp.Sent {
		c.log.Warn("Mail gateway refused to send, booking_id=%s action=%s: %s", booking.ID, action, resp.Detail)
		return domain.NotifyResult{OK: false, Detail: resp.Detail}
	}

	c.log.Info("Mail sent, booking_id=%s action=%s", booking.ID, action)
	return domain.NotifyResult{OK: true}
}
