package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с сервисом рассылки
// Доставка писем - best-effort: отказ рассылки никогда не откатывает
// состояние бронирования, которое её вызвало
type Client struct {
	baseURL    string
	from       string
	httpClient *http.Client
	log        Logger
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NewClient создает новый экземпляр клиента рассылки
func NewClient(baseURL, from string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		from:    from,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет письмо получателю
func (c *Client) Send(ctx context.Context, recipient, subject, body string) error {
	payload := sendRequest{
		From:    c.from,
		To:      recipient,
		Subject: subject,
		Body:    body,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/mail/send", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// SendBestEffort отправляет письмо и логирует отказ вместо его проброса
// Используется для уведомлений, которые не должны блокировать основной поток
func (c *Client) SendBestEffort(ctx context.Context, recipient, subject, body string) {
	if err := c.Send(ctx, recipient, subject, body); err != nil {
		c.log.Error("Mailer delivery failed (state change is already committed): recipient=%s, subject=%q: %v",
			recipient, subject, err)
		return
	}
	c.log.Info("Mail queued: recipient=%s, subject=%q", recipient, subject)
}
