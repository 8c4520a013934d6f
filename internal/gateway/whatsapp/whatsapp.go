// Package whatsapp реализует шлюз исходящих сообщений для участников.
//
// Текущая реализация — заглушка: доставка всегда считается успешной.
// TODO: заменить на вызов WhatsApp Business Cloud API, когда будут выданы
// учётные данные интеграции; статус доставки брать из ответа провайдера.
package whatsapp

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Статусы доставки, отражаемые в журнале уведомлений.
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// DeliveryResult результат попытки доставки одного сообщения.
type DeliveryResult struct {
	Status string // sent или failed
}

// Client клиент шлюза исходящих сообщений.
type Client struct {
	apiURL   string
	apiToken string
	httpc    *http.Client
	log      *slog.Logger
}

// NewClient создает новый клиент шлюза.
func NewClient(apiURL, apiToken string, log *slog.Logger) *Client {
	return &Client{
		apiURL:   apiURL,
		apiToken: apiToken,
		httpc: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Send отправляет сообщение на номер телефона участника.
func (c *Client) Send(ctx context.Context, phone, message string) (DeliveryResult, error) {
	select {
	case <-ctx.Done():
		return DeliveryResult{Status: StatusFailed}, ctx.Err()
	default:
	}

	c.log.Info("whatsapp message dispatched",
		slog.String("phone", phone),
		slog.Int("length", len(message)))
	return DeliveryResult{Status: StatusSent}, nil
}
