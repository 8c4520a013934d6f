// Package sender доставляет напоминания из очереди через шлюз сообщений
// и журналирует результат доставки.
package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/dues-ledger/internal/gateway/whatsapp"
	"github.com/magabrotheeeer/dues-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/dues-ledger/internal/models"
)

// Repository определяет запись в журнал уведомлений.
type Repository interface {
	CreateNotificationLog(ctx context.Context, l models.NotificationLog) (*models.NotificationLog, error)
}

// Gateway описывает шлюз доставки исходящих сообщений.
type Gateway interface {
	Send(ctx context.Context, phone, message string) (whatsapp.DeliveryResult, error)
}

// Service обрабатывает сообщения очереди напоминаний.
type Service struct {
	repo    Repository
	gateway Gateway
	log     *slog.Logger
	// systemUserID учётная запись, от имени которой журналируются
	// автоматические напоминания.
	systemUserID int
}

// New создает новый экземпляр Service.
func New(repo Repository, gateway Gateway, log *slog.Logger, systemUserID int) *Service {
	return &Service{
		repo:         repo,
		gateway:      gateway,
		log:          log,
		systemUserID: systemUserID,
	}
}

// HandleReminder обрабатывает одно сообщение очереди: доставляет напоминание
// участнику и добавляет запись в журнал со статусом доставки.
func (s *Service) HandleReminder(body []byte) error {
	const op = "sender.HandleReminder"

	var reminder models.ReminderInfo
	if err := json.Unmarshal(body, &reminder); err != nil {
		s.log.Error("failed to unmarshal reminder", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	message := fmt.Sprintf(
		"Hello, %s! Your dues for %s are not settled: due %s, paid %s. Please pay at your earliest convenience.",
		reminder.MemberName, reminder.Month, reminder.AmountDue, reminder.AmountPaid)

	ctx := context.Background()
	status := models.NotificationSent
	result, err := s.gateway.Send(ctx, reminder.MemberPhone, message)
	if err != nil {
		s.log.Error("failed to deliver reminder",
			slog.Int("member_id", reminder.MemberID), sl.Err(err))
		status = models.NotificationFailed
	} else {
		status = result.Status
	}

	if _, err := s.repo.CreateNotificationLog(ctx, models.NotificationLog{
		MemberID: reminder.MemberID,
		Type:     models.NotificationPaymentReminder,
		Message:  message,
		SentBy:   s.systemUserID,
		Status:   status,
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("reminder processed",
		slog.Int("member_id", reminder.MemberID),
		slog.String("status", status))
	return nil
}
