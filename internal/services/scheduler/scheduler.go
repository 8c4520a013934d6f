// Package scheduler периодически находит задолженности за текущий месяц
// и публикует напоминания в очередь.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/dues-ledger/internal/lib/month"
	"github.com/magabrotheeeer/dues-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/dues-ledger/internal/models"
	"github.com/magabrotheeeer/dues-ledger/internal/rabbitmq"
)

// Repository определяет выборку задолженностей.
type Repository interface {
	ListOutstandingByMonth(ctx context.Context, monthKey string) ([]*models.OutstandingRecord, error)
}

// Service публикует напоминания о задолженности.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// PublishReminders раз в interval находит задолженности за текущий месяц
// и публикует по напоминанию на участника.
func (s *Service) PublishReminders(ctx context.Context, channel *amqp.Channel, interval time.Duration) {
	s.runPublishReminders(ctx, channel)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runPublishReminders(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Service) runPublishReminders(ctx context.Context, channel *amqp.Channel) {
	currentMonth := month.CurrentKey()
	s.log.Info("looking for outstanding payments", slog.String("month", currentMonth))

	records, err := s.repo.ListOutstandingByMonth(ctx, currentMonth)
	if err != nil {
		s.log.Error("failed to list outstanding payments", sl.Err(err))
		return
	}
	if len(records) == 0 {
		s.log.Info("no outstanding payments found")
		return
	}
	s.log.Info("found outstanding payments", slog.Int("count", len(records)))

	for _, r := range records {
		reminder := models.ReminderInfo{
			MemberID:    r.MemberID,
			MemberName:  r.MemberName,
			MemberPhone: r.MemberPhone,
			Month:       r.Month,
			AmountDue:   r.AmountDue,
			AmountPaid:  r.AmountPaid,
		}
		if err := rabbitmq.PublishMessage(channel, rabbitmq.Exchange, rabbitmq.ReminderRoutingKey, reminder); err != nil {
			s.log.Error("failed to publish reminder", sl.Err(err))
		}
	}
}
