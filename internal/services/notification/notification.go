// Package notification содержит бизнес-логику рассылки сообщений участникам
// и ведения журнала уведомлений.
package notification

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/dues-ledger/internal/gateway/whatsapp"
	"github.com/magabrotheeeer/dues-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/dues-ledger/internal/models"
)

// Repository определяет методы для работы с журналом уведомлений в хранилище.
type Repository interface {
	GetMember(ctx context.Context, id int) (*models.Member, error)
	CreateNotificationBatch(ctx context.Context, logs []models.NotificationLog) ([]*models.NotificationLog, error)
	ListNotifications(ctx context.Context) ([]*models.NotificationLog, error)
	ListMemberNotifications(ctx context.Context, memberID int) ([]*models.NotificationLog, error)
}

// Gateway описывает шлюз доставки исходящих сообщений.
type Gateway interface {
	Send(ctx context.Context, phone, message string) (whatsapp.DeliveryResult, error)
}

// Service реализует рассылку уведомлений и чтение журнала.
type Service struct {
	repo    Repository
	gateway Gateway
	log     *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, gateway Gateway, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		gateway: gateway,
		log:     log,
	}
}

// Send отправляет сообщение каждому участнику из списка и журналирует результат.
// Статус записи берётся из ответа шлюза. Журнальные записи фиксируются одной
// транзакцией, по одной на участника.
func (s *Service) Send(ctx context.Context, adminID int, req models.DummySendNotification) ([]*models.NotificationLog, error) {
	const op = "notification.Send"

	logs := make([]models.NotificationLog, 0, len(req.MemberIDs))
	for _, memberID := range req.MemberIDs {
		m, err := s.repo.GetMember(ctx, memberID)
		if err != nil {
			return nil, err
		}

		status := models.NotificationSent
		result, err := s.gateway.Send(ctx, m.Phone, req.Message)
		if err != nil {
			s.log.Error("failed to deliver message",
				slog.Int("member_id", memberID), sl.Err(err))
			status = models.NotificationFailed
		} else {
			status = result.Status
		}

		logs = append(logs, models.NotificationLog{
			MemberID: memberID,
			Type:     req.Type,
			Message:  req.Message,
			SentBy:   adminID,
			Status:   status,
		})
	}

	created, err := s.repo.CreateNotificationBatch(ctx, logs)
	if err != nil {
		return nil, err
	}
	s.log.Info("notifications logged", slog.Int("count", len(created)))
	return created, nil
}

// History возвращает весь журнал уведомлений, новые записи первыми.
func (s *Service) History(ctx context.Context) ([]*models.NotificationLog, error) {
	return s.repo.ListNotifications(ctx)
}

// ForMember возвращает уведомления одного участника, новые первыми.
func (s *Service) ForMember(ctx context.Context, memberID int) ([]*models.NotificationLog, error) {
	return s.repo.ListMemberNotifications(ctx, memberID)
}
