package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/dues-ledger/internal/models"
)

const notificationColumns = `id, member_id, type, message, sent_at, sent_by, status`

// CreateNotificationBatch вставляет пачку журнальных записей одной транзакцией:
// либо фиксируются все, либо ни одной.
func (s *Storage) CreateNotificationBatch(ctx context.Context, logs []models.NotificationLog) ([]*models.NotificationLog, error) {
	const op = "storage.CreateNotificationBatch"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO notification_logs (member_id, type, message, sent_by, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + notificationColumns

	result := make([]*models.NotificationLog, 0, len(logs))
	for _, l := range logs {
		var created models.NotificationLog
		if err := tx.QueryRowContext(ctx, query,
			l.MemberID, l.Type, l.Message, l.SentBy, l.Status).Scan(
			&created.ID, &created.MemberID, &created.Type, &created.Message,
			&created.SentAt, &created.SentBy, &created.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &created)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateNotificationLog вставляет одну журнальную запись.
func (s *Storage) CreateNotificationLog(ctx context.Context, l models.NotificationLog) (*models.NotificationLog, error) {
	const op = "storage.CreateNotificationLog"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO notification_logs (member_id, type, message, sent_by, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + notificationColumns
	var created models.NotificationLog
	if err := s.DB.QueryRowContext(ctx, query,
		l.MemberID, l.Type, l.Message, l.SentBy, l.Status).Scan(
		&created.ID, &created.MemberID, &created.Type, &created.Message,
		&created.SentAt, &created.SentBy, &created.Status); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

func (s *Storage) queryNotifications(ctx context.Context, op, query string, args ...any) ([]*models.NotificationLog, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.NotificationLog
	for rows.Next() {
		var l models.NotificationLog
		if err := rows.Scan(&l.ID, &l.MemberID, &l.Type, &l.Message,
			&l.SentAt, &l.SentBy, &l.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListNotifications возвращает весь журнал уведомлений, новые записи первыми.
func (s *Storage) ListNotifications(ctx context.Context) ([]*models.NotificationLog, error) {
	const op = "storage.ListNotifications"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + notificationColumns + `
			  FROM notification_logs
			  ORDER BY sent_at DESC`
	return s.queryNotifications(ctx, op, query)
}

// ListMemberNotifications возвращает уведомления одного участника, новые первыми.
func (s *Storage) ListMemberNotifications(ctx context.Context, memberID int) ([]*models.NotificationLog, error) {
	const op = "storage.ListMemberNotifications"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + notificationColumns + `
			  FROM notification_logs
			  WHERE member_id = $1
			  ORDER BY sent_at DESC`
	return s.queryNotifications(ctx, op, query, memberID)
}
