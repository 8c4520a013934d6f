// Package payment содержит бизнес-логику платёжного реестра.
package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/dues-ledger/internal/lib/money"
	"github.com/magabrotheeeer/dues-ledger/internal/lib/month"
	"github.com/magabrotheeeer/dues-ledger/internal/models"
	"github.com/magabrotheeeer/dues-ledger/internal/storage/repository"
)

// Repository определяет методы для работы с платёжными записями в хранилище.
type Repository interface {
	GetMember(ctx context.Context, id int) (*models.Member, error)
	ListPaymentsByMonth(ctx context.Context, monthKey string) ([]*models.PaymentRecord, error)
	ListMemberPayments(ctx context.Context, memberID int) ([]*models.PaymentRecord, error)
	GetPaymentByMemberMonth(ctx context.Context, memberID int, monthKey string) (*models.PaymentRecord, error)
	CreatePayment(ctx context.Context, p models.PaymentRecord) (*models.PaymentRecord, error)
	UpdatePayment(ctx context.Context, id int, req models.DummyUpdatePayment, paymentDate *sql.NullTime) (*models.PaymentRecord, error)
	ListOutstandingByMonth(ctx context.Context, monthKey string) ([]*models.OutstandingRecord, error)
}

// Service реализует операции платёжного реестра.
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

// ByMonth возвращает все платёжные записи за месяц.
func (s *Service) ByMonth(ctx context.Context, monthKey string) ([]*models.PaymentRecord, error) {
	return s.repo.ListPaymentsByMonth(ctx, monthKey)
}

// History возвращает историю платежей участника в обратном хронологическом порядке.
func (s *Service) History(ctx context.Context, memberID int) ([]*models.PaymentRecord, error) {
	return s.repo.ListMemberPayments(ctx, memberID)
}

// CurrentMonth возвращает платёжную запись участника за текущий календарный месяц.
func (s *Service) CurrentMonth(ctx context.Context, memberID int) (*models.PaymentRecord, error) {
	return s.repo.GetPaymentByMemberMonth(ctx, memberID, month.CurrentKey())
}

// Record записывает платёж участника за месяц. Участник должен существовать,
// повторная запись за тот же месяц отклоняется: это защита от дублей, не upsert.
// Статус платежа утверждается админом и не выводится из сумм.
func (s *Service) Record(ctx context.Context, adminID int, req models.DummyRecordPayment) (*models.PaymentRecord, error) {
	const op = "payment.Record"

	year, monthNumber, err := month.Parse(req.Month)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.repo.GetMember(ctx, req.MemberID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.repo.GetPaymentByMemberMonth(ctx, req.MemberID, req.Month)
	if err == nil {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrDuplicatePayment)
	}
	if !errors.Is(err, repository.ErrPaymentNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var paymentDate *time.Time
	if req.PaymentDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		paymentDate = &parsed
	}

	record := models.PaymentRecord{
		MemberID:    req.MemberID,
		Month:       req.Month,
		Year:        year,
		MonthNumber: monthNumber,
		AmountDue:   money.FromFloat(req.AmountDue),
		AmountPaid:  money.FromFloat(req.AmountPaid),
		Status:      req.Status,
		PaymentDate: paymentDate,
		RecordedBy:  adminID,
		Notes:       req.Notes,
	}

	created, err := s.repo.CreatePayment(ctx, record)
	if err != nil {
		return nil, err
	}
	s.log.Info("recorded payment",
		slog.Int("id", created.ID),
		slog.Int("member_id", created.MemberID),
		slog.String("month", created.Month))
	return created, nil
}

// Update частично обновляет платёжную запись.
// Пустая строка в payment_date снимает ранее записанную дату оплаты.
func (s *Service) Update(ctx context.Context, id int, req models.DummyUpdatePayment) (*models.PaymentRecord, error) {
	const op = "payment.Update"

	var paymentDate *sql.NullTime
	if req.PaymentDate != nil {
		if *req.PaymentDate == "" {
			paymentDate = &sql.NullTime{}
		} else {
			parsed, err := time.Parse("2006-01-02", *req.PaymentDate)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			paymentDate = &sql.NullTime{Time: parsed, Valid: true}
		}
	}

	return s.repo.UpdatePayment(ctx, id, req, paymentDate)
}

// Outstanding возвращает неоплаченные и частично оплаченные записи за месяц
// вместе с данными участников.
func (s *Service) Outstanding(ctx context.Context, monthKey string) ([]*models.OutstandingRecord, error) {
	return s.repo.ListOutstandingByMonth(ctx, monthKey)
}
