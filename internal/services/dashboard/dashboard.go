// Package dashboard собирает сводки для панели администратора и кабинета участника.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/dues-ledger/internal/lib/money"
	"github.com/magabrotheeeer/dues-ledger/internal/lib/month"
	"github.com/magabrotheeeer/dues-ledger/internal/models"
	"github.com/magabrotheeeer/dues-ledger/internal/storage/repository"
)

// Число последних платежей в кабинете участника.
const recentPaymentsLimit = 6

// Repository определяет методы чтения, из которых собираются сводки.
type Repository interface {
	GetMember(ctx context.Context, id int) (*models.Member, error)
	GetPaymentByMemberMonth(ctx context.Context, memberID int, monthKey string) (*models.PaymentRecord, error)
	ListRecentMemberPayments(ctx context.Context, memberID, limit int) ([]*models.PaymentRecord, error)
	CountMembers(ctx context.Context) (int, error)
	CountActiveMembers(ctx context.Context) (int, error)
	SumCollectionsForMonth(ctx context.Context, monthKey string) (money.Amount, error)
	CountPendingForMonth(ctx context.Context, monthKey string) (int, error)
	SumCashBalances(ctx context.Context) (money.Amount, error)
}

// Service реализует сборку сводок.
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

// Member собирает сводку для кабинета участника: профиль, платёж за текущий
// месяц и последние платежи. Отсутствие платежа за текущий месяц не ошибка.
func (s *Service) Member(ctx context.Context, memberID int) (*models.MemberDashboard, error) {
	const op = "dashboard.Member"

	m, err := s.repo.GetMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	current, err := s.repo.GetPaymentByMemberMonth(ctx, memberID, month.CurrentKey())
	if err != nil && !errors.Is(err, repository.ErrPaymentNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	recent, err := s.repo.ListRecentMemberPayments(ctx, memberID, recentPaymentsLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.MemberDashboard{
		Member:              m,
		CurrentMonthPayment: current,
		RecentPayments:      recent,
	}, nil
}

// Admin собирает пять сводных показателей. Запросы выполняются последовательно
// без общего снапшота: для панели администратора расхождение при конкурентных
// записях допустимо.
func (s *Service) Admin(ctx context.Context) (*models.AdminDashboard, error) {
	const op = "dashboard.Admin"

	currentMonth := month.CurrentKey()

	total, err := s.repo.CountMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	active, err := s.repo.CountActiveMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	collections, err := s.repo.SumCollectionsForMonth(ctx, currentMonth)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pending, err := s.repo.CountPendingForMonth(ctx, currentMonth)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	balance, err := s.repo.SumCashBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.AdminDashboard{
		TotalMembers:            total,
		ActiveMembers:           active,
		CurrentMonthCollections: collections,
		PendingPayments:         pending,
		TotalCashBalance:        balance,
	}, nil
}
