package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/dues-ledger/internal/lib/money"
)

// CountMembers возвращает общее число участников.
func (s *Storage) CountMembers(ctx context.Context) (int, error) {
	const op = "storage.CountMembers"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountActiveMembers возвращает число участников со статусом active.
func (s *Storage) CountActiveMembers(ctx context.Context) (int, error) {
	const op = "storage.CountActiveMembers"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM members WHERE status = 'active'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// SumCollectionsForMonth возвращает сумму фактически собранных платежей за месяц.
func (s *Storage) SumCollectionsForMonth(ctx context.Context, monthKey string) (money.Amount, error) {
	const op = "storage.SumCollectionsForMonth"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total money.Amount
	err := s.DB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_paid), 0) FROM payment_records WHERE month = $1`,
		monthKey).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// CountPendingForMonth возвращает число неоплаченных и частично оплаченных записей за месяц.
func (s *Storage) CountPendingForMonth(ctx context.Context, monthKey string) (int, error) {
	const op = "storage.CountPendingForMonth"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM payment_records
		 WHERE month = $1 AND status IN ('unpaid', 'partial')`,
		monthKey).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// SumCashBalances возвращает суммарный кассовый баланс всех участников.
func (s *Storage) SumCashBalances(ctx context.Context) (money.Amount, error) {
	const op = "storage.SumCashBalances"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total money.Amount
	err := s.DB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(cash_balance), 0) FROM members`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
