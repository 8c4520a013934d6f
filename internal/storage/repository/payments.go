package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/dues-ledger/internal/lib/money"
	"github.com/magabrotheeeer/dues-ledger/internal/models"
)

const paymentColumns = `id, member_id, month, year, month_number, amount_due, amount_paid,
			      status, payment_date, recorded_by, notes, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (*models.PaymentRecord, error) {
	var p models.PaymentRecord
	var paymentDate sql.NullTime
	var notes sql.NullString
	if err := row.Scan(&p.ID, &p.MemberID, &p.Month, &p.Year, &p.MonthNumber,
		&p.AmountDue, &p.AmountPaid, &p.Status, &paymentDate, &p.RecordedBy,
		&notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if paymentDate.Valid {
		p.PaymentDate = &paymentDate.Time
	}
	if notes.Valid {
		p.Notes = &notes.String
	}
	return &p, nil
}

func (s *Storage) queryPayments(ctx context.Context, op, query string, args ...any) ([]*models.PaymentRecord, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PaymentRecord
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListPaymentsByMonth возвращает все платёжные записи за месяц,
// новые записи первыми.
func (s *Storage) ListPaymentsByMonth(ctx context.Context, monthKey string) ([]*models.PaymentRecord, error) {
	const op = "storage.ListPaymentsByMonth"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + paymentColumns + `
			  FROM payment_records
			  WHERE month = $1
			  ORDER BY created_at DESC`
	return s.queryPayments(ctx, op, query, monthKey)
}

// ListMemberPayments возвращает историю платежей участника в обратном
// хронологическом порядке независимо от порядка вставки.
func (s *Storage) ListMemberPayments(ctx context.Context, memberID int) ([]*models.PaymentRecord, error) {
	const op = "storage.ListMemberPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + paymentColumns + `
			  FROM payment_records
			  WHERE member_id = $1
			  ORDER BY year DESC, month_number DESC`
	return s.queryPayments(ctx, op, query, memberID)
}

// ListRecentMemberPayments возвращает последние limit платежей участника.
func (s *Storage) ListRecentMemberPayments(ctx context.Context, memberID, limit int) ([]*models.PaymentRecord, error) {
	const op = "storage.ListRecentMemberPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + paymentColumns + `
			  FROM payment_records
			  WHERE member_id = $1
			  ORDER BY year DESC, month_number DESC
			  LIMIT $2`
	return s.queryPayments(ctx, op, query, memberID, limit)
}

// GetPaymentByMemberMonth возвращает платёжную запись участника за месяц.
func (s *Storage) GetPaymentByMemberMonth(ctx context.Context, memberID int, monthKey string) (*models.PaymentRecord, error) {
	const op = "storage.GetPaymentByMemberMonth"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + paymentColumns + `
			  FROM payment_records
			  WHERE member_id = $1 AND month = $2`
	p, err := scanPayment(s.DB.QueryRowContext(ctx, query, memberID, monthKey))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrPaymentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// CreatePayment вставляет новую платёжную запись и возвращает её целиком.
func (s *Storage) CreatePayment(ctx context.Context, p models.PaymentRecord) (*models.PaymentRecord, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payment_records (member_id, month, year, month_number,
			      amount_due, amount_paid, status, payment_date, recorded_by, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + paymentColumns
	created, err := scanPayment(s.DB.QueryRowContext(ctx, query,
		p.MemberID, p.Month, p.Year, p.MonthNumber, p.AmountDue, p.AmountPaid,
		p.Status, p.PaymentDate, p.RecordedBy, p.Notes))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// UpdatePayment обновляет только присланные поля платёжной записи,
// всегда освежая updated_at.
func (s *Storage) UpdatePayment(ctx context.Context, id int, req models.DummyUpdatePayment, paymentDate *sql.NullTime) (*models.PaymentRecord, error) {
	const op = "storage.UpdatePayment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	set := []string{"updated_at = NOW()"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if req.AmountPaid != nil {
		set = append(set, "amount_paid = "+arg(money.FromFloat(*req.AmountPaid)))
	}
	if req.Status != nil {
		set = append(set, "status = "+arg(*req.Status))
	}
	if paymentDate != nil {
		set = append(set, "payment_date = "+arg(*paymentDate))
	}
	if req.Notes != nil {
		set = append(set, "notes = "+arg(*req.Notes))
	}

	query := `UPDATE payment_records
			  SET ` + strings.Join(set, ", ") + `
			  WHERE id = ` + arg(id) + `
			  RETURNING ` + paymentColumns
	p, err := scanPayment(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrPaymentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListOutstandingByMonth возвращает неоплаченные и частично оплаченные записи
// за месяц вместе с данными участников для рассылки напоминаний.
func (s *Storage) ListOutstandingByMonth(ctx context.Context, monthKey string) ([]*models.OutstandingRecord, error) {
	const op = "storage.ListOutstandingByMonth"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.member_id, p.month, p.year, p.month_number, p.amount_due,
			      p.amount_paid, p.status, p.payment_date, p.recorded_by, p.notes,
			      p.created_at, p.updated_at, m.name, m.phone, m.email
			  FROM payment_records p
			  JOIN members m ON m.id = p.member_id
			  WHERE p.month = $1 AND p.status IN ('unpaid', 'partial')
			  ORDER BY p.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, monthKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.OutstandingRecord
	for rows.Next() {
		var r models.OutstandingRecord
		var paymentDate sql.NullTime
		var notes sql.NullString
		if err := rows.Scan(&r.ID, &r.MemberID, &r.Month, &r.Year, &r.MonthNumber,
			&r.AmountDue, &r.AmountPaid, &r.Status, &paymentDate, &r.RecordedBy,
			&notes, &r.CreatedAt, &r.UpdatedAt,
			&r.MemberName, &r.MemberPhone, &r.MemberEmail); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if paymentDate.Valid {
			r.PaymentDate = &paymentDate.Time
		}
		if notes.Valid {
			r.Notes = &notes.String
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
