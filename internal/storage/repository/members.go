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

const memberColumns = `id, name, phone, email, status, cash_balance, user_id, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }) (*models.Member, error) {
	var m models.Member
	if err := row.Scan(&m.ID, &m.Name, &m.Phone, &m.Email, &m.Status,
		&m.CashBalance, &m.UserID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMembers возвращает всех участников.
func (s *Storage) ListMembers(ctx context.Context) ([]*models.Member, error) {
	const op = "storage.ListMembers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + memberColumns + `
			  FROM members
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetMember возвращает участника по его ID.
func (s *Storage) GetMember(ctx context.Context, id int) (*models.Member, error) {
	const op = "storage.GetMember"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + memberColumns + `
			  FROM members
			  WHERE id = $1`
	m, err := scanMember(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// GetMemberByUserID возвращает участника по ID его учётной записи.
func (s *Storage) GetMemberByUserID(ctx context.Context, userID int) (*models.Member, error) {
	const op = "storage.GetMemberByUserID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + memberColumns + `
			  FROM members
			  WHERE user_id = $1`
	m, err := scanMember(s.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// CreateMemberWithUser вставляет учётную запись и профиль участника одной транзакцией:
// при неудаче любого шага откатываются оба.
func (s *Storage) CreateMemberWithUser(ctx context.Context, user models.User, member models.Member) (*models.Member, error) {
	const op = "storage.CreateMemberWithUser"
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

	var userID int
	userQuery := `INSERT INTO users (email, password_hash, role)
				  VALUES ($1, $2, $3)
				  RETURNING id`
	if err := tx.QueryRowContext(ctx, userQuery,
		user.Email, user.PasswordHash, user.Role).Scan(&userID); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	memberQuery := `INSERT INTO members (name, phone, email, status, cash_balance, user_id)
					VALUES ($1, $2, $3, $4, $5, $6)
					RETURNING ` + memberColumns
	m, err := scanMember(tx.QueryRowContext(ctx, memberQuery,
		member.Name, member.Phone, member.Email, member.Status, member.CashBalance, userID))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// UpdateMember обновляет только присланные поля участника, всегда освежая updated_at.
func (s *Storage) UpdateMember(ctx context.Context, id int, req models.DummyUpdateMember) (*models.Member, error) {
	const op = "storage.UpdateMember"
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
	if req.Name != nil {
		set = append(set, "name = "+arg(*req.Name))
	}
	if req.Phone != nil {
		set = append(set, "phone = "+arg(*req.Phone))
	}
	if req.Email != nil {
		set = append(set, "email = "+arg(*req.Email))
	}
	if req.Status != nil {
		set = append(set, "status = "+arg(*req.Status))
	}
	if req.CashBalance != nil {
		set = append(set, "cash_balance = "+arg(money.FromFloat(*req.CashBalance)))
	}

	query := `UPDATE members
			  SET ` + strings.Join(set, ", ") + `
			  WHERE id = ` + arg(id) + `
			  RETURNING ` + memberColumns
	m, err := scanMember(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// DeleteMemberCascade удаляет участника вместе с его журналом уведомлений,
// платёжными записями и учётной записью. Всё выполняется одной транзакцией,
// порядок удаления диктуется внешними ключами: сначала дочерние таблицы.
func (s *Storage) DeleteMemberCascade(ctx context.Context, id int) error {
	const op = "storage.DeleteMemberCascade"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var userID int
	if err := tx.QueryRowContext(ctx,
		`SELECT user_id FROM members WHERE id = $1`, id).Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM notification_logs WHERE member_id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM payment_records WHERE member_id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM members WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM users WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
