package models

import (
	"time"

	"github.com/magabrotheeeer/dues-ledger/internal/lib/money"
)

// Статусы участника.
const (
	MemberActive    = "active"
	MemberInactive  = "inactive"
	MemberSuspended = "suspended"
)

// Member представляет участника, платящего взносы.
// Каждый участник привязан ровно к одной учётной записи users.
type Member struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Phone       string       `json:"phone"`
	Email       string       `json:"email"`
	Status      string       `json:"status"` // active, inactive или suspended
	CashBalance money.Amount `json:"cash_balance"`
	UserID      int          `json:"user_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// DummyCreateMember используется для приёма данных запроса на создание участника.
// Пароль временный, участник задает свой при первом входе.
type DummyCreateMember struct {
	Name        string  `json:"name" validate:"required"`
	Phone       string  `json:"phone" validate:"required,min=10"`
	Email       string  `json:"email" validate:"required,email"`
	Status      string  `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	CashBalance float64 `json:"cash_balance" validate:"omitempty"`
	Password    string  `json:"password" validate:"required,min=6"`
}

// DummyUpdateMember используется для частичного обновления участника:
// обновляются только присланные поля.
type DummyUpdateMember struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Phone       *string  `json:"phone" validate:"omitempty,min=10"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	Status      *string  `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	CashBalance *float64 `json:"cash_balance"`
}
