package models

import (
	"time"

	"github.com/magabrotheeeer/dues-ledger/internal/lib/money"
)

// Статусы платёжной записи. Статус утверждается админом при записи платежа,
// система не выводит его из сумм.
const (
	PaymentPaid    = "paid"
	PaymentUnpaid  = "unpaid"
	PaymentPartial = "partial"
)

// PaymentRecord представляет обязательство и оплату взноса участника за один
// календарный месяц. На пару (member_id, month) допускается не более одной записи,
// инвариант контролируется на уровне приложения.
type PaymentRecord struct {
	ID          int          `json:"id"`
	MemberID    int          `json:"member_id"`
	Month       string       `json:"month"` // Формат YYYY-MM
	Year        int          `json:"year"`
	MonthNumber int          `json:"month_number"` // 1-12, производное от month
	AmountDue   money.Amount `json:"amount_due"`
	AmountPaid  money.Amount `json:"amount_paid"`
	Status      string       `json:"status"`
	PaymentDate *time.Time   `json:"payment_date"`
	RecordedBy  int          `json:"recorded_by"` // ID администратора
	Notes       *string      `json:"notes"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// OutstandingRecord платёжная запись вместе с данными участника,
// используется для рассылки напоминаний о задолженности.
type OutstandingRecord struct {
	PaymentRecord
	MemberName  string `json:"member_name"`
	MemberPhone string `json:"member_phone"`
	MemberEmail string `json:"member_email"`
}

// DummyRecordPayment используется для приёма данных запроса на запись платежа.
type DummyRecordPayment struct {
	MemberID    int     `json:"member_id" validate:"required"`
	Month       string  `json:"month" validate:"required,datetime=2006-01"`
	AmountDue   float64 `json:"amount_due" validate:"required,gt=0"`
	AmountPaid  float64 `json:"amount_paid" validate:"gte=0"`
	Status      string  `json:"status" validate:"required,oneof=paid unpaid partial"`
	PaymentDate *string `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	Notes       *string `json:"notes"`
}

// DummyUpdatePayment используется для частичного обновления платёжной записи.
// Пустая строка в PaymentDate снимает дату оплаты, отсутствующее поле её не трогает.
type DummyUpdatePayment struct {
	AmountPaid  *float64 `json:"amount_paid" validate:"omitempty,gte=0"`
	Status      *string  `json:"status" validate:"omitempty,oneof=paid unpaid partial"`
	PaymentDate *string  `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	Notes       *string  `json:"notes"`
}
