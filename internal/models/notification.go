package models

import (
	"time"

	"github.com/magabrotheeeer/dues-ledger/internal/lib/money"
)

// Типы и статусы уведомлений.
const (
	NotificationPaymentReminder = "payment_reminder"
	NotificationBalanceInfo     = "balance_info"

	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

// NotificationLog журнальная запись об отправленном участнику сообщении.
// Журнал только пополняется, записи не изменяются.
type NotificationLog struct {
	ID       int       `json:"id"`
	MemberID int       `json:"member_id"`
	Type     string    `json:"type"` // payment_reminder или balance_info
	Message  string    `json:"message"`
	SentAt   time.Time `json:"sent_at"`
	SentBy   int       `json:"sent_by"` // ID администратора
	Status   string    `json:"status"`  // sent или failed
}

// DummySendNotification используется для приёма данных запроса на рассылку.
type DummySendNotification struct {
	MemberIDs []int  `json:"member_ids" validate:"required,min=1,dive,required"`
	Type      string `json:"type" validate:"required,oneof=payment_reminder balance_info"`
	Message   string `json:"message" validate:"required"`
}

// ReminderInfo сообщение о задолженности, публикуемое планировщиком в очередь
// и доставляемое участнику сервисом-отправителем.
type ReminderInfo struct {
	MemberID    int          `json:"member_id"`
	MemberName  string       `json:"member_name"`
	MemberPhone string       `json:"member_phone"`
	Month       string       `json:"month"`
	AmountDue   money.Amount `json:"amount_due"`
	AmountPaid  money.Amount `json:"amount_paid"`
}
