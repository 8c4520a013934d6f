package models

import "github.com/magabrotheeeer/dues-ledger/internal/lib/money"

// MemberDashboard сводка для личного кабинета участника.
type MemberDashboard struct {
	Member              *Member          `json:"member"`
	CurrentMonthPayment *PaymentRecord   `json:"current_month_payment"`
	RecentPayments      []*PaymentRecord `json:"recent_payments"`
}

// AdminDashboard сводные показатели для панели администратора.
// Пять показателей считаются независимыми запросами без общего снапшота:
// при конкурентных записях числа могут расходиться между собой.
type AdminDashboard struct {
	TotalMembers            int          `json:"total_members"`
	ActiveMembers           int          `json:"active_members"`
	CurrentMonthCollections money.Amount `json:"current_month_collections"`
	PendingPayments         int          `json:"pending_payments"`
	TotalCashBalance        money.Amount `json:"total_cash_balance"`
}
