package sender

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/dues-ledger/internal/gateway/whatsapp"
	"github.com/magabrotheeeer/dues-ledger/internal/lib/money"
	"github.com/magabrotheeeer/dues-ledger/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateNotificationLog(ctx context.Context, l models.NotificationLog) (*models.NotificationLog, error) {
	args := m.Called(ctx, l)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NotificationLog), args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Send(ctx context.Context, phone, message string) (whatsapp.DeliveryResult, error) {
	args := m.Called(ctx, phone, message)
	return args.Get(0).(whatsapp.DeliveryResult), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_HandleReminder(t *testing.T) {
	const systemUserID = 1

	reminder := models.ReminderInfo{
		MemberID:    5,
		MemberName:  "Иван Иванов",
		MemberPhone: "+79990001122",
		Month:       "2024-03",
		AmountDue:   money.Amount(5000),
		AmountPaid:  money.Amount(2000),
	}
	body, err := json.Marshal(reminder)
	require.NoError(t, err)

	repo := new(MockRepository)
	gateway := new(MockGateway)

	gateway.On("Send", mock.Anything, reminder.MemberPhone, mock.MatchedBy(func(msg string) bool {
		return len(msg) > 0
	})).Return(whatsapp.DeliveryResult{Status: whatsapp.StatusSent}, nil).Once()
	repo.On("CreateNotificationLog", mock.Anything, mock.MatchedBy(func(l models.NotificationLog) bool {
		return l.MemberID == 5 &&
			l.Type == models.NotificationPaymentReminder &&
			l.SentBy == systemUserID &&
			l.Status == models.NotificationSent
	})).Return(&models.NotificationLog{ID: 1}, nil).Once()

	svc := New(repo, gateway, newNoopLogger(), systemUserID)
	require.NoError(t, svc.HandleReminder(body))

	repo.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestService_HandleReminder_BadPayload(t *testing.T) {
	repo := new(MockRepository)
	gateway := new(MockGateway)

	svc := New(repo, gateway, newNoopLogger(), 1)
	err := svc.HandleReminder([]byte("not json"))

	assert.Error(t, err)
	repo.AssertNotCalled(t, "CreateNotificationLog", mock.Anything, mock.Anything)
	gateway.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}
