package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/dues-ledger/internal/gateway/whatsapp"
	"github.com/magabrotheeeer/dues-ledger/internal/models"
	"github.com/magabrotheeeer/dues-ledger/internal/storage/repository"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetMember(ctx context.Context, id int) (*models.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockRepository) CreateNotificationBatch(ctx context.Context, logs []models.NotificationLog) ([]*models.NotificationLog, error) {
	args := m.Called(ctx, logs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.NotificationLog), args.Error(1)
}

func (m *MockRepository) ListNotifications(ctx context.Context) ([]*models.NotificationLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.NotificationLog), args.Error(1)
}

func (m *MockRepository) ListMemberNotifications(ctx context.Context, memberID int) ([]*models.NotificationLog, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.NotificationLog), args.Error(1)
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

func TestService_Send(t *testing.T) {
	first := &models.Member{ID: 1, Phone: "+79990001111"}
	second := &models.Member{ID: 2, Phone: "+79990002222"}

	req := models.DummySendNotification{
		MemberIDs: []int{1, 2},
		Type:      models.NotificationBalanceInfo,
		Message:   "Ваш баланс пополнен",
	}

	t.Run("по записи журнала на каждого участника", func(t *testing.T) {
		repo := new(MockRepository)
		gateway := new(MockGateway)

		repo.On("GetMember", mock.Anything, 1).Return(first, nil).Once()
		repo.On("GetMember", mock.Anything, 2).Return(second, nil).Once()
		gateway.On("Send", mock.Anything, first.Phone, req.Message).
			Return(whatsapp.DeliveryResult{Status: whatsapp.StatusSent}, nil).Once()
		gateway.On("Send", mock.Anything, second.Phone, req.Message).
			Return(whatsapp.DeliveryResult{Status: whatsapp.StatusSent}, nil).Once()
		repo.On("CreateNotificationBatch", mock.Anything, mock.MatchedBy(func(logs []models.NotificationLog) bool {
			return len(logs) == 2 &&
				logs[0].MemberID == 1 && logs[0].Status == models.NotificationSent &&
				logs[1].MemberID == 2 && logs[1].SentBy == 7
		})).Return([]*models.NotificationLog{{ID: 1}, {ID: 2}}, nil).Once()

		svc := New(repo, gateway, newNoopLogger())
		logs, err := svc.Send(context.Background(), 7, req)

		require.NoError(t, err)
		assert.Len(t, logs, 2)
		repo.AssertExpectations(t)
		gateway.AssertExpectations(t)
	})

	t.Run("неизвестный участник - ничего не записывается", func(t *testing.T) {
		repo := new(MockRepository)
		gateway := new(MockGateway)

		repo.On("GetMember", mock.Anything, 1).Return(first, nil).Once()
		gateway.On("Send", mock.Anything, first.Phone, req.Message).
			Return(whatsapp.DeliveryResult{Status: whatsapp.StatusSent}, nil).Once()
		repo.On("GetMember", mock.Anything, 2).
			Return(nil, repository.ErrMemberNotFound).Once()

		svc := New(repo, gateway, newNoopLogger())
		logs, err := svc.Send(context.Background(), 7, req)

		assert.ErrorIs(t, err, repository.ErrMemberNotFound)
		assert.Nil(t, logs)
		repo.AssertNotCalled(t, "CreateNotificationBatch", mock.Anything, mock.Anything)
	})

	t.Run("ошибка шлюза фиксируется статусом failed", func(t *testing.T) {
		repo := new(MockRepository)
		gateway := new(MockGateway)

		singleReq := models.DummySendNotification{
			MemberIDs: []int{1},
			Type:      models.NotificationPaymentReminder,
			Message:   "Оплатите взнос",
		}

		repo.On("GetMember", mock.Anything, 1).Return(first, nil).Once()
		gateway.On("Send", mock.Anything, first.Phone, singleReq.Message).
			Return(whatsapp.DeliveryResult{}, errors.New("gateway unavailable")).Once()
		repo.On("CreateNotificationBatch", mock.Anything, mock.MatchedBy(func(logs []models.NotificationLog) bool {
			return len(logs) == 1 && logs[0].Status == models.NotificationFailed
		})).Return([]*models.NotificationLog{{ID: 3, Status: models.NotificationFailed}}, nil).Once()

		svc := New(repo, gateway, newNoopLogger())
		logs, err := svc.Send(context.Background(), 7, singleReq)

		require.NoError(t, err)
		assert.Equal(t, models.NotificationFailed, logs[0].Status)
		repo.AssertExpectations(t)
	})
}
