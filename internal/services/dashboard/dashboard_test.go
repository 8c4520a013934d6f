package dashboard

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/dues-ledger/internal/lib/money"
	"github.com/magabrotheeeer/dues-ledger/internal/lib/month"
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

func (m *MockRepository) GetPaymentByMemberMonth(ctx context.Context, memberID int, monthKey string) (*models.PaymentRecord, error) {
	args := m.Called(ctx, memberID, monthKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentRecord), args.Error(1)
}

func (m *MockRepository) ListRecentMemberPayments(ctx context.Context, memberID, limit int) ([]*models.PaymentRecord, error) {
	args := m.Called(ctx, memberID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PaymentRecord), args.Error(1)
}

func (m *MockRepository) CountMembers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CountActiveMembers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) SumCollectionsForMonth(ctx context.Context, monthKey string) (money.Amount, error) {
	args := m.Called(ctx, monthKey)
	return args.Get(0).(money.Amount), args.Error(1)
}

func (m *MockRepository) CountPendingForMonth(ctx context.Context, monthKey string) (int, error) {
	args := m.Called(ctx, monthKey)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) SumCashBalances(ctx context.Context) (money.Amount, error) {
	args := m.Called(ctx)
	return args.Get(0).(money.Amount), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_Admin(t *testing.T) {
	repo := new(MockRepository)
	currentMonth := month.CurrentKey()

	repo.On("CountMembers", mock.Anything).Return(3, nil).Once()
	repo.On("CountActiveMembers", mock.Anything).Return(2, nil).Once()
	repo.On("SumCollectionsForMonth", mock.Anything, currentMonth).
		Return(money.Amount(15000), nil).Once()
	repo.On("CountPendingForMonth", mock.Anything, currentMonth).Return(2, nil).Once()
	repo.On("SumCashBalances", mock.Anything).Return(money.Amount(35150), nil).Once()

	svc := New(repo, newNoopLogger())
	summary, err := svc.Admin(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalMembers)
	assert.Equal(t, 2, summary.ActiveMembers)
	assert.Equal(t, "150.00", summary.CurrentMonthCollections.String())
	assert.Equal(t, 2, summary.PendingPayments)
	assert.Equal(t, "351.50", summary.TotalCashBalance.String())
	repo.AssertExpectations(t)
}

func TestService_Member(t *testing.T) {
	member := &models.Member{ID: 3, Name: "Иван Иванов"}
	recent := []*models.PaymentRecord{{ID: 2, Month: "2024-02"}, {ID: 1, Month: "2024-01"}}

	tests := []struct {
		name          string
		setupMocks    func(*MockRepository)
		expectCurrent bool
		expectedError error
	}{
		{
			name: "с платежом за текущий месяц",
			setupMocks: func(r *MockRepository) {
				r.On("GetMember", mock.Anything, 3).Return(member, nil).Once()
				r.On("GetPaymentByMemberMonth", mock.Anything, 3, month.CurrentKey()).
					Return(&models.PaymentRecord{ID: 5}, nil).Once()
				r.On("ListRecentMemberPayments", mock.Anything, 3, recentPaymentsLimit).
					Return(recent, nil).Once()
			},
			expectCurrent: true,
		},
		{
			name: "без платежа за текущий месяц",
			setupMocks: func(r *MockRepository) {
				r.On("GetMember", mock.Anything, 3).Return(member, nil).Once()
				r.On("GetPaymentByMemberMonth", mock.Anything, 3, month.CurrentKey()).
					Return(nil, repository.ErrPaymentNotFound).Once()
				r.On("ListRecentMemberPayments", mock.Anything, 3, recentPaymentsLimit).
					Return(recent, nil).Once()
			},
		},
		{
			name: "участник не найден",
			setupMocks: func(r *MockRepository) {
				r.On("GetMember", mock.Anything, 3).
					Return(nil, repository.ErrMemberNotFound).Once()
			},
			expectedError: repository.ErrMemberNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMocks(repo)

			svc := New(repo, newNoopLogger())
			summary, err := svc.Member(context.Background(), 3)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, summary)
			} else {
				require.NoError(t, err)
				assert.Equal(t, member, summary.Member)
				assert.Len(t, summary.RecentPayments, 2)
				if tt.expectCurrent {
					assert.NotNil(t, summary.CurrentMonthPayment)
				} else {
					assert.Nil(t, summary.CurrentMonthPayment)
				}
			}
			repo.AssertExpectations(t)
		})
	}
}
