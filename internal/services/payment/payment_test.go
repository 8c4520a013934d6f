package payment

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/dues-ledger/internal/lib/money"
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

func (m *MockRepository) ListPaymentsByMonth(ctx context.Context, monthKey string) ([]*models.PaymentRecord, error) {
	args := m.Called(ctx, monthKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PaymentRecord), args.Error(1)
}

func (m *MockRepository) ListMemberPayments(ctx context.Context, memberID int) ([]*models.PaymentRecord, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PaymentRecord), args.Error(1)
}

func (m *MockRepository) GetPaymentByMemberMonth(ctx context.Context, memberID int, monthKey string) (*models.PaymentRecord, error) {
	args := m.Called(ctx, memberID, monthKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentRecord), args.Error(1)
}

func (m *MockRepository) CreatePayment(ctx context.Context, p models.PaymentRecord) (*models.PaymentRecord, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentRecord), args.Error(1)
}

func (m *MockRepository) UpdatePayment(ctx context.Context, id int, req models.DummyUpdatePayment, paymentDate *sql.NullTime) (*models.PaymentRecord, error) {
	args := m.Called(ctx, id, req, paymentDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentRecord), args.Error(1)
}

func (m *MockRepository) ListOutstandingByMonth(ctx context.Context, monthKey string) ([]*models.OutstandingRecord, error) {
	args := m.Called(ctx, monthKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OutstandingRecord), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_Record(t *testing.T) {
	member := &models.Member{ID: 5, Name: "Иван Иванов"}

	tests := []struct {
		name          string
		req           models.DummyRecordPayment
		setupMocks    func(*MockRepository)
		expectedError error
	}{
		{
			name: "успешная запись платежа",
			req: models.DummyRecordPayment{
				MemberID:   5,
				Month:      "2024-03",
				AmountDue:  50.00,
				AmountPaid: 50.00,
				Status:     models.PaymentPaid,
			},
			setupMocks: func(r *MockRepository) {
				r.On("GetMember", mock.Anything, 5).Return(member, nil).Once()
				r.On("GetPaymentByMemberMonth", mock.Anything, 5, "2024-03").
					Return(nil, repository.ErrPaymentNotFound).Once()
				r.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p models.PaymentRecord) bool {
					return p.MemberID == 5 &&
						p.Month == "2024-03" &&
						p.Year == 2024 &&
						p.MonthNumber == 3 &&
						p.AmountDue == money.Amount(5000) &&
						p.RecordedBy == 1
				})).Return(&models.PaymentRecord{ID: 10, MemberID: 5, Month: "2024-03"}, nil).Once()
			},
		},
		{
			name: "участник не найден",
			req: models.DummyRecordPayment{
				MemberID:   99,
				Month:      "2024-03",
				AmountDue:  50.00,
				AmountPaid: 0,
				Status:     models.PaymentUnpaid,
			},
			setupMocks: func(r *MockRepository) {
				r.On("GetMember", mock.Anything, 99).
					Return(nil, repository.ErrMemberNotFound).Once()
			},
			expectedError: repository.ErrMemberNotFound,
		},
		{
			name: "повторная запись за тот же месяц",
			req: models.DummyRecordPayment{
				MemberID:   5,
				Month:      "2024-03",
				AmountDue:  50.00,
				AmountPaid: 50.00,
				Status:     models.PaymentPaid,
			},
			setupMocks: func(r *MockRepository) {
				r.On("GetMember", mock.Anything, 5).Return(member, nil).Once()
				r.On("GetPaymentByMemberMonth", mock.Anything, 5, "2024-03").
					Return(&models.PaymentRecord{ID: 10}, nil).Once()
			},
			expectedError: repository.ErrDuplicatePayment,
		},
		{
			name: "некорректный месяц",
			req: models.DummyRecordPayment{
				MemberID:   5,
				Month:      "март 2024",
				AmountDue:  50.00,
				AmountPaid: 0,
				Status:     models.PaymentUnpaid,
			},
			setupMocks:    func(_ *MockRepository) {},
			expectedError: errors.New("parsing time"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMocks(repo)
			svc := New(repo, newNoopLogger())

			created, err := svc.Record(context.Background(), 1, tt.req)

			if tt.expectedError != nil {
				require.Error(t, err)
				if errors.Is(tt.expectedError, repository.ErrMemberNotFound) ||
					errors.Is(tt.expectedError, repository.ErrDuplicatePayment) {
					assert.ErrorIs(t, err, tt.expectedError)
				}
				assert.Nil(t, created)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 10, created.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Update_ParsesPaymentDate(t *testing.T) {
	repo := new(MockRepository)
	paid := 50.00
	req := models.DummyUpdatePayment{AmountPaid: &paid}
	date := "2024-03-15"
	reqWithDate := models.DummyUpdatePayment{AmountPaid: &paid, PaymentDate: &date}

	repo.On("UpdatePayment", mock.Anything, 10, req, (*sql.NullTime)(nil)).
		Return(&models.PaymentRecord{ID: 10}, nil).Once()
	repo.On("UpdatePayment", mock.Anything, 11, reqWithDate, mock.MatchedBy(func(nt *sql.NullTime) bool {
		return nt != nil && nt.Valid && nt.Time.Format("2006-01-02") == "2024-03-15"
	})).Return(&models.PaymentRecord{ID: 11}, nil).Once()

	svc := New(repo, newNoopLogger())

	_, err := svc.Update(context.Background(), 10, req)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), 11, reqWithDate)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

// Пустая строка в payment_date снимает дату: в хранилище уходит NullTime с Valid=false.
func TestService_Update_ClearsPaymentDate(t *testing.T) {
	repo := new(MockRepository)
	empty := ""
	req := models.DummyUpdatePayment{PaymentDate: &empty}

	repo.On("UpdatePayment", mock.Anything, 12, req, mock.MatchedBy(func(nt *sql.NullTime) bool {
		return nt != nil && !nt.Valid
	})).Return(&models.PaymentRecord{ID: 12}, nil).Once()

	svc := New(repo, newNoopLogger())
	_, err := svc.Update(context.Background(), 12, req)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestService_CurrentMonth_NotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetPaymentByMemberMonth", mock.Anything, 5, mock.Anything).
		Return(nil, repository.ErrPaymentNotFound).Once()

	svc := New(repo, newNoopLogger())
	_, err := svc.CurrentMonth(context.Background(), 5)
	assert.ErrorIs(t, err, repository.ErrPaymentNotFound)
	repo.AssertExpectations(t)
}
