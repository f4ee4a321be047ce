package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/atmnet/backend/internal/models"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Account, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockAccountRepository) AdjustBalance(ctx context.Context, accountNumber string, delta float64) (float64, error) {
	args := m.Called(ctx, accountNumber, delta)
	return args.Get(0).(float64), args.Error(1)
}

type MockATMRepository struct {
	mock.Mock
}

func (m *MockATMRepository) FindByID(ctx context.Context, atmID string) (*models.ATM, error) {
	args := m.Called(ctx, atmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ATM), args.Error(1)
}

func (m *MockATMRepository) AdjustCash(ctx context.Context, atmID string, delta float64) (float64, error) {
	args := m.Called(ctx, atmID, delta)
	return args.Get(0).(float64), args.Error(1)
}

type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) Begin(ctx context.Context, rec *models.TransactionRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateStatus(ctx context.Context, transactionID string, status models.TransactionStatus, errorMessage string) error {
	args := m.Called(ctx, transactionID, status, errorMessage)
	return args.Error(0)
}

func (m *MockJournalRepository) FindByID(ctx context.Context, transactionID string) (*models.TransactionRecord, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionRecord), args.Error(1)
}

func (m *MockJournalRepository) DailyWithdrawn(ctx context.Context, cardNumber string, since time.Time) (map[string]float64, error) {
	args := m.Called(ctx, cardNumber, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}
