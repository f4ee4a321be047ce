// Package repository declares the storage boundary of the transaction engine.
// Balance and cash mutations are single conditional updates so concurrent
// requests for the same account or ATM cannot both pass a funds check.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/atmnet/backend/internal/models"
)

type CustomerRepository interface {
	// FindByCardNumber returns the card owner with Cards loaded.
	FindByCardNumber(ctx context.Context, cardNumber string) (*models.Customer, error)
	FindByID(ctx context.Context, id string) (*models.Customer, error)
	TouchCard(ctx context.Context, cardNumber string, at time.Time) error
}

type AccountRepository interface {
	ListByCustomer(ctx context.Context, customerID string) ([]models.Account, error)
	// AdjustBalance applies delta and returns the new balance, or
	// ErrInsufficientFunds when the result would be negative.
	AdjustBalance(ctx context.Context, accountNumber string, delta float64) (float64, error)
}

type ATMRepository interface {
	FindByID(ctx context.Context, atmID string) (*models.ATM, error)
	// AdjustCash applies delta and returns the new cash level, or
	// ErrInsufficientCash when the result would be negative.
	AdjustCash(ctx context.Context, atmID string, delta float64) (float64, error)
}

type JournalRepository interface {
	// Begin stores a pending record. ErrDuplicate means the id was seen before.
	Begin(ctx context.Context, record *models.TransactionRecord) error
	UpdateStatus(ctx context.Context, transactionID string, status models.TransactionStatus, errorMessage string) error
	FindByID(ctx context.Context, transactionID string) (*models.TransactionRecord, error)
	// DailyWithdrawn sums pending and completed withdrawals for the card since
	// the given instant, keyed by dispensed currency.
	DailyWithdrawn(ctx context.Context, cardNumber string, since time.Time) (map[string]float64, error)
}

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("duplicate entry")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInsufficientCash  = errors.New("insufficient cash")
)
