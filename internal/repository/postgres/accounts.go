package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/repository"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT account_number, customer_id, account_type, currency, balance, is_active, last_transaction
		FROM accounts WHERE customer_id = $1
		ORDER BY account_number`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.AccountNumber, &a.CustomerID, &a.AccountType, &a.Currency,
			&a.Balance, &a.IsActive, &a.LastTransaction); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// AdjustBalance is one conditional statement; the row stays untouched when the
// result would go negative.
func (r *AccountRepository) AdjustBalance(ctx context.Context, accountNumber string, delta float64) (float64, error) {
	var balance float64
	err := r.db.QueryRowContext(ctx, `
		UPDATE accounts
		SET balance = balance + $1, last_transaction = NOW()
		WHERE account_number = $2 AND balance + $1 >= 0
		RETURNING balance`, delta, accountNumber).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("adjust balance: %w", err)
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE account_number = $1)`, accountNumber).Scan(&exists); err != nil {
		return 0, fmt.Errorf("adjust balance: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: account %s", repository.ErrNotFound, accountNumber)
	}
	return 0, fmt.Errorf("%w: account %s", repository.ErrInsufficientFunds, accountNumber)
}
