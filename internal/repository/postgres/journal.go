package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/repository"
)

// JournalRepository records one row per cash-moving operation and doubles as
// the idempotency guard.
type JournalRepository struct {
	db *sql.DB
}

func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

func (r *JournalRepository) Begin(ctx context.Context, rec *models.TransactionRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO atm_transactions (transaction_id, type, card_number, customer_id, account_number, atm_id,
			amount, currency, account_delta, account_currency, fee, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
		ON CONFLICT (transaction_id) DO NOTHING`,
		rec.TransactionID, rec.Type, rec.CardNumber, rec.CustomerID, rec.AccountNumber, rec.ATMID,
		rec.Amount, rec.Currency, rec.AccountDelta, rec.AccountCurrency, rec.Fee, models.StatusPending, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("begin transaction record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: transaction %s", repository.ErrDuplicate, rec.TransactionID)
	}
	rec.Status = models.StatusPending
	rec.UpdatedAt = rec.CreatedAt
	return nil
}

func (r *JournalRepository) UpdateStatus(ctx context.Context, transactionID string, status models.TransactionStatus, errorMessage string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE atm_transactions SET status = $1, error_message = $2, updated_at = NOW()
		WHERE transaction_id = $3`, status, errorMessage, transactionID)
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: transaction %s", repository.ErrNotFound, transactionID)
	}
	return nil
}

func (r *JournalRepository) FindByID(ctx context.Context, transactionID string) (*models.TransactionRecord, error) {
	var rec models.TransactionRecord
	err := r.db.QueryRowContext(ctx, `
		SELECT transaction_id, type, card_number, customer_id, account_number, atm_id, amount, currency,
			account_delta, account_currency, fee, status, error_message, created_at, updated_at
		FROM atm_transactions WHERE transaction_id = $1`, transactionID).
		Scan(&rec.TransactionID, &rec.Type, &rec.CardNumber, &rec.CustomerID, &rec.AccountNumber, &rec.ATMID,
			&rec.Amount, &rec.Currency, &rec.AccountDelta, &rec.AccountCurrency, &rec.Fee, &rec.Status,
			&rec.ErrorMessage, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %s", repository.ErrNotFound, transactionID)
	}
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return &rec, nil
}

func (r *JournalRepository) DailyWithdrawn(ctx context.Context, cardNumber string, since time.Time) (map[string]float64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT currency, COALESCE(SUM(amount), 0)
		FROM atm_transactions
		WHERE card_number = $1 AND type = $2 AND status IN ($3, $4) AND created_at >= $5
		GROUP BY currency`,
		cardNumber, models.TransactionWithdrawal, models.StatusPending, models.StatusCompleted, since)
	if err != nil {
		return nil, fmt.Errorf("daily withdrawn: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var currency string
		var total float64
		if err := rows.Scan(&currency, &total); err != nil {
			return nil, fmt.Errorf("scan daily withdrawn: %w", err)
		}
		totals[currency] = total
	}
	return totals, rows.Err()
}
