package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/repository"
)

type ATMRepository struct {
	db *sql.DB
}

func NewATMRepository(db *sql.DB) *ATMRepository {
	return &ATMRepository{db: db}
}

func (r *ATMRepository) FindByID(ctx context.Context, atmID string) (*models.ATM, error) {
	var atm models.ATM
	err := r.db.QueryRowContext(ctx, `
		SELECT atm_id, location, supported_currency, available_cash, last_used
		FROM atms WHERE atm_id = $1`, atmID).
		Scan(&atm.ATMID, &atm.Location, &atm.SupportedCurrency, &atm.AvailableCash, &atm.LastUsed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: atm %s", repository.ErrNotFound, atmID)
	}
	if err != nil {
		return nil, fmt.Errorf("find atm: %w", err)
	}
	return &atm, nil
}

func (r *ATMRepository) AdjustCash(ctx context.Context, atmID string, delta float64) (float64, error) {
	var cash float64
	err := r.db.QueryRowContext(ctx, `
		UPDATE atms
		SET available_cash = available_cash + $1, last_used = NOW()
		WHERE atm_id = $2 AND available_cash + $1 >= 0
		RETURNING available_cash`, delta, atmID).Scan(&cash)
	if err == nil {
		return cash, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("adjust cash: %w", err)
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM atms WHERE atm_id = $1)`, atmID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("adjust cash: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: atm %s", repository.ErrNotFound, atmID)
	}
	return 0, fmt.Errorf("%w: atm %s", repository.ErrInsufficientCash, atmID)
}
