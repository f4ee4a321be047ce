// Package postgres implements the repositories on PostgreSQL via lib/pq.
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

var (
	_ repository.CustomerRepository = (*CustomerRepository)(nil)
	_ repository.AccountRepository  = (*AccountRepository)(nil)
	_ repository.ATMRepository      = (*ATMRepository)(nil)
	_ repository.JournalRepository  = (*JournalRepository)(nil)
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) FindByCardNumber(ctx context.Context, cardNumber string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.QueryRowContext(ctx, `
		SELECT c.id, c.first_name, c.last_name, c.created_at, c.updated_at
		FROM customers c
		JOIN cards k ON k.customer_id = c.id
		WHERE k.card_number = $1`, cardNumber).
		Scan(&customer.ID, &customer.FirstName, &customer.LastName, &customer.CreatedAt, &customer.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: card %s", repository.ErrNotFound, cardNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("find customer by card: %w", err)
	}

	cards, err := r.loadCards(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	customer.Cards = cards
	return &customer, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, created_at, updated_at
		FROM customers WHERE id = $1`, id).
		Scan(&customer.ID, &customer.FirstName, &customer.LastName, &customer.CreatedAt, &customer.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: customer %s", repository.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}

	cards, err := r.loadCards(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	customer.Cards = cards
	return &customer, nil
}

func (r *CustomerRepository) TouchCard(ctx context.Context, cardNumber string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE cards SET last_used = $1 WHERE card_number = $2`, at, cardNumber)
	if err != nil {
		return fmt.Errorf("touch card: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: card %s", repository.ErrNotFound, cardNumber)
	}
	return nil
}

func (r *CustomerRepository) loadCards(ctx context.Context, customerID string) ([]models.Card, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT card_number, customer_id, card_type, pin_hash, expiry_date, is_blocked, daily_withdrawal_limit, last_used
		FROM cards WHERE customer_id = $1
		ORDER BY card_number`, customerID)
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.CardNumber, &c.CustomerID, &c.CardType, &c.PINHash, &c.ExpiryDate,
			&c.IsBlocked, &c.DailyWithdrawalLimit, &c.LastUsed); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
