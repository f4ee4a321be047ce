package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/repository"
)

type AccountRepository struct {
	s *Store
}

func (r *AccountRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	numbers := r.s.customerIndex[customerID]
	accounts := make([]models.Account, 0, len(numbers))
	for _, number := range numbers {
		if account, ok := r.s.accounts[number]; ok {
			accounts = append(accounts, *account)
		}
	}
	return accounts, nil
}

func (r *AccountRepository) AdjustBalance(ctx context.Context, accountNumber string, delta float64) (float64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	account, ok := r.s.accounts[accountNumber]
	if !ok {
		return 0, fmt.Errorf("%w: account %s", repository.ErrNotFound, accountNumber)
	}
	if account.Balance+delta < 0 {
		return 0, fmt.Errorf("%w: account %s", repository.ErrInsufficientFunds, accountNumber)
	}

	account.Balance += delta
	account.LastTransaction = time.Now()
	return account.Balance, nil
}
