package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/repository"
)

type ATMRepository struct {
	s *Store
}

func (r *ATMRepository) FindByID(ctx context.Context, atmID string) (*models.ATM, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	atm, ok := r.s.atms[atmID]
	if !ok {
		return nil, fmt.Errorf("%w: atm %s", repository.ErrNotFound, atmID)
	}
	out := *atm
	return &out, nil
}

func (r *ATMRepository) AdjustCash(ctx context.Context, atmID string, delta float64) (float64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	atm, ok := r.s.atms[atmID]
	if !ok {
		return 0, fmt.Errorf("%w: atm %s", repository.ErrNotFound, atmID)
	}
	if atm.AvailableCash+delta < 0 {
		return 0, fmt.Errorf("%w: atm %s", repository.ErrInsufficientCash, atmID)
	}

	atm.AvailableCash += delta
	atm.LastUsed = time.Now()
	return atm.AvailableCash, nil
}
