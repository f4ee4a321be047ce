package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/repository"
)

type JournalRepository struct {
	s *Store
}

func (r *JournalRepository) Begin(ctx context.Context, rec *models.TransactionRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.journal[rec.TransactionID]; exists {
		return fmt.Errorf("%w: transaction %s", repository.ErrDuplicate, rec.TransactionID)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	rec.Status = models.StatusPending
	rec.UpdatedAt = rec.CreatedAt

	stored := *rec
	r.s.journal[rec.TransactionID] = &stored
	return nil
}

func (r *JournalRepository) UpdateStatus(ctx context.Context, transactionID string, status models.TransactionStatus, errorMessage string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.journal[transactionID]
	if !ok {
		return fmt.Errorf("%w: transaction %s", repository.ErrNotFound, transactionID)
	}
	rec.Status = status
	rec.ErrorMessage = errorMessage
	rec.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *JournalRepository) FindByID(ctx context.Context, transactionID string) (*models.TransactionRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.journal[transactionID]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", repository.ErrNotFound, transactionID)
	}
	out := *rec
	return &out, nil
}

func (r *JournalRepository) DailyWithdrawn(ctx context.Context, cardNumber string, since time.Time) (map[string]float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	totals := make(map[string]float64)
	for _, rec := range r.s.journal {
		if rec.CardNumber != cardNumber || rec.Type != models.TransactionWithdrawal || rec.CreatedAt.Before(since) {
			continue
		}
		if rec.Status == models.StatusPending || rec.Status == models.StatusCompleted {
			totals[rec.Currency] += rec.Amount
		}
	}
	return totals, nil
}
