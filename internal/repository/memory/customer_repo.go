package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/repository"
)

type CustomerRepository struct {
	s *Store
}

func (r *CustomerRepository) FindByCardNumber(ctx context.Context, cardNumber string) (*models.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	customerID, ok := r.s.cardIndex[cardNumber]
	if !ok {
		return nil, fmt.Errorf("%w: card %s", repository.ErrNotFound, cardNumber)
	}
	return cloneCustomer(r.s.customers[customerID]), nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	customer, ok := r.s.customers[id]
	if !ok {
		return nil, fmt.Errorf("%w: customer %s", repository.ErrNotFound, id)
	}
	return cloneCustomer(customer), nil
}

func (r *CustomerRepository) TouchCard(ctx context.Context, cardNumber string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	card, err := r.s.cardLocked(cardNumber)
	if err != nil {
		return err
	}
	card.LastUsed = at
	return nil
}
