package services

import (
	"context"
	"errors"
	"log"

	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/repository"
)

// ATMInventory owns terminal cash levels.
type ATMInventory struct {
	atms    repository.ATMRepository
	metrics MetricsCollector
}

func NewATMInventory(atms repository.ATMRepository, metrics MetricsCollector) *ATMInventory {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &ATMInventory{atms: atms, metrics: metrics}
}

// FindATM reports ATM_NOT_FOUND for unknown terminals and ATM_OFFLINE when
// the terminal registry cannot be reached.
func (i *ATMInventory) FindATM(ctx context.Context, atmID string) (*models.ATM, error) {
	atm, err := i.atms.FindByID(ctx, atmID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("[ATM] ATM not found: %s", atmID)
			return nil, wrapError(models.CodeATMNotFound, "ATM not found", err)
		}
		log.Printf("[ATM] Lookup failed for %s: %v", atmID, err)
		return nil, wrapError(models.CodeATMOffline, "ATM is offline", err)
	}
	return atm, nil
}

func (i *ATMInventory) AdjustCash(ctx context.Context, atm *models.ATM, delta float64) (float64, error) {
	cash, err := i.atms.AdjustCash(ctx, atm.ATMID, delta)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientCash):
			return 0, wrapError(models.CodeInsufficientATMFunds, "Insufficient cash in ATM", err)
		case errors.Is(err, repository.ErrNotFound):
			return 0, wrapError(models.CodeATMNotFound, "ATM not found", err)
		}
		log.Printf("[ATM] Cash update failed for %s: %v", atm.ATMID, err)
		return 0, databaseError(err)
	}

	log.Printf("[ATM] ATM %s cash updated to %.2f", atm.ATMID, cash)
	i.metrics.RecordATMCash(atm.ATMID, atm.SupportedCurrency, cash)
	return cash, nil
}
