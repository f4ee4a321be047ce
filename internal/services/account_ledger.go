package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/repository"
)

// AccountSelection reports which account was picked and whether it came from
// the fallback branch, so callers know the currency of the returned balance.
type AccountSelection struct {
	Account  models.Account
	Fallback bool
}

// AccountLedger reads accounts and funnels every balance change through the
// repository's conditional update.
type AccountLedger struct {
	accounts  repository.AccountRepository
	customers repository.CustomerRepository
}

func NewAccountLedger(accounts repository.AccountRepository, customers repository.CustomerRepository) *AccountLedger {
	return &AccountLedger{accounts: accounts, customers: customers}
}

// FindAccount matches accountType exactly. A non-empty currency must match
// too. With no currency the preferred one is tried first and any account of
// the type is the fallback.
func (l *AccountLedger) FindAccount(ctx context.Context, customerID string, accountType models.AccountType, currency, preferred string) (*AccountSelection, error) {
	accounts, err := l.list(ctx, customerID)
	if err != nil {
		return nil, err
	}

	currency = strings.ToUpper(currency)
	if currency != "" {
		account, err := pick(accounts, accountType, currency)
		if err != nil {
			return nil, err
		}
		return &AccountSelection{Account: *account}, nil
	}

	if preferred != "" {
		account, err := pick(accounts, accountType, strings.ToUpper(preferred))
		if err == nil {
			return &AccountSelection{Account: *account}, nil
		}
		var e *Error
		if errors.As(err, &e) && e.Code == models.CodeAccountBlocked {
			return nil, err
		}
	}

	account, err := pick(accounts, accountType, "")
	if err != nil {
		return nil, err
	}
	return &AccountSelection{Account: *account, Fallback: true}, nil
}

// FindDepositAccount prefers checking over savings, both in currency.
func (l *AccountLedger) FindDepositAccount(ctx context.Context, customerID, currency string) (*models.Account, error) {
	accounts, err := l.list(ctx, customerID)
	if err != nil {
		return nil, err
	}

	currency = strings.ToUpper(currency)
	blocked := false
	for _, accountType := range []models.AccountType{models.AccountChecking, models.AccountSavings} {
		account, err := pick(accounts, accountType, currency)
		if err == nil {
			return account, nil
		}
		var e *Error
		if errors.As(err, &e) && e.Code == models.CodeAccountBlocked {
			blocked = true
		}
	}
	if blocked {
		return nil, newError(models.CodeAccountBlocked, "Account is inactive")
	}
	return nil, newError(models.CodeAccountNotFound, fmt.Sprintf("No checking or savings account in %s", currency))
}

// AdjustBalance is the only balance mutation entry point.
func (l *AccountLedger) AdjustBalance(ctx context.Context, accountNumber string, delta float64) (float64, error) {
	balance, err := l.accounts.AdjustBalance(ctx, accountNumber, delta)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientFunds):
			return 0, wrapError(models.CodeInsufficientFunds, "Insufficient funds", err)
		case errors.Is(err, repository.ErrNotFound):
			return 0, wrapError(models.CodeAccountNotFound, "Account not found", err)
		}
		log.Printf("[LEDGER] Balance update failed for account %s: %v", accountNumber, err)
		return 0, databaseError(err)
	}
	log.Printf("[LEDGER] Account %s adjusted by %.2f", accountNumber, delta)
	return balance, nil
}

// AccountsByCurrency lists the customer's accounts held in currency.
func (l *AccountLedger) AccountsByCurrency(ctx context.Context, customerID, currency string) ([]models.AccountSummary, error) {
	if err := l.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	accounts, err := l.list(ctx, customerID)
	if err != nil {
		return nil, err
	}

	currency = strings.ToUpper(currency)
	var out []models.AccountSummary
	for _, a := range accounts {
		if a.Currency == currency {
			out = append(out, models.AccountSummary{
				AccountType:   a.AccountType,
				AccountNumber: a.AccountNumber,
				Balance:       a.Balance,
			})
		}
	}
	if len(out) == 0 {
		return nil, newError(models.CodeAccountNotFound, fmt.Sprintf("No accounts found with currency %s", currency))
	}
	return out, nil
}

// Currencies returns the distinct account currencies in first-seen order.
func (l *AccountLedger) Currencies(ctx context.Context, customerID string) ([]string, error) {
	if err := l.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	accounts, err := l.list(ctx, customerID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(accounts))
	currencies := make([]string, 0, len(accounts))
	for _, a := range accounts {
		if _, ok := seen[a.Currency]; ok {
			continue
		}
		seen[a.Currency] = struct{}{}
		currencies = append(currencies, a.Currency)
	}
	return currencies, nil
}

func (l *AccountLedger) requireCustomer(ctx context.Context, customerID string) error {
	if _, err := l.customers.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(models.CodeCustomerNotFound, "Customer not found")
		}
		log.Printf("[LEDGER] Customer lookup failed for %s: %v", customerID, err)
		return databaseError(err)
	}
	return nil
}

func (l *AccountLedger) list(ctx context.Context, customerID string) ([]models.Account, error) {
	accounts, err := l.accounts.ListByCustomer(ctx, customerID)
	if err != nil {
		log.Printf("[LEDGER] Account lookup failed for customer %s: %v", customerID, err)
		return nil, databaseError(err)
	}
	return accounts, nil
}

// pick returns the first active account of the type, optionally restricted to
// currency. Inactive matches are reported as blocked, never selected.
func pick(accounts []models.Account, accountType models.AccountType, currency string) (*models.Account, error) {
	inactive := false
	for i := range accounts {
		a := &accounts[i]
		if a.AccountType != accountType || (currency != "" && a.Currency != currency) {
			continue
		}
		if !a.IsActive {
			inactive = true
			continue
		}
		return a, nil
	}
	if inactive {
		return nil, newError(models.CodeAccountBlocked, "Account is inactive")
	}
	return nil, newError(models.CodeAccountNotFound, "Account not found")
}
