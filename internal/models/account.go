package models

import (
	"fmt"
	"time"
)

type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
	AccountCredit   AccountType = "credit"
	AccountLoan     AccountType = "loan"
)

// ParseAccountType validates a raw account type.
func ParseAccountType(s string) (AccountType, bool) {
	switch t := AccountType(s); t {
	case AccountChecking, AccountSavings, AccountCredit, AccountLoan:
		return t, true
	}
	return "", false
}

// Account is a balance-bearing sub-record of a customer denominated in one currency.
type Account struct {
	AccountNumber   string      `json:"accountNumber" db:"account_number"`
	CustomerID      string      `json:"customerId" db:"customer_id"`
	AccountType     AccountType `json:"accountType" db:"account_type"`
	Currency        string      `json:"currency" db:"currency"`
	Balance         float64     `json:"balance" db:"balance"`
	IsActive        bool        `json:"isActive" db:"is_active"`
	LastTransaction time.Time   `json:"lastTransaction" db:"last_transaction"`
}

// ValidateAccounts enforces per-customer uniqueness of account numbers and of
// (type, currency) combinations. Provisioning calls it before persisting.
func ValidateAccounts(accounts []Account) error {
	numbers := make(map[string]struct{}, len(accounts))
	combos := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		if _, ok := ParseAccountType(string(a.AccountType)); !ok {
			return fmt.Errorf("account %s: invalid account type %q", a.AccountNumber, a.AccountType)
		}
		if a.Balance < 0 {
			return fmt.Errorf("account %s: negative balance", a.AccountNumber)
		}
		if _, dup := numbers[a.AccountNumber]; dup {
			return fmt.Errorf("account numbers must be unique for each customer: %s", a.AccountNumber)
		}
		numbers[a.AccountNumber] = struct{}{}

		key := string(a.AccountType) + "-" + a.Currency
		if _, dup := combos[key]; dup {
			return fmt.Errorf("cannot have multiple %s accounts in %s", a.AccountType, a.Currency)
		}
		combos[key] = struct{}{}
	}
	return nil
}
