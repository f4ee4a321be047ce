// Package memory keeps the repositories in process. Used by tests and by the
// server when no database is configured.
package memory

import (
	"fmt"
	"sync"

	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/repository"
)

var (
	_ repository.CustomerRepository = (*CustomerRepository)(nil)
	_ repository.AccountRepository  = (*AccountRepository)(nil)
	_ repository.ATMRepository      = (*ATMRepository)(nil)
	_ repository.JournalRepository  = (*JournalRepository)(nil)
)

// Store is the shared state behind the four repositories. Every mutation holds
// the write lock for its whole check-and-set.
type Store struct {
	mu            sync.RWMutex
	customers     map[string]*models.Customer
	cardIndex     map[string]string
	accounts      map[string]*models.Account
	customerIndex map[string][]string
	atms          map[string]*models.ATM
	journal       map[string]*models.TransactionRecord
}

func NewStore() *Store {
	return &Store{
		customers:     make(map[string]*models.Customer),
		cardIndex:     make(map[string]string),
		accounts:      make(map[string]*models.Account),
		customerIndex: make(map[string][]string),
		atms:          make(map[string]*models.ATM),
		journal:       make(map[string]*models.TransactionRecord),
	}
}

// AddCustomer provisions a customer together with its cards and accounts.
func (s *Store) AddCustomer(customer models.Customer) error {
	if err := models.ValidateAccounts(customer.Accounts); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customers[customer.ID]; exists {
		return fmt.Errorf("%w: customer %s", repository.ErrDuplicate, customer.ID)
	}
	for _, card := range customer.Cards {
		if _, exists := s.cardIndex[card.CardNumber]; exists {
			return fmt.Errorf("%w: card %s", repository.ErrDuplicate, card.CardNumber)
		}
	}
	for _, account := range customer.Accounts {
		if _, exists := s.accounts[account.AccountNumber]; exists {
			return fmt.Errorf("%w: account %s", repository.ErrDuplicate, account.AccountNumber)
		}
	}

	stored := customer
	stored.Cards = make([]models.Card, len(customer.Cards))
	for i, card := range customer.Cards {
		card.CustomerID = customer.ID
		if card.DailyWithdrawalLimit == 0 {
			card.DailyWithdrawalLimit = models.DefaultDailyWithdrawalLimit
		}
		stored.Cards[i] = card
		s.cardIndex[card.CardNumber] = customer.ID
	}
	for _, account := range customer.Accounts {
		account := account
		account.CustomerID = customer.ID
		s.accounts[account.AccountNumber] = &account
		s.customerIndex[customer.ID] = append(s.customerIndex[customer.ID], account.AccountNumber)
	}
	stored.Accounts = nil
	s.customers[customer.ID] = &stored
	return nil
}

func (s *Store) AddATM(atm models.ATM) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.atms[atm.ATMID]; exists {
		return fmt.Errorf("%w: atm %s", repository.ErrDuplicate, atm.ATMID)
	}
	s.atms[atm.ATMID] = &atm
	return nil
}

// SetCardBlocked flips the block flag. Stands in for the issuer's back office.
func (s *Store) SetCardBlocked(cardNumber string, blocked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := s.cardLocked(cardNumber)
	if err != nil {
		return err
	}
	card.IsBlocked = blocked
	return nil
}

func (s *Store) cardLocked(cardNumber string) (*models.Card, error) {
	customerID, ok := s.cardIndex[cardNumber]
	if !ok {
		return nil, fmt.Errorf("%w: card %s", repository.ErrNotFound, cardNumber)
	}
	card, ok := s.customers[customerID].Card(cardNumber)
	if !ok {
		return nil, fmt.Errorf("%w: card %s", repository.ErrNotFound, cardNumber)
	}
	return card, nil
}

func (s *Store) Customers() *CustomerRepository { return &CustomerRepository{s: s} }
func (s *Store) Accounts() *AccountRepository   { return &AccountRepository{s: s} }
func (s *Store) ATMs() *ATMRepository           { return &ATMRepository{s: s} }
func (s *Store) Journal() *JournalRepository    { return &JournalRepository{s: s} }

func cloneCustomer(c *models.Customer) *models.Customer {
	out := *c
	out.Cards = append([]models.Card(nil), c.Cards...)
	return &out
}
