package models

import "time"

// Card represents a debit or credit card issued to a customer
type Card struct {
	CardNumber           string    `json:"cardNumber" db:"card_number"`
	CustomerID           string    `json:"customerId" db:"customer_id"`
	CardType             string    `json:"cardType" db:"card_type"`
	PINHash              string    `json:"-" db:"pin_hash"`
	ExpiryDate           time.Time `json:"expiryDate" db:"expiry_date"`
	IsBlocked            bool      `json:"isBlocked" db:"is_blocked"`
	DailyWithdrawalLimit float64   `json:"dailyWithdrawalLimit" db:"daily_withdrawal_limit"`
	LastUsed             time.Time `json:"lastUsed" db:"last_used"`
}

// CardType values
const (
	CardTypeDebit  = "debit"
	CardTypeCredit = "credit"
)

// DefaultDailyWithdrawalLimit is applied to cards provisioned without an explicit limit.
const DefaultDailyWithdrawalLimit = 1000.0

// IsExpired reports whether the card expiry lies before now.
func (c *Card) IsExpired(now time.Time) bool {
	return c.ExpiryDate.Before(now)
}

// CardState describes why a card cannot be used, if at all.
type CardState string

const (
	CardUsable  CardState = "usable"
	CardBlocked CardState = "blocked"
	CardExpired CardState = "expired"
)

// State evaluates block and expiry status at the given instant.
func (c *Card) State(now time.Time) CardState {
	if c.IsBlocked {
		return CardBlocked
	}
	if c.IsExpired(now) {
		return CardExpired
	}
	return CardUsable
}
