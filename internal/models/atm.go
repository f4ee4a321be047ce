package models

import "time"

// ATM is a physical terminal holding cash in a single currency.
type ATM struct {
	ATMID             string    `json:"atmId" db:"atm_id"`
	Location          string    `json:"location" db:"location"`
	SupportedCurrency string    `json:"supportedCurrency" db:"supported_currency"`
	AvailableCash     float64   `json:"availableCash" db:"available_cash"`
	LastUsed          time.Time `json:"lastUsed" db:"last_used"`
}

// ATMInfo is the terminal summary echoed back in operation results.
type ATMInfo struct {
	Location string `json:"location" example:"Main Street Branch"`
	Currency string `json:"currency" example:"USD"`
}

func (a *ATM) Info() ATMInfo {
	return ATMInfo{Location: a.Location, Currency: a.SupportedCurrency}
}
