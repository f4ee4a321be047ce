package models

import "time"

// Customer owns the cards and accounts an ATM session operates on.
type Customer struct {
	ID        string    `json:"id" db:"id"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Cards     []Card    `json:"-"`
	Accounts  []Account `json:"-"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CustomerIdentity is the public part of a customer returned to callers.
type CustomerIdentity struct {
	ID        string `json:"id" example:"6f1c2a"`
	FirstName string `json:"firstName" example:"John"`
	LastName  string `json:"lastName" example:"Doe"`
}

func (c *Customer) Identity() CustomerIdentity {
	return CustomerIdentity{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName}
}

// Card returns the customer's card with the given number.
func (c *Customer) Card(cardNumber string) (*Card, bool) {
	for i := range c.Cards {
		if c.Cards[i].CardNumber == cardNumber {
			return &c.Cards[i], true
		}
	}
	return nil, false
}
