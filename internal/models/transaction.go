package models

import "time"

type TransactionType string

const (
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionDeposit    TransactionType = "deposit"
)

type TransactionStatus string

const (
	StatusPending     TransactionStatus = "pending"
	StatusCompleted   TransactionStatus = "completed"
	StatusFailed      TransactionStatus = "failed"
	StatusCompensated TransactionStatus = "compensated"
	// StatusInconsistent marks a record whose compensation failed; ATM cash and
	// account balance disagree until reconciled by hand.
	StatusInconsistent TransactionStatus = "inconsistent"
)

// TransactionRecord is the journal entry guarding one cash-moving operation.
type TransactionRecord struct {
	TransactionID   string            `json:"transactionId" db:"transaction_id"`
	Type            TransactionType   `json:"type" db:"type"`
	CardNumber      string            `json:"cardNumber" db:"card_number"`
	CustomerID      string            `json:"customerId" db:"customer_id"`
	AccountNumber   string            `json:"accountNumber" db:"account_number"`
	ATMID           string            `json:"atmId" db:"atm_id"`
	Amount          float64           `json:"amount" db:"amount"`
	Currency        string            `json:"currency" db:"currency"`
	AccountDelta    float64           `json:"accountDelta" db:"account_delta"`
	AccountCurrency string            `json:"accountCurrency" db:"account_currency"`
	Fee             float64           `json:"fee" db:"fee"`
	Status          TransactionStatus `json:"status" db:"status"`
	ErrorMessage    string            `json:"errorMessage,omitempty" db:"error_message"`
	CreatedAt       time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time         `json:"updatedAt" db:"updated_at"`
}
