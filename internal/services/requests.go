package services

// LoginRequest represents the card-present login payload
// @Description Card and PIN presented at an ATM
type LoginRequest struct {
	CardNumber string `json:"cardNumber" validate:"required,numeric,min=12,max=19" example:"4111111111111111"` // Card PAN
	PIN        string `json:"pin" validate:"required,numeric,min=4,max=6" example:"1234"`                      // Card PIN
	ATMID      string `json:"atmId" validate:"required" example:"ATM001"`                                      // Terminal ID
}

// WithdrawRequest represents a cash withdrawal
// @Description Withdrawal request. Amount is in the ATM currency.
type WithdrawRequest struct {
	TransactionID string  `json:"transactionId,omitempty" validate:"omitempty,max=64" example:"TX1A2B3C4D5E6F7A8B"` // Idempotency key
	CardNumber    string  `json:"cardNumber" validate:"omitempty,numeric" example:"4111111111111111"`
	AccountType   string  `json:"accountType" validate:"required" example:"checking"`
	Amount        float64 `json:"amount" example:"200"`
	Currency      string  `json:"currency,omitempty" validate:"omitempty,len=3,alpha" example:"USD"` // Account currency
	ATMID         string  `json:"atmId" validate:"required" example:"ATM001"`
}

// DepositRequest represents a cash deposit
// @Description Deposit request. Deposits are credited in the ATM currency.
type DepositRequest struct {
	TransactionID string  `json:"transactionId,omitempty" validate:"omitempty,max=64"`
	CardNumber    string  `json:"cardNumber" validate:"omitempty,numeric" example:"4111111111111111"`
	Amount        float64 `json:"amount" example:"150"`
	Currency      string  `json:"currency,omitempty" validate:"omitempty,len=3,alpha" example:"USD"`
	ATMID         string  `json:"atmId" validate:"required" example:"ATM001"`
}

// BalanceRequest represents a balance inquiry
// @Description Balance inquiry request
type BalanceRequest struct {
	CardNumber  string `json:"cardNumber" validate:"omitempty,numeric" example:"4111111111111111"`
	AccountType string `json:"accountType" validate:"required" example:"savings"`
	ATMID       string `json:"atmId" validate:"required" example:"ATM001"`
}

// ConvertRequest represents a conversion quote
// @Description Currency conversion quote request
type ConvertRequest struct {
	CardNumber   string  `json:"cardNumber" validate:"omitempty,numeric" example:"4111111111111111"`
	FromCurrency string  `json:"fromCurrency" validate:"required,len=3,alpha" example:"USD"`
	ToCurrency   string  `json:"toCurrency" validate:"required,len=3,alpha" example:"EUR"`
	Amount       float64 `json:"amount" example:"100"`
	ApplyFee     bool    `json:"applyFee" example:"true"`
}
