package models

// ErrorCode is the stable machine-readable failure kind carried by a Result.
type ErrorCode string

const (
	// Authentication
	CodeAuthFailed      ErrorCode = "AUTH_FAILED"
	CodeNoTokenProvided ErrorCode = "NO_TOKEN_PROVIDED"
	CodeTokenExpired    ErrorCode = "TOKEN_EXPIRED"
	CodeInvalidToken    ErrorCode = "INVALID_TOKEN"

	// Transactions
	CodeWithdrawalFailed     ErrorCode = "WITHDRAWAL_FAILED"
	CodeDepositFailed        ErrorCode = "DEPOSIT_FAILED"
	CodeBalanceFailed        ErrorCode = "BALANCE_FAILED"
	CodeInsufficientFunds    ErrorCode = "INSUFFICIENT_FUNDS"
	CodeInsufficientATMFunds ErrorCode = "INSUFFICIENT_ATM_FUNDS"
	CodeInvalidAmount        ErrorCode = "INVALID_AMOUNT"
	CodeDailyLimitExceeded   ErrorCode = "DAILY_LIMIT_EXCEEDED"
	CodeDuplicateTransaction ErrorCode = "DUPLICATE_TRANSACTION"
	CodeTransactionNotFound  ErrorCode = "TRANSACTION_NOT_FOUND"

	// Accounts and ATMs
	CodeAccountNotFound    ErrorCode = "ACCOUNT_NOT_FOUND"
	CodeAccountBlocked     ErrorCode = "ACCOUNT_BLOCKED"
	CodeInvalidAccountType ErrorCode = "INVALID_ACCOUNT_TYPE"
	CodeCustomerNotFound   ErrorCode = "CUSTOMER_NOT_FOUND"
	CodeATMNotFound        ErrorCode = "ATM_NOT_FOUND"
	CodeATMOffline         ErrorCode = "ATM_OFFLINE"

	// Currency
	CodeUnsupportedCurrency ErrorCode = "UNSUPPORTED_CURRENCY"

	// System
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
	CodeSystemError   ErrorCode = "SYSTEM_ERROR"
)

// Result is the uniform envelope returned by every engine operation.
type Result[T any] struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    *T        `json:"data,omitempty"`
	Code    ErrorCode `json:"code,omitempty"`
}

func OK[T any](message string, data T) Result[T] {
	return Result[T]{Success: true, Message: message, Data: &data}
}

func Fail[T any](code ErrorCode, message string) Result[T] {
	return Result[T]{Success: false, Message: message, Code: code}
}

// LoginData is returned by a successful login.
type LoginData struct {
	Token     string           `json:"token"`
	ExpiresAt int64            `json:"expiresAt"`
	Customer  CustomerIdentity `json:"customer"`
	ATM       ATMInfo          `json:"atm"`
}

// WithdrawalData describes a completed withdrawal. WithdrawnAmount is in the
// ATM currency; ConvertedAmount, Fee, TotalDeduction and RemainingBalance are
// in the account currency.
type WithdrawalData struct {
	TransactionID    string  `json:"transactionId"`
	WithdrawnAmount  float64 `json:"withdrawnAmount"`
	ConvertedAmount  float64 `json:"convertedAmount"`
	ExchangeRate     float64 `json:"exchangeRate"`
	Fee              float64 `json:"fee"`
	TotalDeduction   float64 `json:"totalDeduction"`
	RemainingBalance float64 `json:"remainingBalance"`
	AccountCurrency  string  `json:"accountCurrency"`
	ATM              ATMInfo `json:"atm"`
	Token            string  `json:"token"`
}

type DepositData struct {
	TransactionID    string      `json:"transactionId"`
	DepositedAmount  float64     `json:"depositedAmount"`
	RemainingBalance float64     `json:"remainingBalance"`
	AccountType      AccountType `json:"accountType"`
	Currency         string      `json:"currency"`
	ATM              ATMInfo     `json:"atm"`
	Token            string      `json:"token"`
}

// BalanceData carries the stored balance and, when the account currency
// differs from the ATM currency, its display conversion.
type BalanceData struct {
	AccountType      AccountType `json:"accountType"`
	Balance          float64     `json:"balance"`
	Currency         string      `json:"currency"`
	ConvertedBalance float64     `json:"convertedBalance"`
	ConvertedTo      string      `json:"convertedTo"`
	ExchangeRate     float64     `json:"exchangeRate"`
	CurrencyFallback bool        `json:"currencyFallback"`
	ATM              ATMInfo     `json:"atm"`
	Token            string      `json:"token"`
}

type ConversionData struct {
	FromCurrency    string  `json:"fromCurrency"`
	ToCurrency      string  `json:"toCurrency"`
	Amount          float64 `json:"amount"`
	ConvertedAmount float64 `json:"convertedAmount"`
	ExchangeRate    float64 `json:"exchangeRate"`
	Fee             float64 `json:"fee"`
	Total           float64 `json:"total"`
	RateDate        string  `json:"rateDate"`
	Token           string  `json:"token"`
}

// AccountSummary is one entry in an accounts-by-currency listing.
type AccountSummary struct {
	AccountType   AccountType `json:"accountType"`
	AccountNumber string      `json:"accountId"`
	Balance       float64     `json:"balance"`
}
