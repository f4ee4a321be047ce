package hsm

import (
	"encoding/json"
	"log"
	"time"
)

type AuditEvent struct {
	Timestamp     time.Time `json:"timestamp"`
	EventType     string    `json:"event_type"`
	TransactionID string    `json:"transaction_id"`
	CardNumber    string    `json:"card_number,omitempty"`
	AccountID     string    `json:"account_id,omitempty"`
	ATMID         string    `json:"atm_id,omitempty"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency,omitempty"`
	Status        string    `json:"status"`
	Details       any       `json:"details,omitempty"`
}

// Auditor records business events for cash-moving operations.
type Auditor interface {
	LogWithdrawal(transactionID, cardNumber, accountID, atmID string, amount float64, currency, status string)
	LogDeposit(transactionID, cardNumber, accountID, atmID string, amount float64, currency, status string)
	LogCompensation(transactionID, atmID string, delta float64, err error)
	LogError(transactionID, cardNumber string, err error)
	LogOperation(transactionID, cardNumber, operation, details string)
}

type AuditLogger struct {
	logger *log.Logger
}

func NewAuditLogger() *AuditLogger {
	return &AuditLogger{logger: log.Default()}
}

// NewAuditLoggerTo writes events to the given logger instead of the default one.
func NewAuditLoggerTo(logger *log.Logger) *AuditLogger {
	return &AuditLogger{logger: logger}
}

func (a *AuditLogger) LogWithdrawal(transactionID, cardNumber, accountID, atmID string, amount float64, currency, status string) {
	a.log(AuditEvent{
		Timestamp:     time.Now(),
		EventType:     "WITHDRAWAL",
		TransactionID: transactionID,
		CardNumber:    MaskCard(cardNumber),
		AccountID:     accountID,
		ATMID:         atmID,
		Amount:        amount,
		Currency:      currency,
		Status:        status,
	})
}

func (a *AuditLogger) LogDeposit(transactionID, cardNumber, accountID, atmID string, amount float64, currency, status string) {
	a.log(AuditEvent{
		Timestamp:     time.Now(),
		EventType:     "DEPOSIT",
		TransactionID: transactionID,
		CardNumber:    MaskCard(cardNumber),
		AccountID:     accountID,
		ATMID:         atmID,
		Amount:        amount,
		Currency:      currency,
		Status:        status,
	})
}

func (a *AuditLogger) LogCompensation(transactionID, atmID string, delta float64, err error) {
	event := AuditEvent{
		Timestamp:     time.Now(),
		EventType:     "COMPENSATION",
		TransactionID: transactionID,
		ATMID:         atmID,
		Amount:        delta,
		Status:        "SUCCESS",
	}
	if err != nil {
		event.Status = "FAILED"
		event.Details = map[string]string{"error": err.Error()}
	}
	a.log(event)
}

func (a *AuditLogger) LogError(transactionID, cardNumber string, err error) {
	a.log(AuditEvent{
		Timestamp:     time.Now(),
		EventType:     "ERROR",
		TransactionID: transactionID,
		CardNumber:    MaskCard(cardNumber),
		Status:        "FAILED",
		Details:       map[string]string{"error": err.Error()},
	})
}

func (a *AuditLogger) LogOperation(transactionID, cardNumber, operation, details string) {
	a.log(AuditEvent{
		Timestamp:     time.Now(),
		EventType:     operation,
		TransactionID: transactionID,
		CardNumber:    MaskCard(cardNumber),
		Status:        "SUCCESS",
		Details:       map[string]string{"details": details},
	})
}

func (a *AuditLogger) log(event AuditEvent) {
	data, _ := json.Marshal(event)
	a.logger.Printf("AUDIT: %s", string(data))
}

// MaskCard keeps only the last four digits
func MaskCard(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return cardNumber
	}
	masked := make([]byte, len(cardNumber))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(cardNumber)-4:], cardNumber[len(cardNumber)-4:])
	return string(masked)
}
