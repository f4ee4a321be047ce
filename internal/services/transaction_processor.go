package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/atmnet/backend/internal/config"
	"github.com/atmnet/backend/internal/hsm"
	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/rates"
	"github.com/atmnet/backend/internal/repository"
)

// RateSource hands out one consistent rate table per call.
type RateSource interface {
	Current() (rates.RateTable, error)
}

// Dependencies are the collaborators of a TransactionProcessor. Auditor and
// Metrics may be nil.
type Dependencies struct {
	Sessions  *SessionAuthority
	Ledger    *AccountLedger
	ATMs      *ATMInventory
	Converter *CurrencyConverter
	Rates     RateSource
	Journal   repository.JournalRepository
	Auditor   hsm.Auditor
	Metrics   MetricsCollector
}

// TransactionProcessor runs the ATM operations as linear pipelines that stop
// at the first failed step.
type TransactionProcessor struct {
	sessions  *SessionAuthority
	ledger    *AccountLedger
	atms      *ATMInventory
	converter *CurrencyConverter
	rates     RateSource
	journal   repository.JournalRepository
	auditor   hsm.Auditor
	metrics   MetricsCollector
	cfg       config.ProcessorConfig
	now       func() time.Time
	newID     func() string
}

func NewTransactionProcessor(deps Dependencies, cfg config.ProcessorConfig) *TransactionProcessor {
	if cfg.WithdrawalLimit <= 0 {
		cfg.WithdrawalLimit = 1000
	}
	if cfg.ReferenceCurrency == "" {
		cfg.ReferenceCurrency = "USD"
	}
	if deps.Converter == nil {
		deps.Converter = NewCurrencyConverter(cfg.FeeRate)
	}
	if deps.Auditor == nil {
		deps.Auditor = hsm.NewAuditLogger()
	}
	if deps.Metrics == nil {
		deps.Metrics = NoopMetrics{}
	}

	return &TransactionProcessor{
		sessions:  deps.Sessions,
		ledger:    deps.Ledger,
		atms:      deps.ATMs,
		converter: deps.Converter,
		rates:     deps.Rates,
		journal:   deps.Journal,
		auditor:   deps.Auditor,
		metrics:   deps.Metrics,
		cfg:       cfg,
		now:       time.Now,
		newID:     hsm.GenerateTransactionID,
	}
}

func (p *TransactionProcessor) Login(ctx context.Context, req LoginRequest) (result models.Result[models.LoginData]) {
	defer p.observe("login", time.Now(), &result.Success, &result.Code)

	atm, err := p.atms.FindATM(ctx, req.ATMID)
	if err != nil {
		log.Printf("[AUTH] Login failed - ATM lookup for %s: %v", req.ATMID, err)
		return failFrom[models.LoginData](err)
	}

	session, err := p.sessions.Authenticate(ctx, req.CardNumber, req.PIN)
	if err != nil {
		p.auditor.LogOperation("", req.CardNumber, "LOGIN", "rejected")
		return failFrom[models.LoginData](err)
	}

	p.auditor.LogOperation("", req.CardNumber, "LOGIN", "accepted at "+atm.ATMID)
	return models.OK("Login successful", models.LoginData{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Unix(),
		Customer:  session.Customer.Identity(),
		ATM:       atm.Info(),
	})
}

func (p *TransactionProcessor) Withdraw(ctx context.Context, req WithdrawRequest, customer *models.Customer) (result models.Result[models.WithdrawalData]) {
	defer p.observe("withdraw", time.Now(), &result.Success, &result.Code)

	card, err := p.sessions.CheckCard(customer, req.CardNumber)
	if err != nil {
		return failFrom[models.WithdrawalData](err)
	}

	prior, err := p.findPrior(ctx, req.TransactionID, customer.ID, card.CardNumber, models.TransactionWithdrawal)
	if err != nil {
		return failFrom[models.WithdrawalData](err)
	}
	if prior != nil {
		data, err := p.withdrawalReplay(ctx, prior, customer, card)
		if err != nil {
			return failFrom[models.WithdrawalData](err)
		}
		return replay(prior, data)
	}

	data, err := p.withdraw(ctx, req, customer, card)
	if err != nil {
		log.Printf("[WITHDRAW] Withdrawal failed for card %s: %v", hsm.MaskCard(req.CardNumber), err)
		return failFrom[models.WithdrawalData](err)
	}
	return models.OK("Withdrawal successful", *data)
}

func (p *TransactionProcessor) withdraw(ctx context.Context, req WithdrawRequest, customer *models.Customer, card *models.Card) (*models.WithdrawalData, error) {
	atm, err := p.atms.FindATM(ctx, req.ATMID)
	if err != nil {
		return nil, err
	}
	if atm.AvailableCash < req.Amount {
		return nil, newError(models.CodeInsufficientATMFunds, "Insufficient cash in ATM")
	}
	if !validAmount(req.Amount) || req.Amount > p.cfg.WithdrawalLimit {
		return nil, newError(models.CodeInvalidAmount, "Invalid withdrawal amount")
	}

	accountType, ok := models.ParseAccountType(req.AccountType)
	if !ok {
		return nil, newError(models.CodeInvalidAccountType, "Invalid account type")
	}
	selection, err := p.ledger.FindAccount(ctx, customer.ID, accountType, req.Currency, atm.SupportedCurrency)
	if err != nil {
		return nil, err
	}
	account := selection.Account

	table := p.currentRates()
	conversion, err := p.converter.Convert(table, atm.SupportedCurrency, account.Currency, req.Amount)
	if err != nil {
		return nil, err
	}
	converted := roundCents(conversion.Result)
	fees := p.converter.ApplyFee(converted, atm.SupportedCurrency != account.Currency)
	fee := roundCents(fees.Fee)
	total := roundCents(converted + fee)

	if account.Balance < total {
		log.Printf("[WITHDRAW] Insufficient funds in %s: requested %.2f, available %.2f", account.AccountNumber, total, account.Balance)
		return nil, newError(models.CodeInsufficientFunds, "Insufficient funds")
	}

	tok, err := p.refreshToken(customer.ID, card.CardNumber)
	if err != nil {
		return nil, err
	}

	rec := &models.TransactionRecord{
		TransactionID:   p.transactionID(req.TransactionID),
		Type:            models.TransactionWithdrawal,
		CardNumber:      card.CardNumber,
		CustomerID:      customer.ID,
		AccountNumber:   account.AccountNumber,
		ATMID:           atm.ATMID,
		Amount:          req.Amount,
		Currency:        atm.SupportedCurrency,
		AccountDelta:    -total,
		AccountCurrency: account.Currency,
		Fee:             fee,
		CreatedAt:       p.now().UTC(),
	}
	if err := p.begin(ctx, rec); err != nil {
		return nil, err
	}
	// The pending record is already part of the daily total, so concurrent
	// withdrawals on one card see each other.
	if err := p.checkDailyLimit(ctx, card, table); err != nil {
		p.finish(ctx, rec.TransactionID, models.StatusFailed, err)
		return nil, err
	}

	_, balance, err := p.settle(ctx, rec, atm, -req.Amount)
	if err != nil {
		p.auditor.LogWithdrawal(rec.TransactionID, card.CardNumber, account.AccountNumber, atm.ATMID, req.Amount, atm.SupportedCurrency, "failed")
		p.auditor.LogError(rec.TransactionID, card.CardNumber, err)
		return nil, err
	}
	p.auditor.LogWithdrawal(rec.TransactionID, card.CardNumber, account.AccountNumber, atm.ATMID, req.Amount, atm.SupportedCurrency, "completed")
	p.metrics.RecordFee(account.Currency, fee)

	log.Printf("[WITHDRAW] %s: dispensed %.2f %s, deducted %.2f %s from %s",
		rec.TransactionID, req.Amount, atm.SupportedCurrency, total, account.Currency, account.AccountNumber)

	return &models.WithdrawalData{
		TransactionID:    rec.TransactionID,
		WithdrawnAmount:  req.Amount,
		ConvertedAmount:  converted,
		ExchangeRate:     conversion.Rate,
		Fee:              fee,
		TotalDeduction:   total,
		RemainingBalance: roundCents(balance),
		AccountCurrency:  account.Currency,
		ATM:              atm.Info(),
		Token:            tok,
	}, nil
}

func (p *TransactionProcessor) Deposit(ctx context.Context, req DepositRequest, customer *models.Customer) (result models.Result[models.DepositData]) {
	defer p.observe("deposit", time.Now(), &result.Success, &result.Code)

	card, err := p.sessions.CheckCard(customer, req.CardNumber)
	if err != nil {
		return failFrom[models.DepositData](err)
	}

	prior, err := p.findPrior(ctx, req.TransactionID, customer.ID, card.CardNumber, models.TransactionDeposit)
	if err != nil {
		return failFrom[models.DepositData](err)
	}
	if prior != nil {
		data, err := p.depositReplay(ctx, prior, customer, card)
		if err != nil {
			return failFrom[models.DepositData](err)
		}
		return replay(prior, data)
	}

	data, err := p.deposit(ctx, req, customer, card)
	if err != nil {
		log.Printf("[DEPOSIT] Deposit failed for card %s: %v", hsm.MaskCard(req.CardNumber), err)
		return failFrom[models.DepositData](err)
	}
	return models.OK("Deposit successful", *data)
}

func (p *TransactionProcessor) deposit(ctx context.Context, req DepositRequest, customer *models.Customer, card *models.Card) (*models.DepositData, error) {
	atm, err := p.atms.FindATM(ctx, req.ATMID)
	if err != nil {
		return nil, err
	}
	if !validAmount(req.Amount) {
		return nil, newError(models.CodeInvalidAmount, "Invalid deposit amount")
	}
	if req.Currency != "" && !strings.EqualFold(req.Currency, atm.SupportedCurrency) {
		return nil, newError(models.CodeUnsupportedCurrency, fmt.Sprintf("Deposits at this ATM must be in %s", atm.SupportedCurrency))
	}

	account, err := p.ledger.FindDepositAccount(ctx, customer.ID, atm.SupportedCurrency)
	if err != nil {
		return nil, err
	}

	tok, err := p.refreshToken(customer.ID, card.CardNumber)
	if err != nil {
		return nil, err
	}

	rec := &models.TransactionRecord{
		TransactionID:   p.transactionID(req.TransactionID),
		Type:            models.TransactionDeposit,
		CardNumber:      card.CardNumber,
		CustomerID:      customer.ID,
		AccountNumber:   account.AccountNumber,
		ATMID:           atm.ATMID,
		Amount:          req.Amount,
		Currency:        atm.SupportedCurrency,
		AccountDelta:    req.Amount,
		AccountCurrency: account.Currency,
		CreatedAt:       p.now().UTC(),
	}
	if err := p.begin(ctx, rec); err != nil {
		return nil, err
	}

	_, balance, err := p.settle(ctx, rec, atm, req.Amount)
	if err != nil {
		p.auditor.LogDeposit(rec.TransactionID, card.CardNumber, account.AccountNumber, atm.ATMID, req.Amount, atm.SupportedCurrency, "failed")
		p.auditor.LogError(rec.TransactionID, card.CardNumber, err)
		return nil, err
	}
	p.auditor.LogDeposit(rec.TransactionID, card.CardNumber, account.AccountNumber, atm.ATMID, req.Amount, atm.SupportedCurrency, "completed")

	log.Printf("[DEPOSIT] %s: credited %.2f %s to %s", rec.TransactionID, req.Amount, atm.SupportedCurrency, account.AccountNumber)

	return &models.DepositData{
		TransactionID:    rec.TransactionID,
		DepositedAmount:  req.Amount,
		RemainingBalance: roundCents(balance),
		AccountType:      account.AccountType,
		Currency:         account.Currency,
		ATM:              atm.Info(),
		Token:            tok,
	}, nil
}

// CheckBalance never mutates. A foreign-currency balance is converted into
// the ATM currency for display only.
func (p *TransactionProcessor) CheckBalance(ctx context.Context, req BalanceRequest, customer *models.Customer) (result models.Result[models.BalanceData]) {
	defer p.observe("balance", time.Now(), &result.Success, &result.Code)

	data, err := p.checkBalance(ctx, req, customer)
	if err != nil {
		log.Printf("[BALANCE] Balance check failed for card %s: %v", hsm.MaskCard(req.CardNumber), err)
		return failFrom[models.BalanceData](err)
	}
	return models.OK("Balance retrieved successfully", *data)
}

func (p *TransactionProcessor) checkBalance(ctx context.Context, req BalanceRequest, customer *models.Customer) (*models.BalanceData, error) {
	card, err := p.sessions.CheckCard(customer, req.CardNumber)
	if err != nil {
		return nil, err
	}
	atm, err := p.atms.FindATM(ctx, req.ATMID)
	if err != nil {
		return nil, err
	}

	accountType, ok := models.ParseAccountType(req.AccountType)
	if !ok {
		return nil, newError(models.CodeInvalidAccountType, "Invalid account type")
	}
	selection, err := p.ledger.FindAccount(ctx, customer.ID, accountType, "", atm.SupportedCurrency)
	if err != nil {
		return nil, err
	}
	account := selection.Account

	conversion, err := p.converter.Convert(p.currentRates(), account.Currency, atm.SupportedCurrency, account.Balance)
	if err != nil {
		return nil, err
	}

	if selection.Fallback {
		log.Printf("[BALANCE] No %s account in %s for customer %s, reporting %s", accountType, atm.SupportedCurrency, customer.ID, account.Currency)
	}

	tok, err := p.refreshToken(customer.ID, card.CardNumber)
	if err != nil {
		return nil, err
	}

	return &models.BalanceData{
		AccountType:      account.AccountType,
		Balance:          account.Balance,
		Currency:         account.Currency,
		ConvertedBalance: roundCents(conversion.Result),
		ConvertedTo:      atm.SupportedCurrency,
		ExchangeRate:     conversion.Rate,
		CurrencyFallback: selection.Fallback,
		ATM:              atm.Info(),
		Token:            tok,
	}, nil
}

// ConvertCurrency is a quote only; no account or ATM is touched.
func (p *TransactionProcessor) ConvertCurrency(ctx context.Context, req ConvertRequest, customer *models.Customer) (result models.Result[models.ConversionData]) {
	defer p.observe("convert", time.Now(), &result.Success, &result.Code)

	data, err := p.convertCurrency(req, customer)
	if err != nil {
		log.Printf("[CONVERT] Conversion %s->%s failed: %v", req.FromCurrency, req.ToCurrency, err)
		return failFrom[models.ConversionData](err)
	}
	return models.OK("Currency converted successfully", *data)
}

func (p *TransactionProcessor) convertCurrency(req ConvertRequest, customer *models.Customer) (*models.ConversionData, error) {
	card, err := p.sessions.CheckCard(customer, req.CardNumber)
	if err != nil {
		return nil, err
	}
	if !validAmount(req.Amount) {
		return nil, newError(models.CodeInvalidAmount, "Invalid conversion amount")
	}

	table := p.currentRates()
	conversion, err := p.converter.Convert(table, req.FromCurrency, req.ToCurrency, req.Amount)
	if err != nil {
		return nil, err
	}
	rateDate := ""
	if table != nil {
		rateDate = table.Date()
	}

	converted := roundCents(conversion.Result)
	fee := 0.0
	if req.ApplyFee {
		fee = roundCents(p.converter.ApplyFee(converted, conversion.From != conversion.To).Fee)
	}

	tok, err := p.refreshToken(customer.ID, card.CardNumber)
	if err != nil {
		return nil, err
	}

	return &models.ConversionData{
		FromCurrency:    conversion.From,
		ToCurrency:      conversion.To,
		Amount:          req.Amount,
		ConvertedAmount: converted,
		ExchangeRate:    conversion.Rate,
		Fee:             fee,
		Total:           roundCents(converted + fee),
		RateDate:        rateDate,
		Token:           tok,
	}, nil
}

func (p *TransactionProcessor) AccountsByCurrency(ctx context.Context, customerID, currency string) models.Result[[]models.AccountSummary] {
	accounts, err := p.ledger.AccountsByCurrency(ctx, customerID, currency)
	if err != nil {
		return failFrom[[]models.AccountSummary](err)
	}
	return models.OK("Account types retrieved successfully", accounts)
}

func (p *TransactionProcessor) Currencies(ctx context.Context, customerID string) models.Result[[]string] {
	currencies, err := p.ledger.Currencies(ctx, customerID)
	if err != nil {
		return failFrom[[]string](err)
	}
	return models.OK("Currencies retrieved successfully", currencies)
}

// Transaction returns a journal record owned by the customer.
func (p *TransactionProcessor) Transaction(ctx context.Context, transactionID, customerID string) models.Result[models.TransactionRecord] {
	rec, err := p.journal.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Fail[models.TransactionRecord](models.CodeTransactionNotFound, "Transaction not found")
		}
		log.Printf("[JOURNAL] Lookup failed for %s: %v", transactionID, err)
		return failFrom[models.TransactionRecord](databaseError(err))
	}
	if rec.CustomerID != customerID {
		return models.Fail[models.TransactionRecord](models.CodeTransactionNotFound, "Transaction not found")
	}
	return models.OK("Transaction retrieved successfully", *rec)
}

// checkDailyLimit compares today's dispensed total, in the reference
// currency, against the card's daily limit. The total includes pending
// withdrawals, the caller's own among them.
func (p *TransactionProcessor) checkDailyLimit(ctx context.Context, card *models.Card, table rates.RateTable) error {
	if !p.cfg.EnforceDailyLimit || card.DailyWithdrawalLimit <= 0 {
		return nil
	}

	now := p.now().UTC()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	totals, err := p.journal.DailyWithdrawn(ctx, card.CardNumber, since)
	if err != nil {
		log.Printf("[WITHDRAW] Daily total lookup failed for card %s: %v", hsm.MaskCard(card.CardNumber), err)
		return databaseError(err)
	}

	sum := 0.0
	for currency, total := range totals {
		c, err := p.converter.Convert(table, currency, p.cfg.ReferenceCurrency, total)
		if err != nil {
			return err
		}
		sum += c.Result
	}

	if roundCents(sum) > card.DailyWithdrawalLimit {
		log.Printf("[WITHDRAW] Daily limit exceeded for card %s: %.2f of %.2f %s",
			hsm.MaskCard(card.CardNumber), sum, card.DailyWithdrawalLimit, p.cfg.ReferenceCurrency)
		return newError(models.CodeDailyLimitExceeded, "Daily withdrawal limit exceeded")
	}
	return nil
}

// settle applies the ATM mutation first and the account mutation second. A
// failed account mutation reverses the ATM mutation; when the reversal fails
// too the record is marked inconsistent for manual reconciliation.
func (p *TransactionProcessor) settle(ctx context.Context, rec *models.TransactionRecord, atm *models.ATM, cashDelta float64) (float64, float64, error) {
	cash, err := p.atms.AdjustCash(ctx, atm, cashDelta)
	if err != nil {
		p.finish(ctx, rec.TransactionID, models.StatusFailed, err)
		return 0, 0, err
	}

	balance, err := p.ledger.AdjustBalance(ctx, rec.AccountNumber, rec.AccountDelta)
	if err != nil {
		compensateCtx := context.WithoutCancel(ctx)
		if _, compErr := p.atms.AdjustCash(compensateCtx, atm, -cashDelta); compErr != nil {
			log.Printf("[%s] Compensation failed for %s, books are inconsistent: %v", strings.ToUpper(string(rec.Type)), rec.TransactionID, compErr)
			p.auditor.LogCompensation(rec.TransactionID, atm.ATMID, -cashDelta, compErr)
			p.finish(compensateCtx, rec.TransactionID, models.StatusInconsistent, fmt.Errorf("%v; compensation: %w", err, compErr))
			return 0, 0, err
		}
		p.auditor.LogCompensation(rec.TransactionID, atm.ATMID, -cashDelta, nil)
		p.finish(compensateCtx, rec.TransactionID, models.StatusCompensated, err)
		return 0, 0, err
	}

	p.finish(ctx, rec.TransactionID, models.StatusCompleted, nil)
	return cash, balance, nil
}

func (p *TransactionProcessor) begin(ctx context.Context, rec *models.TransactionRecord) error {
	if err := p.journal.Begin(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return wrapError(models.CodeDuplicateTransaction, "Transaction already processed", err)
		}
		log.Printf("[JOURNAL] Failed to record %s: %v", rec.TransactionID, err)
		return databaseError(err)
	}
	return nil
}

func (p *TransactionProcessor) finish(ctx context.Context, transactionID string, status models.TransactionStatus, cause error) {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	if err := p.journal.UpdateStatus(context.WithoutCancel(ctx), transactionID, status, message); err != nil {
		log.Printf("[JOURNAL] Failed to mark %s %s: %v", transactionID, status, err)
	}
}

// findPrior returns the stored record for a client supplied id, if any. A
// record of another customer, card or operation type is reported as a
// conflict without detail.
func (p *TransactionProcessor) findPrior(ctx context.Context, transactionID, customerID, cardNumber string, txType models.TransactionType) (*models.TransactionRecord, error) {
	if transactionID == "" {
		return nil, nil
	}
	rec, err := p.journal.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		log.Printf("[JOURNAL] Lookup failed for %s: %v", transactionID, err)
		return nil, databaseError(err)
	}
	if rec.CustomerID != customerID || rec.CardNumber != cardNumber || rec.Type != txType {
		log.Printf("[JOURNAL] Transaction id %s reused for a different %s request", transactionID, txType)
		return nil, newError(models.CodeDuplicateTransaction, "Transaction already processed")
	}
	return rec, nil
}

func replay[T any](rec *models.TransactionRecord, data T) models.Result[T] {
	log.Printf("[JOURNAL] Replay of %s (status %s)", rec.TransactionID, rec.Status)
	return models.Result[T]{
		Success: rec.Status == models.StatusCompleted,
		Message: "Transaction already processed",
		Data:    &data,
		Code:    models.CodeDuplicateTransaction,
	}
}

func (p *TransactionProcessor) withdrawalReplay(ctx context.Context, rec *models.TransactionRecord, customer *models.Customer, card *models.Card) (models.WithdrawalData, error) {
	tok, err := p.refreshToken(customer.ID, card.CardNumber)
	if err != nil {
		return models.WithdrawalData{}, err
	}
	total := -rec.AccountDelta
	data := models.WithdrawalData{
		TransactionID:   rec.TransactionID,
		WithdrawnAmount: rec.Amount,
		ConvertedAmount: roundCents(total - rec.Fee),
		Fee:             rec.Fee,
		TotalDeduction:  total,
		AccountCurrency: rec.AccountCurrency,
		Token:           tok,
	}
	if rec.Amount > 0 {
		data.ExchangeRate = data.ConvertedAmount / rec.Amount
	}
	if atm, err := p.atms.FindATM(ctx, rec.ATMID); err == nil {
		data.ATM = atm.Info()
	}
	return data, nil
}

func (p *TransactionProcessor) depositReplay(ctx context.Context, rec *models.TransactionRecord, customer *models.Customer, card *models.Card) (models.DepositData, error) {
	tok, err := p.refreshToken(customer.ID, card.CardNumber)
	if err != nil {
		return models.DepositData{}, err
	}
	data := models.DepositData{
		TransactionID:   rec.TransactionID,
		DepositedAmount: rec.Amount,
		Currency:        rec.AccountCurrency,
		Token:           tok,
	}
	if atm, err := p.atms.FindATM(ctx, rec.ATMID); err == nil {
		data.ATM = atm.Info()
	}
	return data, nil
}

func (p *TransactionProcessor) currentRates() rates.RateTable {
	if p.rates == nil {
		return nil
	}
	table, err := p.rates.Current()
	if err != nil {
		log.Printf("[RATES] No rate table available: %v", err)
		return nil
	}
	return table
}

func (p *TransactionProcessor) transactionID(requested string) string {
	if requested != "" {
		return requested
	}
	return p.newID()
}

// refreshToken mints the token returned with an operation. Mutating
// operations call it before anything is committed so a signer failure leaves
// the books untouched.
func (p *TransactionProcessor) refreshToken(customerID, cardNumber string) (string, error) {
	signed, _, err := p.sessions.Refresh(customerID, cardNumber)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// validAmount accepts positive amounts in whole cents.
func validAmount(amount float64) bool {
	if amount <= 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return false
	}
	cents := amount * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}

func (p *TransactionProcessor) observe(operation string, start time.Time, success *bool, code *models.ErrorCode) {
	outcome := "success"
	if !*success {
		outcome = string(*code)
	}
	p.metrics.RecordOperation(operation, outcome, time.Since(start))
}
