package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atmnet/backend/internal/config"
	"github.com/atmnet/backend/internal/hsm"
	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/rates"
	"github.com/atmnet/backend/internal/repository"
	"github.com/atmnet/backend/internal/repository/memory"
	"github.com/atmnet/backend/internal/token"
)

const (
	testCard        = "4111111111111111"
	testBlockedCard = "4222222222222222"
	testExpiredCard = "4333333333333333"
	otherCard       = "4444444444444444"
	testPIN         = "1234"
)

var testArgon2 = hsm.Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLength: 32, SaltLength: 16}

// testClock drives token issue and expiry.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// syncBuffer lets concurrent audit writes land in one buffer.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fixture struct {
	store     *memory.Store
	processor *TransactionProcessor
	sessions  *SessionAuthority
	clock     *testClock
	audit     *syncBuffer
	metrics   *PrometheusMetrics
	provider  *rates.Provider
}

type fixtureOption func(*Dependencies)

func withAccounts(accounts repository.AccountRepository) fixtureOption {
	return func(d *Dependencies) { d.Ledger = NewAccountLedger(accounts, d.Ledger.customers) }
}

func withATMs(atms repository.ATMRepository) fixtureOption {
	return func(d *Dependencies) { d.ATMs = NewATMInventory(atms, d.Metrics) }
}

func withJournal(journal repository.JournalRepository) fixtureOption {
	return func(d *Dependencies) { d.Journal = journal }
}

func withSigner(signer token.Signer) fixtureOption {
	return func(d *Dependencies) {
		d.Sessions = NewSessionAuthority(d.Sessions.customers, d.Sessions.hasher, signer)
	}
}

func withoutRates() fixtureOption {
	return func(d *Dependencies) { d.Rates = rates.NewProvider() }
}

func testRates(t *testing.T) *rates.Provider {
	t.Helper()
	snapshot, err := rates.BuildFromBase("2026-10-14", "USD", map[string]float64{"EUR": 0.85, "GBP": 0.75})
	require.NoError(t, err)
	provider := rates.NewProvider("USD", "EUR", "GBP")
	require.NoError(t, provider.Replace(snapshot))
	return provider
}

func seedStore(t *testing.T, hasher hsm.PINHasher, limit float64) *memory.Store {
	t.Helper()
	pinHash, err := hasher.HashPIN(testPIN)
	require.NoError(t, err)

	expiry := time.Now().AddDate(2, 0, 0)
	store := memory.NewStore()
	require.NoError(t, store.AddCustomer(models.Customer{
		ID:        "CUST001",
		FirstName: "John",
		LastName:  "Doe",
		Cards: []models.Card{
			{CardNumber: testCard, CardType: models.CardTypeDebit, PINHash: pinHash, ExpiryDate: expiry, DailyWithdrawalLimit: limit},
			{CardNumber: testBlockedCard, CardType: models.CardTypeDebit, PINHash: pinHash, ExpiryDate: expiry, IsBlocked: true},
			{CardNumber: testExpiredCard, CardType: models.CardTypeDebit, PINHash: pinHash, ExpiryDate: time.Now().AddDate(0, -1, 0)},
		},
		Accounts: []models.Account{
			{AccountNumber: "ACC001", AccountType: models.AccountChecking, Currency: "USD", Balance: 500, IsActive: true},
			{AccountNumber: "ACC002", AccountType: models.AccountSavings, Currency: "EUR", Balance: 500, IsActive: true},
			{AccountNumber: "ACC003", AccountType: models.AccountChecking, Currency: "GBP", Balance: 100, IsActive: false},
		},
	}))
	require.NoError(t, store.AddCustomer(models.Customer{
		ID:        "CUST002",
		FirstName: "Jane",
		LastName:  "Roe",
		Cards:     []models.Card{{CardNumber: otherCard, CardType: models.CardTypeDebit, PINHash: pinHash, ExpiryDate: expiry}},
		Accounts: []models.Account{
			{AccountNumber: "ACC010", AccountType: models.AccountChecking, Currency: "USD", Balance: 1000, IsActive: true},
		},
	}))

	for _, atm := range []models.ATM{
		{ATMID: "ATM001", Location: "Main Street Branch", SupportedCurrency: "USD", AvailableCash: 10000},
		{ATMID: "ATM-LOW", Location: "Night Kiosk", SupportedCurrency: "USD", AvailableCash: 50},
		{ATMID: "ATM-EUR", Location: "Airport Terminal", SupportedCurrency: "EUR", AvailableCash: 5000},
		{ATMID: "ATM-GBP", Location: "Harbour Road", SupportedCurrency: "GBP", AvailableCash: 1000},
	} {
		require.NoError(t, store.AddATM(atm))
	}
	return store
}

func newFixture(t *testing.T, cfg config.ProcessorConfig, opts ...fixtureOption) *fixture {
	t.Helper()
	hasher := hsm.NewPINHasher(testArgon2)
	limit := 0.0
	if cfg.EnforceDailyLimit {
		limit = 300
	}
	store := seedStore(t, hasher, limit)

	clock := &testClock{now: time.Now()}
	signer := token.NewJWTSigner("test-secret", 15*time.Minute, "atm-network").WithClock(clock.Now)
	sessions := NewSessionAuthority(store.Customers(), hasher, signer)
	metrics := NewPrometheusMetrics()
	audit := &syncBuffer{}
	provider := testRates(t)

	deps := Dependencies{
		Sessions: sessions,
		Ledger:   NewAccountLedger(store.Accounts(), store.Customers()),
		ATMs:     NewATMInventory(store.ATMs(), metrics),
		Rates:    provider,
		Journal:  store.Journal(),
		Auditor:  hsm.NewAuditLoggerTo(log.New(audit, "", 0)),
		Metrics:  metrics,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	processor := NewTransactionProcessor(deps, cfg)
	var mu sync.Mutex
	seq := 0
	processor.newID = func() string {
		mu.Lock()
		defer mu.Unlock()
		seq++
		return fmt.Sprintf("TX%04d", seq)
	}

	return &fixture{
		store:     store,
		processor: processor,
		sessions:  sessions,
		clock:     clock,
		audit:     audit,
		metrics:   metrics,
		provider:  provider,
	}
}

func (f *fixture) customer(t *testing.T, id string) *models.Customer {
	t.Helper()
	customer, err := f.store.Customers().FindByID(context.Background(), id)
	require.NoError(t, err)
	return customer
}

func (f *fixture) balance(t *testing.T, customerID, accountNumber string) float64 {
	t.Helper()
	accounts, err := f.store.Accounts().ListByCustomer(context.Background(), customerID)
	require.NoError(t, err)
	for _, a := range accounts {
		if a.AccountNumber == accountNumber {
			return a.Balance
		}
	}
	t.Fatalf("account %s not found", accountNumber)
	return 0
}

func (f *fixture) cash(t *testing.T, atmID string) float64 {
	t.Helper()
	atm, err := f.store.ATMs().FindByID(context.Background(), atmID)
	require.NoError(t, err)
	return atm.AvailableCash
}

func requireCode(t *testing.T, err error, code models.ErrorCode) *Error {
	t.Helper()
	var e *Error
	require.True(t, errors.As(err, &e), "expected *Error, got %v", err)
	require.Equal(t, code, e.Code)
	return e
}
