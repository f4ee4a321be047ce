package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atmnet/backend/internal/middleware"
	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/services"
)

const sessionCard = "4111111111111111"

type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) Login(ctx context.Context, req services.LoginRequest) models.Result[models.LoginData] {
	return m.Called(ctx, req).Get(0).(models.Result[models.LoginData])
}

func (m *MockProcessor) Withdraw(ctx context.Context, req services.WithdrawRequest, customer *models.Customer) models.Result[models.WithdrawalData] {
	return m.Called(ctx, req, customer).Get(0).(models.Result[models.WithdrawalData])
}

func (m *MockProcessor) Deposit(ctx context.Context, req services.DepositRequest, customer *models.Customer) models.Result[models.DepositData] {
	return m.Called(ctx, req, customer).Get(0).(models.Result[models.DepositData])
}

func (m *MockProcessor) CheckBalance(ctx context.Context, req services.BalanceRequest, customer *models.Customer) models.Result[models.BalanceData] {
	return m.Called(ctx, req, customer).Get(0).(models.Result[models.BalanceData])
}

func (m *MockProcessor) ConvertCurrency(ctx context.Context, req services.ConvertRequest, customer *models.Customer) models.Result[models.ConversionData] {
	return m.Called(ctx, req, customer).Get(0).(models.Result[models.ConversionData])
}

func (m *MockProcessor) AccountsByCurrency(ctx context.Context, customerID, currency string) models.Result[[]models.AccountSummary] {
	return m.Called(ctx, customerID, currency).Get(0).(models.Result[[]models.AccountSummary])
}

func (m *MockProcessor) Currencies(ctx context.Context, customerID string) models.Result[[]string] {
	return m.Called(ctx, customerID).Get(0).(models.Result[[]string])
}

func (m *MockProcessor) Transaction(ctx context.Context, transactionID, customerID string) models.Result[models.TransactionRecord] {
	return m.Called(ctx, transactionID, customerID).Get(0).(models.Result[models.TransactionRecord])
}

type MockReceipts struct {
	mock.Mock
}

func (m *MockReceipts) Issue(ctx context.Context, rec *models.TransactionRecord) (*services.Receipt, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Receipt), args.Error(1)
}

func (m *MockReceipts) Verify(ctx context.Context, code string) (*services.ReceiptPayload, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ReceiptPayload), args.Error(1)
}

var testPrincipal = &services.Principal{
	Customer: &models.Customer{ID: "CUST001", FirstName: "John", LastName: "Doe"},
	Card:     models.Card{CardNumber: sessionCard, CustomerID: "CUST001"},
}

// withPrincipal stands in for AuthMiddleware.
func withPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(middleware.WithPrincipal(r.Context(), testPrincipal)))
	})
}

func newRouter(processor Processor, receipts Receipts) http.Handler {
	transactions := NewTransactionHandler(processor)
	accounts := NewAccountHandler(processor)
	receiptHandler := NewReceiptHandler(processor, receipts)

	r := chi.NewRouter()
	r.Post("/transactions/login", transactions.Login)
	r.Group(func(r chi.Router) {
		r.Use(withPrincipal)
		r.Post("/transactions/withdraw", transactions.Withdraw)
		r.Post("/transactions/deposit", transactions.Deposit)
		r.Post("/transactions/balance", transactions.Balance)
		r.Post("/transactions/convert", transactions.Convert)
		r.Get("/transactions/{txId}/receipt", receiptHandler.GetReceipt)
		r.Post("/receipts/verify", receiptHandler.VerifyReceipt)
		r.Get("/accounts/{customerId}/currency", accounts.Currencies)
		r.Get("/accounts/{customerId}/accountType/{currency}", accounts.AccountTypes)
	})
	return r
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestTransactionHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		processor := &MockProcessor{}
		req := services.LoginRequest{CardNumber: sessionCard, PIN: "1234", ATMID: "ATM001"}
		processor.On("Login", mock.Anything, req).Return(models.OK("Login successful", models.LoginData{Token: "tok-1"}))

		w := post(t, newRouter(processor, nil), "/transactions/login", req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "tok-1", w.Header().Get(SessionTokenHeader))
		var resp models.Result[models.LoginData]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "tok-1", resp.Data.Token)
	})

	t.Run("auth failure", func(t *testing.T) {
		processor := &MockProcessor{}
		processor.On("Login", mock.Anything, mock.Anything).Return(models.Fail[models.LoginData](models.CodeAuthFailed, "Login failed: Invalid PIN"))

		w := post(t, newRouter(processor, nil), "/transactions/login", services.LoginRequest{CardNumber: sessionCard, PIN: "9999", ATMID: "ATM001"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Header().Get(SessionTokenHeader))
		assert.Contains(t, w.Body.String(), `"code":"AUTH_FAILED"`)
	})

	t.Run("validation failure", func(t *testing.T) {
		processor := &MockProcessor{}

		w := post(t, newRouter(processor, nil), "/transactions/login", services.LoginRequest{CardNumber: "41x1", PIN: "1234", ATMID: "ATM001"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp services.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Validation failed", resp.Message)
		assert.Contains(t, resp.Details, "CardNumber")
		processor.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})

	t.Run("unknown field", func(t *testing.T) {
		w := post(t, newRouter(&MockProcessor{}, nil), "/transactions/login", `{"cardNumber":"4111111111111111","pin":"1234","atmId":"ATM001","extra":1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid request body")
	})

	t.Run("trailing data", func(t *testing.T) {
		w := post(t, newRouter(&MockProcessor{}, nil), "/transactions/login", `{"cardNumber":"4111111111111111","pin":"1234","atmId":"ATM001"}{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "single JSON object")
	})
}

func TestTransactionHandler_Withdraw(t *testing.T) {
	t.Run("card defaults to session card", func(t *testing.T) {
		processor := &MockProcessor{}
		expected := services.WithdrawRequest{CardNumber: sessionCard, AccountType: "checking", Amount: 200, ATMID: "ATM001"}
		processor.On("Withdraw", mock.Anything, expected, testPrincipal.Customer).
			Return(models.OK("Withdrawal successful", models.WithdrawalData{TransactionID: "TX0001", RemainingBalance: 300, Token: "tok-2"}))

		w := post(t, newRouter(processor, nil), "/transactions/withdraw", map[string]any{"accountType": "checking", "amount": 200, "atmId": "ATM001"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "tok-2", w.Header().Get(SessionTokenHeader))
		processor.AssertExpectations(t)
	})

	t.Run("foreign card rejected", func(t *testing.T) {
		processor := &MockProcessor{}

		w := post(t, newRouter(processor, nil), "/transactions/withdraw", map[string]any{"cardNumber": "4999999999999999", "accountType": "checking", "amount": 20, "atmId": "ATM001"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		processor.AssertNotCalled(t, "Withdraw", mock.Anything, mock.Anything, mock.Anything)
	})

	statuses := []struct {
		code   models.ErrorCode
		status int
	}{
		{models.CodeInsufficientFunds, http.StatusBadRequest},
		{models.CodeInvalidAmount, http.StatusBadRequest},
		{models.CodeATMNotFound, http.StatusNotFound},
		{models.CodeATMOffline, http.StatusServiceUnavailable},
		{models.CodeDuplicateTransaction, http.StatusConflict},
		{models.CodeDatabaseError, http.StatusInternalServerError},
	}
	for _, tt := range statuses {
		t.Run(string(tt.code), func(t *testing.T) {
			processor := &MockProcessor{}
			processor.On("Withdraw", mock.Anything, mock.Anything, mock.Anything).Return(models.Fail[models.WithdrawalData](tt.code, "failed"))

			w := post(t, newRouter(processor, nil), "/transactions/withdraw", map[string]any{"accountType": "checking", "amount": 20, "atmId": "ATM001"})

			assert.Equal(t, tt.status, w.Code)
		})
	}

	t.Run("successful replay is 200", func(t *testing.T) {
		processor := &MockProcessor{}
		data := models.WithdrawalData{TransactionID: "TX-1"}
		processor.On("Withdraw", mock.Anything, mock.Anything, mock.Anything).Return(models.Result[models.WithdrawalData]{
			Success: true, Message: "Transaction already processed", Data: &data, Code: models.CodeDuplicateTransaction,
		})

		w := post(t, newRouter(processor, nil), "/transactions/withdraw", map[string]any{"transactionId": "TX-1", "accountType": "checking", "amount": 20, "atmId": "ATM001"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Transaction already processed")
	})
}

func TestTransactionHandler_OtherOperations(t *testing.T) {
	processor := &MockProcessor{}
	processor.On("Deposit", mock.Anything, services.DepositRequest{CardNumber: sessionCard, Amount: 150, ATMID: "ATM001"}, testPrincipal.Customer).
		Return(models.OK("Deposit successful", models.DepositData{RemainingBalance: 650, Token: "tok-d"}))
	processor.On("CheckBalance", mock.Anything, services.BalanceRequest{CardNumber: sessionCard, AccountType: "savings", ATMID: "ATM001"}, testPrincipal.Customer).
		Return(models.OK("Balance retrieved successfully", models.BalanceData{Balance: 500, Currency: "EUR", Token: "tok-b"}))
	processor.On("ConvertCurrency", mock.Anything, services.ConvertRequest{CardNumber: sessionCard, FromCurrency: "USD", ToCurrency: "EUR", Amount: 100}, testPrincipal.Customer).
		Return(models.OK("Currency converted successfully", models.ConversionData{ConvertedAmount: 85, Token: "tok-c"}))
	router := newRouter(processor, nil)

	w := post(t, router, "/transactions/deposit", map[string]any{"amount": 150, "atmId": "ATM001"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok-d", w.Header().Get(SessionTokenHeader))

	w = post(t, router, "/transactions/balance", map[string]any{"accountType": "savings", "atmId": "ATM001"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok-b", w.Header().Get(SessionTokenHeader))

	w = post(t, router, "/transactions/convert", map[string]any{"fromCurrency": "USD", "toCurrency": "EUR", "amount": 100})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok-c", w.Header().Get(SessionTokenHeader))

	w = post(t, router, "/transactions/convert", map[string]any{"fromCurrency": "US", "toCurrency": "EUR", "amount": 100})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	processor.AssertExpectations(t)
}

func TestTransactionHandler_RequiresPrincipal(t *testing.T) {
	h := NewTransactionHandler(&MockProcessor{})

	w := httptest.NewRecorder()
	h.Withdraw(w, httptest.NewRequest(http.MethodPost, "/transactions/withdraw", bytes.NewBufferString(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAccountHandler(t *testing.T) {
	processor := &MockProcessor{}
	processor.On("Currencies", mock.Anything, "CUST001").Return(models.OK("Currencies retrieved successfully", []string{"USD", "EUR"}))
	processor.On("AccountsByCurrency", mock.Anything, "CUST001", "EUR").
		Return(models.OK("Account types retrieved successfully", []models.AccountSummary{{AccountType: models.AccountSavings, AccountNumber: "ACC002", Balance: 500}}))
	processor.On("AccountsByCurrency", mock.Anything, "CUST001", "JPY").
		Return(models.Fail[[]models.AccountSummary](models.CodeAccountNotFound, "No accounts found with currency JPY"))
	router := newRouter(processor, nil)

	w := get(router, "/accounts/CUST001/currency")
	assert.Equal(t, http.StatusOK, w.Code)
	var currencies models.Result[[]string]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &currencies))
	assert.Equal(t, []string{"USD", "EUR"}, *currencies.Data)

	w = get(router, "/accounts/CUST001/accountType/EUR")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accountId":"ACC002"`)

	w = get(router, "/accounts/CUST001/accountType/JPY")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(router, "/accounts/CUST002/currency")
	assert.Equal(t, http.StatusForbidden, w.Code)
	processor.AssertNotCalled(t, "Currencies", mock.Anything, "CUST002")
}

func TestReceiptHandler(t *testing.T) {
	record := models.TransactionRecord{TransactionID: "TX0001", CustomerID: "CUST001", Status: models.StatusCompleted}
	receipt := &services.Receipt{Code: "CODE1", QRImage: "aW1n", PNG: []byte("\x89PNG-data")}

	processor := &MockProcessor{}
	processor.On("Transaction", mock.Anything, "TX0001", "CUST001").Return(models.OK("Transaction retrieved successfully", record))
	processor.On("Transaction", mock.Anything, "TX9999", "CUST001").Return(models.Fail[models.TransactionRecord](models.CodeTransactionNotFound, "Transaction not found"))
	receipts := &MockReceipts{}
	receipts.On("Issue", mock.Anything, &record).Return(receipt, nil)
	receipts.On("Verify", mock.Anything, "CODE1").Return(&services.ReceiptPayload{TransactionID: "TX0001"}, nil)
	receipts.On("Verify", mock.Anything, "STALE").Return(nil, services.ErrReceiptNotFound)
	receipts.On("Verify", mock.Anything, "BROKEN").Return(nil, errors.New("redis down"))
	router := newRouter(processor, receipts)

	w := get(router, "/transactions/TX0001/receipt")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "CODE1", w.Header().Get("X-Receipt-Code"))
	assert.Equal(t, receipt.PNG, w.Body.Bytes())

	w = get(router, "/transactions/TX0001/receipt?format=json")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"receiptCode":"CODE1"`)

	w = get(router, "/transactions/TX9999/receipt")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = post(t, router, "/receipts/verify", map[string]string{"receiptCode": "CODE1"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"transactionId":"TX0001"`)

	w = post(t, router, "/receipts/verify", map[string]string{"receiptCode": "STALE"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = post(t, router, "/receipts/verify", map[string]string{"receiptCode": "BROKEN"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = post(t, router, "/receipts/verify", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusFor(true, models.CodeDuplicateTransaction))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(false, models.CodeTokenExpired))
	assert.Equal(t, http.StatusNotFound, StatusFor(false, models.CodeTransactionNotFound))
	assert.Equal(t, http.StatusBadRequest, StatusFor(false, models.CodeDailyLimitExceeded))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(false, models.CodeSystemError))
}
