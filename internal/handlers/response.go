// Package handlers adapts HTTP requests onto the transaction processor.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/services"
)

// SessionTokenHeader carries the refreshed session token on every successful
// authenticated response.
const SessionTokenHeader = "X-Session-Token"

const maxBodyBytes = 1_048_576

// Processor is the engine surface the handlers drive.
type Processor interface {
	Login(ctx context.Context, req services.LoginRequest) models.Result[models.LoginData]
	Withdraw(ctx context.Context, req services.WithdrawRequest, customer *models.Customer) models.Result[models.WithdrawalData]
	Deposit(ctx context.Context, req services.DepositRequest, customer *models.Customer) models.Result[models.DepositData]
	CheckBalance(ctx context.Context, req services.BalanceRequest, customer *models.Customer) models.Result[models.BalanceData]
	ConvertCurrency(ctx context.Context, req services.ConvertRequest, customer *models.Customer) models.Result[models.ConversionData]
	AccountsByCurrency(ctx context.Context, customerID, currency string) models.Result[[]models.AccountSummary]
	Currencies(ctx context.Context, customerID string) models.Result[[]string]
	Transaction(ctx context.Context, transactionID, customerID string) models.Result[models.TransactionRecord]
}

var errTrailingData = errors.New("trailing data after JSON object")

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errTrailingData
	}
	return nil
}

// decodeAndValidate writes the error response itself and reports whether the
// handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *services.ValidationHelper, dst any) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		message := "Invalid request body"
		if errors.Is(err, errTrailingData) {
			message = "Request body must only contain a single JSON object"
		}
		services.SendErrorResponse(w, message, "", http.StatusBadRequest, nil)
		return false
	}
	if err := v.ValidateStruct(dst); err != nil {
		services.SendErrorResponse(w, "Validation failed", "", http.StatusBadRequest, err)
		return false
	}
	return true
}

// StatusFor maps a result code onto an HTTP status.
func StatusFor(success bool, code models.ErrorCode) int {
	if success {
		return http.StatusOK
	}
	switch code {
	case models.CodeAuthFailed, models.CodeNoTokenProvided, models.CodeTokenExpired, models.CodeInvalidToken:
		return http.StatusUnauthorized
	case models.CodeAccountNotFound, models.CodeCustomerNotFound, models.CodeATMNotFound, models.CodeTransactionNotFound:
		return http.StatusNotFound
	case models.CodeDuplicateTransaction:
		return http.StatusConflict
	case models.CodeATMOffline:
		return http.StatusServiceUnavailable
	case models.CodeDatabaseError, models.CodeSystemError:
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

func writeResult[T any](w http.ResponseWriter, result models.Result[T], sessionToken string) {
	if sessionToken != "" {
		w.Header().Set(SessionTokenHeader, sessionToken)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(result.Success, result.Code))
	json.NewEncoder(w).Encode(result)
}
