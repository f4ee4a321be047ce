package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atmnet/backend/internal/models"
)

func TestValidationHelper_LoginRequest(t *testing.T) {
	vh := NewValidationHelper()

	t.Run("valid request", func(t *testing.T) {
		req := LoginRequest{CardNumber: "4111111111111111", PIN: "1234", ATMID: "ATM001"}
		assert.NoError(t, vh.ValidateStruct(&req))
	})

	t.Run("missing fields", func(t *testing.T) {
		err := vh.ValidateStruct(&LoginRequest{})
		require.Error(t, err)

		validationErrors, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		assert.Len(t, validationErrors, 3)
	})

	t.Run("non numeric PIN", func(t *testing.T) {
		req := LoginRequest{CardNumber: "4111111111111111", PIN: "12ab", ATMID: "ATM001"}
		err := vh.ValidateStruct(&req)
		require.Error(t, err)

		validationErrors := err.(validator.ValidationErrors)
		require.Len(t, validationErrors, 1)
		assert.Equal(t, "PIN", validationErrors[0].Field())
		assert.Equal(t, "numeric", validationErrors[0].Tag())
	})
}

func TestValidationHelper_TransactionRequests(t *testing.T) {
	vh := NewValidationHelper()

	assert.NoError(t, vh.ValidateStruct(&WithdrawRequest{AccountType: "checking", Amount: 200, ATMID: "ATM001"}))
	assert.Error(t, vh.ValidateStruct(&WithdrawRequest{AccountType: "checking", Amount: 200, Currency: "US", ATMID: "ATM001"}))
	assert.NoError(t, vh.ValidateStruct(&DepositRequest{Amount: 50, ATMID: "ATM001"}))
	assert.Error(t, vh.ValidateStruct(&BalanceRequest{ATMID: "ATM001"}))
	assert.Error(t, vh.ValidateStruct(&ConvertRequest{FromCurrency: "USD", ToCurrency: "E1R", Amount: 10}))
}

func TestSendErrorResponse(t *testing.T) {
	t.Run("error response without validation errors", func(t *testing.T) {
		w := httptest.NewRecorder()

		SendErrorResponse(w, "Something went wrong", models.CodeSystemError, http.StatusInternalServerError, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.Success)
		assert.Equal(t, "Something went wrong", response.Message)
		assert.Equal(t, models.CodeSystemError, response.Code)
		assert.Nil(t, response.Details)
	})

	t.Run("error response with validation errors", func(t *testing.T) {
		validationErr := NewValidationHelper().ValidateStruct(&LoginRequest{PIN: "1"})
		require.Error(t, validationErr)

		w := httptest.NewRecorder()
		SendErrorResponse(w, "Validation failed", "", http.StatusBadRequest, validationErr)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Validation failed", response.Message)
		assert.Contains(t, response.Details, "CardNumber")
		assert.Contains(t, response.Details, "PIN")
		assert.Contains(t, response.Details, "ATMID")
	})
}
