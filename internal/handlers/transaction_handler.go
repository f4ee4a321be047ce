package handlers

import (
	"net/http"

	"github.com/atmnet/backend/internal/middleware"
	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/services"
)

type TransactionHandler struct {
	processor Processor
	validator *services.ValidationHelper
}

func NewTransactionHandler(processor Processor) *TransactionHandler {
	return &TransactionHandler{
		processor: processor,
		validator: services.NewValidationHelper(),
	}
}

// Login authenticates a card and PIN at an ATM
// @Summary ATM login
// @Description Validate card status and PIN, then issue a session token
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Card and PIN"
// @Success 200 {object} models.Result[models.LoginData]
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} models.Result[models.LoginData]
// @Failure 404 {object} models.Result[models.LoginData]
// @Router /transactions/login [post]
func (h *TransactionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	result := h.processor.Login(r.Context(), req)
	token := ""
	if result.Data != nil {
		token = result.Data.Token
	}
	writeResult(w, result, token)
}

// Withdraw dispenses cash
// @Summary Withdraw cash
// @Description Withdraw an amount in the ATM currency, converting from the account currency when they differ
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.WithdrawRequest true "Withdrawal request"
// @Success 200 {object} models.Result[models.WithdrawalData]
// @Failure 400 {object} models.Result[models.WithdrawalData]
// @Failure 401 {object} services.ErrorResponse
// @Failure 409 {object} models.Result[models.WithdrawalData]
// @Router /transactions/withdraw [post]
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req services.WithdrawRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	if !bindCard(w, principal, &req.CardNumber) {
		return
	}

	result := h.processor.Withdraw(r.Context(), req, principal.Customer)
	token := ""
	if result.Data != nil {
		token = result.Data.Token
	}
	writeResult(w, result, token)
}

// Deposit credits cash
// @Summary Deposit cash
// @Description Deposit cash in the ATM currency into the checking or savings account held in that currency
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.DepositRequest true "Deposit request"
// @Success 200 {object} models.Result[models.DepositData]
// @Failure 400 {object} models.Result[models.DepositData]
// @Failure 401 {object} services.ErrorResponse
// @Router /transactions/deposit [post]
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req services.DepositRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	if !bindCard(w, principal, &req.CardNumber) {
		return
	}

	result := h.processor.Deposit(r.Context(), req, principal.Customer)
	token := ""
	if result.Data != nil {
		token = result.Data.Token
	}
	writeResult(w, result, token)
}

// Balance reports an account balance
// @Summary Balance inquiry
// @Description Report the balance of an account type, converted to the ATM currency for display
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.BalanceRequest true "Balance request"
// @Success 200 {object} models.Result[models.BalanceData]
// @Failure 400 {object} models.Result[models.BalanceData]
// @Failure 401 {object} services.ErrorResponse
// @Router /transactions/balance [post]
func (h *TransactionHandler) Balance(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req services.BalanceRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	if !bindCard(w, principal, &req.CardNumber) {
		return
	}

	result := h.processor.CheckBalance(r.Context(), req, principal.Customer)
	token := ""
	if result.Data != nil {
		token = result.Data.Token
	}
	writeResult(w, result, token)
}

// Convert quotes a currency conversion
// @Summary Currency conversion quote
// @Description Convert an amount between two currencies with the current rates, optionally including the fee
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.ConvertRequest true "Conversion request"
// @Success 200 {object} models.Result[models.ConversionData]
// @Failure 400 {object} models.Result[models.ConversionData]
// @Failure 401 {object} services.ErrorResponse
// @Router /transactions/convert [post]
func (h *TransactionHandler) Convert(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req services.ConvertRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	if !bindCard(w, principal, &req.CardNumber) {
		return
	}

	result := h.processor.ConvertCurrency(r.Context(), req, principal.Customer)
	token := ""
	if result.Data != nil {
		token = result.Data.Token
	}
	writeResult(w, result, token)
}

func (h *TransactionHandler) principal(w http.ResponseWriter, r *http.Request) (*services.Principal, bool) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Unauthorized", models.CodeNoTokenProvided, http.StatusUnauthorized, nil)
		return nil, false
	}
	return principal, true
}

// bindCard defaults the request card to the session card and rejects any
// other card.
func bindCard(w http.ResponseWriter, principal *services.Principal, cardNumber *string) bool {
	if *cardNumber == "" {
		*cardNumber = principal.Card.CardNumber
		return true
	}
	if *cardNumber != principal.Card.CardNumber {
		services.SendErrorResponse(w, "Card does not match session", models.CodeAuthFailed, http.StatusUnauthorized, nil)
		return false
	}
	return true
}
