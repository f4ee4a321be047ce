package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atmnet/backend/internal/middleware"
	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/services"
)

type AccountHandler struct {
	processor Processor
}

func NewAccountHandler(processor Processor) *AccountHandler {
	return &AccountHandler{processor: processor}
}

// Currencies lists the currencies a customer holds accounts in
// @Summary Account currencies
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Param customerId path string true "Customer ID"
// @Success 200 {object} models.Result[[]string]
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} models.Result[[]string]
// @Router /accounts/{customerId}/currency [get]
func (h *AccountHandler) Currencies(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	writeResult(w, h.processor.Currencies(r.Context(), customerID), "")
}

// AccountTypes lists the accounts a customer holds in one currency
// @Summary Accounts by currency
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Param customerId path string true "Customer ID"
// @Param currency path string true "ISO currency code"
// @Success 200 {object} models.Result[[]models.AccountSummary]
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} models.Result[[]models.AccountSummary]
// @Router /accounts/{customerId}/accountType/{currency} [get]
func (h *AccountHandler) AccountTypes(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	writeResult(w, h.processor.AccountsByCurrency(r.Context(), customerID, chi.URLParam(r, "currency")), "")
}

// owner allows callers to read only their own accounts.
func (h *AccountHandler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Unauthorized", models.CodeNoTokenProvided, http.StatusUnauthorized, nil)
		return "", false
	}
	customerID := chi.URLParam(r, "customerId")
	if customerID != principal.Customer.ID {
		services.SendErrorResponse(w, "Access denied", models.CodeAuthFailed, http.StatusForbidden, nil)
		return "", false
	}
	return customerID, true
}
