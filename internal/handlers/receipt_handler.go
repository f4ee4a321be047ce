package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atmnet/backend/internal/middleware"
	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/services"
)

// Receipts issues and verifies QR receipts.
type Receipts interface {
	Issue(ctx context.Context, rec *models.TransactionRecord) (*services.Receipt, error)
	Verify(ctx context.Context, code string) (*services.ReceiptPayload, error)
}

type ReceiptHandler struct {
	processor Processor
	receipts  Receipts
	validator *services.ValidationHelper
}

func NewReceiptHandler(processor Processor, receipts Receipts) *ReceiptHandler {
	return &ReceiptHandler{
		processor: processor,
		receipts:  receipts,
		validator: services.NewValidationHelper(),
	}
}

// GetReceipt renders a transaction receipt as a QR code
// @Summary Transaction receipt
// @Description PNG QR code for a journal record owned by the caller. With format=json the code and a base64 image are returned instead.
// @Tags Receipts
// @Produce png
// @Produce json
// @Security BearerAuth
// @Param txId path string true "Transaction ID"
// @Param format query string false "png (default) or json"
// @Success 200 {object} services.Receipt
// @Failure 401 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /transactions/{txId}/receipt [get]
func (h *ReceiptHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Unauthorized", models.CodeNoTokenProvided, http.StatusUnauthorized, nil)
		return
	}

	result := h.processor.Transaction(r.Context(), chi.URLParam(r, "txId"), principal.Customer.ID)
	if !result.Success {
		services.SendErrorResponse(w, result.Message, result.Code, StatusFor(false, result.Code), nil)
		return
	}

	receipt, err := h.receipts.Issue(r.Context(), result.Data)
	if err != nil {
		log.Printf("[RECEIPT] Failed to issue receipt for %s: %v", result.Data.TransactionID, err)
		services.SendErrorResponse(w, "Failed to generate receipt", models.CodeSystemError, http.StatusInternalServerError, nil)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success":     true,
			"receiptCode": receipt.Code,
			"qrImage":     receipt.QRImage,
			"receipt":     receipt.Payload,
		})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Receipt-Code", receipt.Code)
	w.Write(receipt.PNG)
}

// VerifyReceipt resolves a scanned receipt code
// @Summary Verify receipt
// @Description Check a scanned receipt code against the issued receipts
// @Tags Receipts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{receiptCode=string} true "Scanned receipt code"
// @Success 200 {object} services.ReceiptPayload
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /receipts/verify [post]
func (h *ReceiptHandler) VerifyReceipt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReceiptCode string `json:"receiptCode" validate:"required"`
	}
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	payload, err := h.receipts.Verify(r.Context(), req.ReceiptCode)
	if err != nil {
		if errors.Is(err, services.ErrReceiptNotFound) {
			services.SendErrorResponse(w, err.Error(), models.CodeTransactionNotFound, http.StatusNotFound, nil)
			return
		}
		log.Printf("[RECEIPT] Verification failed: %v", err)
		services.SendErrorResponse(w, "Failed to verify receipt", models.CodeSystemError, http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    payload,
	})
}
