package services

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"log"
	"time"

	"github.com/atmnet/backend/internal/hsm"
	"github.com/atmnet/backend/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/skip2/go-qrcode"
)

var ErrReceiptNotFound = errors.New("invalid or expired receipt code")

// DefaultReceiptTTL is how long a receipt code stays verifiable.
const DefaultReceiptTTL = 24 * time.Hour

// ReceiptPayload is what a receipt QR code carries.
type ReceiptPayload struct {
	TransactionID string                   `json:"transactionId"`
	Type          models.TransactionType   `json:"type"`
	ATMID         string                   `json:"atmId"`
	Amount        float64                  `json:"amount"`
	Currency      string                   `json:"currency"`
	Fee           float64                  `json:"fee"`
	Status        models.TransactionStatus `json:"status"`
	Card          string                   `json:"card"`
	IssuedAt      int64                    `json:"issuedAt"`
	Nonce         string                   `json:"nonce"`
}

type Receipt struct {
	Code    string         `json:"receiptCode"`
	QRImage string         `json:"qrImage"` // base64 PNG
	Payload ReceiptPayload `json:"receipt"`
	PNG     []byte         `json:"-"`
}

// ReceiptService renders journal records as scannable receipts. Codes are
// kept in Redis so a printed receipt can be checked later; without Redis
// receipts are still rendered but never verify.
type ReceiptService struct {
	redis *redis.Client
	ttl   time.Duration
	now   func() time.Time
}

func NewReceiptService(redis *redis.Client, ttl time.Duration) *ReceiptService {
	if ttl <= 0 {
		ttl = DefaultReceiptTTL
	}
	return &ReceiptService{redis: redis, ttl: ttl, now: time.Now}
}

func (s *ReceiptService) Issue(ctx context.Context, rec *models.TransactionRecord) (*Receipt, error) {
	payload := ReceiptPayload{
		TransactionID: rec.TransactionID,
		Type:          rec.Type,
		ATMID:         rec.ATMID,
		Amount:        rec.Amount,
		Currency:      rec.Currency,
		Fee:           rec.Fee,
		Status:        rec.Status,
		Card:          hsm.MaskCard(rec.CardNumber),
		IssuedAt:      s.now().Unix(),
		Nonce:         s.generateNonce(),
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	code := base64.URLEncoding.EncodeToString(jsonData)

	if s.redis != nil {
		if err := s.redis.Set(ctx, receiptKey(code), jsonData, s.ttl).Err(); err != nil {
			log.Printf("[RECEIPT] Failed to store receipt for %s: %v", rec.TransactionID, err)
			return nil, err
		}
	}

	qr, err := qrcode.New(code, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(256)); err != nil {
		return nil, err
	}

	return &Receipt{
		Code:    code,
		QRImage: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Payload: payload,
		PNG:     buf.Bytes(),
	}, nil
}

// Verify resolves a scanned receipt code to the payload it was issued with.
func (s *ReceiptService) Verify(ctx context.Context, code string) (*ReceiptPayload, error) {
	if s.redis == nil {
		return nil, ErrReceiptNotFound
	}

	data, err := s.redis.Get(ctx, receiptKey(code)).Bytes()
	if err == redis.Nil {
		return nil, ErrReceiptNotFound
	}
	if err != nil {
		return nil, err
	}

	var payload ReceiptPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode receipt: %w", err)
	}
	return &payload, nil
}

func (s *ReceiptService) generateNonce() string {
	b := make([]byte, 16)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

func receiptKey(code string) string {
	return fmt.Sprintf("receipt:%s", code)
}
