package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/atmnet/backend/internal/hsm"
	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/repository"
	"github.com/atmnet/backend/internal/token"
)

// Session is the outcome of a successful card+PIN authentication.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Customer  *models.Customer
	Card      models.Card
}

// Principal is the caller behind a verified token, loaded fresh from storage.
type Principal struct {
	Customer *models.Customer
	Card     models.Card
	Claims   *token.Claims
}

// SessionAuthority validates cards and manages stateless session tokens.
type SessionAuthority struct {
	customers repository.CustomerRepository
	hasher    hsm.PINHasher
	signer    token.Signer
	now       func() time.Time
}

func NewSessionAuthority(customers repository.CustomerRepository, hasher hsm.PINHasher, signer token.Signer) *SessionAuthority {
	return &SessionAuthority{
		customers: customers,
		hasher:    hasher,
		signer:    signer,
		now:       time.Now,
	}
}

// Authenticate checks the card on the freshest customer record, then the PIN.
// Block and expiry are checked before the PIN so a correct PIN never unlocks
// an unusable card.
func (a *SessionAuthority) Authenticate(ctx context.Context, cardNumber, pin string) (*Session, error) {
	customer, err := a.customers.FindByCardNumber(ctx, cardNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("[AUTH] Login failed - card not found: %s", hsm.MaskCard(cardNumber))
			return nil, newError(models.CodeAuthFailed, "Login failed: Card number not found")
		}
		log.Printf("[AUTH] Customer lookup failed for card %s: %v", hsm.MaskCard(cardNumber), err)
		return nil, databaseError(err)
	}

	card, ok := customer.Card(cardNumber)
	if !ok {
		log.Printf("[AUTH] Login failed - card missing from customer %s", customer.ID)
		return nil, newError(models.CodeAuthFailed, "Login failed: Card not found in customer record")
	}

	now := a.now()
	if err := cardUsable(card, now, "Login failed: "); err != nil {
		log.Printf("[AUTH] Login rejected for card %s: %s", hsm.MaskCard(cardNumber), card.State(now))
		return nil, err
	}

	if !a.hasher.VerifyPIN(pin, card.PINHash) {
		log.Printf("[AUTH] Login failed - invalid PIN for card %s", hsm.MaskCard(cardNumber))
		return nil, newError(models.CodeAuthFailed, "Login failed: Invalid PIN")
	}

	if err := a.customers.TouchCard(ctx, cardNumber, now); err != nil {
		log.Printf("[AUTH] Failed to update last used for card %s: %v", hsm.MaskCard(cardNumber), err)
		return nil, databaseError(err)
	}
	card.LastUsed = now

	signed, expiresAt, err := a.Refresh(customer.ID, cardNumber)
	if err != nil {
		return nil, err
	}

	log.Printf("[AUTH] Login successful for customer %s", customer.ID)
	return &Session{Token: signed, ExpiresAt: expiresAt, Customer: customer, Card: *card}, nil
}

// Verify decodes a presented token. Expiry wins over every other check.
func (a *SessionAuthority) Verify(tokenString string) (*token.Claims, error) {
	if tokenString == "" {
		return nil, newError(models.CodeNoTokenProvided, "No token provided")
	}

	claims, err := a.signer.Parse(tokenString)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return nil, wrapError(models.CodeTokenExpired, "Token expired", err)
		}
		return nil, wrapError(models.CodeInvalidToken, "Invalid token", err)
	}
	return claims, nil
}

// Refresh always mints a new token with a fresh expiry.
func (a *SessionAuthority) Refresh(customerID, cardNumber string) (string, time.Time, error) {
	signed, expiresAt, err := a.signer.Issue(token.Claims{CardNumber: cardNumber, CustomerID: customerID})
	if err != nil {
		log.Printf("[AUTH] Token issue failed for customer %s: %v", customerID, err)
		return "", time.Time{}, wrapError(models.CodeSystemError, "Failed to generate token", err)
	}
	return signed, expiresAt, nil
}

// Authorize verifies the token and re-checks the card against storage, since a
// card can be blocked after the token was issued.
func (a *SessionAuthority) Authorize(ctx context.Context, tokenString string) (*Principal, error) {
	claims, err := a.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	customer, err := a.customers.FindByID(ctx, claims.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(models.CodeCustomerNotFound, "Customer not found")
		}
		log.Printf("[AUTH] Customer lookup failed for %s: %v", claims.CustomerID, err)
		return nil, databaseError(err)
	}

	card, err := a.CheckCard(customer, claims.CardNumber)
	if err != nil {
		return nil, err
	}
	return &Principal{Customer: customer, Card: *card, Claims: claims}, nil
}

// CheckCard requires the card to belong to the customer and be usable now.
func (a *SessionAuthority) CheckCard(customer *models.Customer, cardNumber string) (*models.Card, error) {
	if customer == nil {
		return nil, newError(models.CodeAuthFailed, "Card is invalid or blocked")
	}
	card, ok := customer.Card(cardNumber)
	if !ok {
		return nil, newError(models.CodeAuthFailed, "Card is invalid or blocked")
	}
	if err := cardUsable(card, a.now(), ""); err != nil {
		return nil, err
	}
	return card, nil
}

func cardUsable(card *models.Card, now time.Time, prefix string) error {
	switch card.State(now) {
	case models.CardBlocked:
		return newError(models.CodeAuthFailed, prefix+"Card is blocked")
	case models.CardExpired:
		return newError(models.CodeAuthFailed, prefix+"Card is expired")
	}
	return nil
}
