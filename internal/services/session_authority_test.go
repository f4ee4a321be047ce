package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atmnet/backend/internal/config"
	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/token"
)

func TestSessionAuthority_Authenticate(t *testing.T) {
	f := newFixture(t, config.ProcessorConfig{})

	session, err := f.sessions.Authenticate(context.Background(), testCard, testPIN)
	require.NoError(t, err)
	assert.Equal(t, "CUST001", session.Customer.ID)
	assert.Equal(t, testCard, session.Card.CardNumber)
	assert.WithinDuration(t, f.clock.Now().Add(15*time.Minute), session.ExpiresAt, time.Second)

	_, err = f.sessions.Authenticate(context.Background(), testCard, "0000")
	e := requireCode(t, err, models.CodeAuthFailed)
	assert.Equal(t, "Login failed: Invalid PIN", e.Message)
}

func TestSessionAuthority_Authorize(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		f := newFixture(t, config.ProcessorConfig{})
		session, err := f.sessions.Authenticate(ctx, testCard, testPIN)
		require.NoError(t, err)

		principal, err := f.sessions.Authorize(ctx, session.Token)
		require.NoError(t, err)
		assert.Equal(t, "CUST001", principal.Customer.ID)
		assert.Equal(t, testCard, principal.Card.CardNumber)
		assert.Equal(t, "CUST001", principal.Claims.Subject)
	})

	t.Run("missing token", func(t *testing.T) {
		f := newFixture(t, config.ProcessorConfig{})
		_, err := f.sessions.Authorize(ctx, "")
		e := requireCode(t, err, models.CodeNoTokenProvided)
		assert.Equal(t, "No token provided", e.Message)
	})

	t.Run("malformed token", func(t *testing.T) {
		f := newFixture(t, config.ProcessorConfig{})
		_, err := f.sessions.Authorize(ctx, "not-a-jwt")
		e := requireCode(t, err, models.CodeInvalidToken)
		assert.Equal(t, "Invalid token", e.Message)
	})

	t.Run("tampered token", func(t *testing.T) {
		f := newFixture(t, config.ProcessorConfig{})
		session, err := f.sessions.Authenticate(ctx, testCard, testPIN)
		require.NoError(t, err)

		_, err = f.sessions.Authorize(ctx, session.Token+"x")
		requireCode(t, err, models.CodeInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newFixture(t, config.ProcessorConfig{})
		session, err := f.sessions.Authenticate(ctx, testCard, testPIN)
		require.NoError(t, err)

		f.clock.Advance(16 * time.Minute)
		_, err = f.sessions.Authorize(ctx, session.Token)
		e := requireCode(t, err, models.CodeTokenExpired)
		assert.Equal(t, "Token expired", e.Message)
		assert.True(t, errors.Is(err, token.ErrTokenExpired))
	})

	t.Run("card blocked after issue", func(t *testing.T) {
		f := newFixture(t, config.ProcessorConfig{})
		session, err := f.sessions.Authenticate(ctx, testCard, testPIN)
		require.NoError(t, err)

		require.NoError(t, f.store.SetCardBlocked(testCard, true))
		_, err = f.sessions.Authorize(ctx, session.Token)
		e := requireCode(t, err, models.CodeAuthFailed)
		assert.Equal(t, "Card is blocked", e.Message)
	})

	t.Run("refresh issues a new token", func(t *testing.T) {
		f := newFixture(t, config.ProcessorConfig{})
		session, err := f.sessions.Authenticate(ctx, testCard, testPIN)
		require.NoError(t, err)

		f.clock.Advance(10 * time.Minute)
		refreshed, expiresAt, err := f.sessions.Refresh("CUST001", testCard)
		require.NoError(t, err)
		assert.NotEqual(t, session.Token, refreshed)
		assert.True(t, expiresAt.After(session.ExpiresAt))

		f.clock.Advance(10 * time.Minute)
		_, err = f.sessions.Authorize(ctx, session.Token)
		requireCode(t, err, models.CodeTokenExpired)
		_, err = f.sessions.Authorize(ctx, refreshed)
		assert.NoError(t, err)
	})
}

type failingSigner struct{}

func (failingSigner) Issue(token.Claims) (string, time.Time, error) {
	return "", time.Time{}, errors.New("no key")
}

func (failingSigner) Parse(string) (*token.Claims, error) {
	return nil, token.ErrInvalidToken
}

func TestSessionAuthority_RefreshFailure(t *testing.T) {
	sessions := NewSessionAuthority(nil, nil, failingSigner{})

	_, _, err := sessions.Refresh("CUST001", testCard)
	e := requireCode(t, err, models.CodeSystemError)
	assert.Equal(t, "Failed to generate token", e.Message)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByCardNumber(ctx context.Context, cardNumber string) (*models.Customer, error) {
	args := m.Called(ctx, cardNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) TouchCard(ctx context.Context, cardNumber string, at time.Time) error {
	args := m.Called(ctx, cardNumber, at)
	return args.Error(0)
}

func TestSessionAuthority_StorageFailure(t *testing.T) {
	customers := &MockCustomerRepository{}
	customers.On("FindByCardNumber", mock.Anything, testCard).Return(nil, errors.New("too many connections"))

	sessions := NewSessionAuthority(customers, nil, failingSigner{})

	_, err := sessions.Authenticate(context.Background(), testCard, testPIN)
	e := requireCode(t, err, models.CodeDatabaseError)
	assert.Equal(t, "A database error occurred", e.Message)
	customers.AssertExpectations(t)
}
