package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_FetchBaseRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Invalid authentication credentials"}`))
			return
		}
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"base":"USD","date":"2026-10-14","rates":{"EUR":0.85,"GBP":0.75,"USD":1}}`))
	}))
	defer server.Close()

	t.Run("success", func(t *testing.T) {
		fetcher := NewHTTPFetcher(server.URL, "secret")
		quotes, err := fetcher.FetchBaseRates(context.Background(), "USD", []string{"USD", "EUR", "GBP"})
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"EUR": 0.85, "GBP": 0.75}, quotes)
	})

	t.Run("unauthorized", func(t *testing.T) {
		fetcher := NewHTTPFetcher(server.URL, "wrong")
		_, err := fetcher.FetchBaseRates(context.Background(), "USD", []string{"USD", "EUR", "GBP"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("missing symbol", func(t *testing.T) {
		fetcher := NewHTTPFetcher(server.URL, "secret")
		_, err := fetcher.FetchBaseRates(context.Background(), "USD", []string{"USD", "EUR", "JPY"})
		assert.ErrorContains(t, err, "missing JPY")
	})
}

func TestHTTPFetcher_InvalidPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(server.URL, "secret")
	_, err := fetcher.FetchBaseRates(context.Background(), "USD", []string{"EUR"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no rates")
}
