package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher supplies base->currency quotes from an external source.
type Fetcher interface {
	FetchBaseRates(ctx context.Context, base string, symbols []string) (map[string]float64, error)
}

// HTTPFetcher queries an exchangerates_data compatible API.
type HTTPFetcher struct {
	client *http.Client
	apiURL string
	apiKey string
}

func NewHTTPFetcher(apiURL, apiKey string) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: 10 * time.Second},
		apiURL: apiURL,
		apiKey: apiKey,
	}
}

type latestResponse struct {
	Success *bool              `json:"success,omitempty"`
	Base    string             `json:"base"`
	Date    string             `json:"date"`
	Rates   map[string]float64 `json:"rates"`
}

func (f *HTTPFetcher) FetchBaseRates(ctx context.Context, base string, symbols []string) (map[string]float64, error) {
	endpoint, err := url.Parse(f.apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid rates API URL: %w", err)
	}
	query := endpoint.Query()
	query.Set("base", base)
	if len(symbols) > 0 {
		query.Set("symbols", strings.Join(symbols, ","))
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", f.apiKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rates API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid rates API response: %w", err)
	}
	if (payload.Success != nil && !*payload.Success) || len(payload.Rates) == 0 {
		return nil, fmt.Errorf("invalid rates API response: no rates")
	}

	quotes := make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		if strings.EqualFold(symbol, base) {
			continue
		}
		quote, ok := payload.Rates[strings.ToUpper(symbol)]
		if !ok {
			return nil, fmt.Errorf("rates API response missing %s", symbol)
		}
		quotes[strings.ToUpper(symbol)] = quote
	}
	return quotes, nil
}
