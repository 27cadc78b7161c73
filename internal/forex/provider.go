package forex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"declara/internal/config"
	"declara/internal/port"
)

const defaultEndpoint = "https://api.exchangerate-api.com/v4/latest"

// Provider fetches live rates from the exchangerate-api free tier. The
// service is a courtesy API with usage limits, so callers should wrap it in
// the cache and keep the timeout short.
type Provider struct {
	endpoint string
	client   *http.Client
}

// NewProvider creates a live rate provider from config.
func NewProvider(cfg *config.ForexConfig) *Provider {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Provider{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type latestResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]json.RawMessage `json:"rates"`
}

func (p *Provider) Rate(ctx context.Context, base, quote string, asOf time.Time) (*port.RateQuote, error) {
	url := fmt.Sprintf("%s/%s", p.endpoint, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("forex.Provider: creating request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forex.Provider: calling rate API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forex.Provider: rate API status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("forex.Provider: reading response: %w", err)
	}

	var parsed latestResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("forex.Provider: unmarshaling response: %w", err)
	}

	raw, ok := parsed.Rates[quote]
	if !ok {
		return nil, fmt.Errorf("forex.Provider: no %s rate in response", quote)
	}
	rate, err := decimal.NewFromString(string(raw))
	if err != nil {
		return nil, fmt.Errorf("forex.Provider: non-numeric %s rate: %w", quote, err)
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("forex.Provider: non-positive %s rate %s", quote, rate)
	}

	return &port.RateQuote{
		Rate:          rate,
		BaseCurrency:  base,
		QuoteCurrency: quote,
		RateDate:      asOf,
		Source:        "exchangerate-api.io (live)",
	}, nil
}
