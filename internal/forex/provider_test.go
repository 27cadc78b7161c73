package forex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"declara/internal/config"
)

func TestProviderParsesLiveRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"USD","date":"2026-09-01","rates":{"PHP":58.12,"EUR":0.91}}`))
	}))
	defer server.Close()

	p := NewProvider(&config.ForexConfig{Endpoint: server.URL, TimeoutSecs: 2})

	quote, err := p.Rate(context.Background(), "USD", "PHP", time.Now())
	require.NoError(t, err)

	assert.True(t, quote.Rate.Equal(decimal.RequireFromString("58.12")))
	assert.Equal(t, "USD", quote.BaseCurrency)
	assert.Equal(t, "PHP", quote.QuoteCurrency)
	assert.Equal(t, "exchangerate-api.io (live)", quote.Source)
}

func TestProviderMissingQuoteCurrency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"EUR":0.91}}`))
	}))
	defer server.Close()

	p := NewProvider(&config.ForexConfig{Endpoint: server.URL})

	_, err := p.Rate(context.Background(), "USD", "PHP", time.Now())
	assert.Error(t, err)
}

func TestProviderNonPositiveRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"PHP":0}}`))
	}))
	defer server.Close()

	p := NewProvider(&config.ForexConfig{Endpoint: server.URL})

	_, err := p.Rate(context.Background(), "USD", "PHP", time.Now())
	assert.Error(t, err)
}

func TestProviderUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p := NewProvider(&config.ForexConfig{Endpoint: server.URL})

	_, err := p.Rate(context.Background(), "USD", "PHP", time.Now())
	assert.Error(t, err)
}

func TestResolverFallsBackOnProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	r := NewResolver(
		NewProvider(&config.ForexConfig{Endpoint: server.URL}),
		&config.ForexConfig{FallbackRate: "58.50"},
	)

	quote := r.Resolve(context.Background(), "", "", time.Now())

	require.NotNil(t, quote)
	assert.True(t, quote.Rate.Equal(decimal.RequireFromString("58.50")))
	assert.Equal(t, "USD", quote.BaseCurrency, "defaults applied when unset")
	assert.Equal(t, "PHP", quote.QuoteCurrency)
	assert.Equal(t, FallbackSource, quote.Source)
}

func TestResolverPassesThroughLiveQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"PHP":57.95}}`))
	}))
	defer server.Close()

	r := NewResolver(
		NewProvider(&config.ForexConfig{Endpoint: server.URL}),
		&config.ForexConfig{FallbackRate: "58.50"},
	)

	quote := r.Resolve(context.Background(), "USD", "PHP", time.Now())

	assert.True(t, quote.Rate.Equal(decimal.RequireFromString("57.95")))
	assert.Equal(t, "exchangerate-api.io (live)", quote.Source)
}

func TestResolverBadFallbackConfigUsesBuiltin(t *testing.T) {
	r := NewResolver(nil, &config.ForexConfig{FallbackRate: "not-a-number"})
	assert.True(t, r.fallbackRate.Equal(decimal.NewFromFloat(58.50)))
}
