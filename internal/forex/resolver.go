package forex

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"declara/internal/config"
	"declara/internal/port"
)

// FallbackSource labels a quote that came from the configured constant
// rather than a live fetch.
const FallbackSource = "fallback (market estimate)"

// Resolver turns "maybe the API is down" into "always a usable rate". Any
// provider failure is recovered with the configured fallback constant and an
// honest source label; Resolve never returns an error.
type Resolver struct {
	provider     port.RateProvider
	fallbackRate decimal.Decimal
	baseDefault  string
	quoteDefault string
}

// NewResolver creates a resolver over a provider with a configured fallback.
func NewResolver(provider port.RateProvider, cfg *config.ForexConfig) *Resolver {
	fallback, err := decimal.NewFromString(cfg.FallbackRate)
	if err != nil || fallback.LessThanOrEqual(decimal.Zero) {
		fallback = decimal.NewFromFloat(58.50)
	}
	base := cfg.BaseDefault
	if base == "" {
		base = "USD"
	}
	quote := cfg.QuoteDefault
	if quote == "" {
		quote = "PHP"
	}
	return &Resolver{
		provider:     provider,
		fallbackRate: fallback,
		baseDefault:  base,
		quoteDefault: quote,
	}
}

// Resolve fetches a quote, substituting the fallback constant on any
// provider failure.
func (r *Resolver) Resolve(ctx context.Context, base, quote string, asOf time.Time) *port.RateQuote {
	if base == "" {
		base = r.baseDefault
	}
	if quote == "" {
		quote = r.quoteDefault
	}

	q, err := r.provider.Rate(ctx, base, quote, asOf)
	if err == nil {
		return q
	}
	log.Printf("forex.Resolver: live rate unavailable, using fallback: %v", err)

	return &port.RateQuote{
		Rate:          r.fallbackRate,
		BaseCurrency:  base,
		QuoteCurrency: quote,
		RateDate:      asOf,
		Source:        FallbackSource,
	}
}
