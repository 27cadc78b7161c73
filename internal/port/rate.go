package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateQuote is one resolved exchange rate with its provenance label.
type RateQuote struct {
	Rate          decimal.Decimal
	BaseCurrency  string
	QuoteCurrency string
	RateDate      time.Time
	Source        string
}

// RateProvider fetches a base→quote exchange rate. Implementations must
// apply their own timeout; callers treat any error as "use the fallback".
type RateProvider interface {
	Rate(ctx context.Context, base, quote string, asOf time.Time) (*RateQuote, error)
}
