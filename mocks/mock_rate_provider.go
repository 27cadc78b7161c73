package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"declara/internal/port"
)

// MockRateProvider is a mock implementation of port.RateProvider.
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) Rate(ctx context.Context, base, quote string, asOf time.Time) (*port.RateQuote, error) {
	args := m.Called(ctx, base, quote, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.RateQuote), args.Error(1)
}
