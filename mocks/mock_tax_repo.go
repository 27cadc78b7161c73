package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"declara/internal/domain"
)

// MockTaxComputationRepo is a mock implementation of port.TaxComputationRepository.
type MockTaxComputationRepo struct {
	mock.Mock
}

func (m *MockTaxComputationRepo) Create(ctx context.Context, comp *domain.TaxComputation) error {
	args := m.Called(ctx, comp)
	return args.Error(0)
}

func (m *MockTaxComputationRepo) GetByEntry(ctx context.Context, entryID uuid.UUID) (*domain.TaxComputation, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxComputation), args.Error(1)
}

func (m *MockTaxComputationRepo) ExistsForEntry(ctx context.Context, entryID uuid.UUID) (bool, error) {
	args := m.Called(ctx, entryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaxComputationRepo) ExistsForEntries(ctx context.Context, entryIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]bool), args.Error(1)
}
