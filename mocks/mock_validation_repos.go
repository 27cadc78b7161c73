package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"declara/internal/domain"
)

// MockValidationRuleRepo is a mock implementation of port.ValidationRuleRepository.
type MockValidationRuleRepo struct {
	mock.Mock
}

func (m *MockValidationRuleRepo) Create(ctx context.Context, rule *domain.ValidationRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockValidationRuleRepo) ListActive(ctx context.Context) ([]domain.ValidationRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValidationRule), args.Error(1)
}

func (m *MockValidationRuleRepo) ListKeys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockValidationResultRepo is a mock implementation of port.ValidationResultRepository.
type MockValidationResultRepo struct {
	mock.Mock
}

func (m *MockValidationResultRepo) ReplaceForEntry(ctx context.Context, entryID uuid.UUID, results []domain.ValidationResult) error {
	args := m.Called(ctx, entryID, results)
	return args.Error(0)
}

func (m *MockValidationResultRepo) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.ValidationResult, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValidationResult), args.Error(1)
}

func (m *MockValidationResultRepo) HasCriticalFailure(ctx context.Context, entryID uuid.UUID) (bool, error) {
	args := m.Called(ctx, entryID)
	return args.Bool(0), args.Error(1)
}
