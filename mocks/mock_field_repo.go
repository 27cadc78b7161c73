package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"declara/internal/domain"
	"declara/internal/port"
)

// MockFieldRepo is a mock implementation of port.FieldRepository.
type MockFieldRepo struct {
	mock.Mock
}

func (m *MockFieldRepo) Upsert(ctx context.Context, in port.FieldUpsert) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockFieldRepo) Override(ctx context.Context, documentID uuid.UUID, fieldName, value string) error {
	args := m.Called(ctx, documentID, fieldName, value)
	return args.Error(0)
}

func (m *MockFieldRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.ExtractedField, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExtractedField), args.Error(1)
}

func (m *MockFieldRepo) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.ExtractedField, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExtractedField), args.Error(1)
}
