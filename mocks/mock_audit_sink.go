package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"declara/internal/domain"
)

// MockAuditSink is a mock implementation of port.AuditSink.
type MockAuditSink struct {
	mock.Mock
}

func (m *MockAuditSink) Record(ctx context.Context, event domain.AuditEvent) {
	m.Called(ctx, event)
}
