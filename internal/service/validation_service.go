package service

import (
	"context"

	"github.com/google/uuid"

	"declara/internal/domain"
	"declara/internal/port"
	"declara/internal/validator"
)

// ValidationService exposes rule evaluation and stored results.
type ValidationService struct {
	engine     *validator.Engine
	resultRepo port.ValidationResultRepository
	audit      port.AuditSink
}

// NewValidationService creates a ValidationService.
func NewValidationService(engine *validator.Engine, resultRepo port.ValidationResultRepository, audit port.AuditSink) *ValidationService {
	return &ValidationService{engine: engine, resultRepo: resultRepo, audit: audit}
}

// Evaluate runs all active rules against the entry and replaces its result set.
func (s *ValidationService) Evaluate(ctx context.Context, entryID uuid.UUID, actor domain.Actor) ([]domain.ValidationResult, error) {
	results, err := s.engine.EvaluateEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEvent{
		Action:        "VALIDATION_RUN",
		ActorRole:     actor.Role,
		ActorID:       actor.ID,
		ReferenceType: "entry",
		ReferenceID:   entryID.String(),
	})
	return results, nil
}

// Results returns the entry's stored evaluation outcomes.
func (s *ValidationService) Results(ctx context.Context, entryID uuid.UUID) ([]domain.ValidationResult, error) {
	return s.resultRepo.ListByEntry(ctx, entryID)
}
