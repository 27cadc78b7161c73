package port

import (
	"context"

	"github.com/google/uuid"

	"declara/internal/domain"
)

// EntryRepository manages entry rows. Status transitions use a compare-on-
// current-status precondition so two concurrent officer actions cannot both
// win (the loser sees domain.ErrStaleWrite).
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	ListByCreator(ctx context.Context, createdBy uuid.UUID, offset, limit int) ([]domain.Entry, int, error)
	ListByStatus(ctx context.Context, status domain.EntryStatus, offset, limit int) ([]domain.Entry, int, error)
	List(ctx context.Context, offset, limit int) ([]domain.Entry, int, error)
	// TransitionStatus moves id from expected to next and stamps validatedAt
	// when next is VALIDATED. Returns domain.ErrStaleWrite when the row no
	// longer holds expected.
	TransitionStatus(ctx context.Context, id uuid.UUID, expected, next domain.EntryStatus) error
}

// DocumentRepository manages uploaded document rows.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.Document, error)
}

// FieldUpsert is one candidate value arriving at the reconciliation store.
type FieldUpsert struct {
	DocumentID uuid.UUID
	FieldName  string
	RawValue   string
	Value      string
	Confidence float64
	Source     domain.FieldSource
	// FreshRun marks a user-requested re-extraction, which may refresh
	// equal-confidence automated values. It never unlocks manual overrides.
	FreshRun bool
}

// FieldRepository is the reconciliation store. Upsert enforces the
// confidence-precedence invariant at write time and serializes per
// (document_id, field_name) key.
type FieldRepository interface {
	Upsert(ctx context.Context, in FieldUpsert) error
	Override(ctx context.Context, documentID uuid.UUID, fieldName, value string) error
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.ExtractedField, error)
	// ListByEntry returns fields for every document of the entry.
	ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.ExtractedField, error)
}

// ValidationRuleRepository manages configured rule definitions.
type ValidationRuleRepository interface {
	Create(ctx context.Context, rule *domain.ValidationRule) error
	ListActive(ctx context.Context) ([]domain.ValidationRule, error)
	ListKeys(ctx context.Context) ([]string, error)
}

// ValidationResultRepository stores evaluation outcomes. ReplaceForEntry
// swaps the entry's result set atomically.
type ValidationResultRepository interface {
	ReplaceForEntry(ctx context.Context, entryID uuid.UUID, results []domain.ValidationResult) error
	ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.ValidationResult, error)
	HasCriticalFailure(ctx context.Context, entryID uuid.UUID) (bool, error)
}

// TaxComputationRepository persists confirmed computations with insert-once
// semantics per entry.
type TaxComputationRepository interface {
	// Create returns domain.ErrComputationExists when the entry already has a
	// confirmed computation.
	Create(ctx context.Context, comp *domain.TaxComputation) error
	GetByEntry(ctx context.Context, entryID uuid.UUID) (*domain.TaxComputation, error)
	ExistsForEntry(ctx context.Context, entryID uuid.UUID) (bool, error)
	ExistsForEntries(ctx context.Context, entryIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}
