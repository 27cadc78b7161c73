package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"declara/internal/domain"
	"declara/internal/port"
	"declara/internal/validator"
)

// EntryWithState is an entry plus its derived terminal display state. An
// entry is finalized exactly when a confirmed tax computation exists for it,
// regardless of the stored status column.
type EntryWithState struct {
	domain.Entry
	IsFinalized bool `json:"is_finalized"`
}

// EntryService owns the entry lifecycle: creation, listing with derived
// state, and the officer-triggered status machine.
type EntryService struct {
	entryRepo  port.EntryRepository
	taxRepo    port.TaxComputationRepository
	resultRepo port.ValidationResultRepository
	engine     *validator.Engine
	audit      port.AuditSink
}

// NewEntryService creates an EntryService.
func NewEntryService(
	entryRepo port.EntryRepository,
	taxRepo port.TaxComputationRepository,
	resultRepo port.ValidationResultRepository,
	engine *validator.Engine,
	audit port.AuditSink,
) *EntryService {
	return &EntryService{
		entryRepo:  entryRepo,
		taxRepo:    taxRepo,
		resultRepo: resultRepo,
		engine:     engine,
		audit:      audit,
	}
}

// Create opens a new PENDING entry for the acting broker.
func (s *EntryService) Create(ctx context.Context, actor domain.Actor) (*domain.Entry, error) {
	entry := &domain.Entry{
		ID:          uuid.New(),
		Status:      domain.EntryStatusPending,
		CreatedBy:   actor.ID,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("EntryService.Create: %w", err)
	}

	s.audit.Record(ctx, domain.AuditEvent{
		Action:        "ENTRY_CREATED",
		ActorRole:     actor.Role,
		ActorID:       actor.ID,
		ReferenceType: "entry",
		ReferenceID:   entry.ID.String(),
	})
	return entry, nil
}

// Get returns one entry with its derived finalized flag.
func (s *EntryService) Get(ctx context.Context, id uuid.UUID) (*EntryWithState, error) {
	entry, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	finalized, err := s.taxRepo.ExistsForEntry(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("EntryService.Get: %w", err)
	}
	return &EntryWithState{Entry: *entry, IsFinalized: finalized}, nil
}

// ListFilter narrows List to a creator or a stored status.
type ListFilter struct {
	CreatedBy *uuid.UUID
	Status    *domain.EntryStatus
	Offset    int
	Limit     int
}

// List returns entries with derived finalized flags. Brokers see their own
// entries; officers list by status or across the board.
func (s *EntryService) List(ctx context.Context, filter ListFilter) ([]EntryWithState, int, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var (
		entries []domain.Entry
		total   int
		err     error
	)
	switch {
	case filter.CreatedBy != nil:
		entries, total, err = s.entryRepo.ListByCreator(ctx, *filter.CreatedBy, filter.Offset, limit)
	case filter.Status != nil:
		entries, total, err = s.entryRepo.ListByStatus(ctx, *filter.Status, filter.Offset, limit)
	default:
		entries, total, err = s.entryRepo.List(ctx, filter.Offset, limit)
	}
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, len(entries))
	for i := range entries {
		ids[i] = entries[i].ID
	}
	finalized, err := s.taxRepo.ExistsForEntries(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("EntryService.List: %w", err)
	}

	out := make([]EntryWithState, len(entries))
	for i := range entries {
		out[i] = EntryWithState{Entry: entries[i], IsFinalized: finalized[entries[i].ID]}
	}
	return out, total, nil
}

// OfficerAction applies SEND_BACK, REJECT, or PROCEED to an entry. PROCEED
// re-evaluates validation inside the action so the critical-failure guard
// cannot be satisfied by a stale result set.
func (s *EntryService) OfficerAction(ctx context.Context, entryID uuid.UUID, action domain.OfficerAction, remarks string, actor domain.Actor) (*domain.Entry, error) {
	if !actor.IsOfficer() {
		return nil, domain.ErrInsufficientRole
	}

	next, ok := domain.StatusForAction[action]
	if !ok {
		return nil, fmt.Errorf("%w: unknown action %q", domain.ErrInvalidTransition, action)
	}
	if (action == domain.ActionSendBack || action == domain.ActionReject) && remarks == "" {
		return nil, domain.ErrRemarksRequired
	}

	entry, err := s.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if action == domain.ActionProceed {
		results, err := s.engine.EvaluateEntry(ctx, entryID)
		if err != nil {
			return nil, fmt.Errorf("EntryService.OfficerAction: %w", err)
		}
		if validator.HasCriticalFailure(results) {
			return nil, domain.ErrValidationBlocked
		}
	}

	if err := s.entryRepo.TransitionStatus(ctx, entryID, entry.Status, next); err != nil {
		return nil, err
	}
	log.Printf("service.EntryService: entry %s %s -> %s (%s)", entryID, entry.Status, next, action)

	s.audit.Record(ctx, domain.AuditEvent{
		Action:        string(action),
		ActorRole:     actor.Role,
		ActorID:       actor.ID,
		ReferenceType: "entry",
		ReferenceID:   entryID.String(),
		Remarks:       remarks,
	})

	return s.entryRepo.GetByID(ctx, entryID)
}
