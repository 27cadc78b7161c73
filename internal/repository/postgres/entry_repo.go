package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"declara/internal/domain"
	"declara/internal/port"
)

type entryRepo struct {
	db *sqlx.DB
}

// NewEntryRepo creates a PostgreSQL-backed EntryRepository.
func NewEntryRepo(db *sqlx.DB) port.EntryRepository {
	return &entryRepo{db: db}
}

func (r *entryRepo) Create(ctx context.Context, entry *domain.Entry) error {
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	if entry.Status == "" {
		entry.Status = domain.EntryStatusPending
	}

	query := `INSERT INTO entries (
		id, status, created_by, created_at, submitted_at, validated_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.Status, entry.CreatedBy, entry.CreatedAt,
		entry.SubmittedAt, entry.ValidatedAt, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("entryRepo.Create: %w", err)
	}
	return nil
}

func (r *entryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	var entry domain.Entry
	err := r.db.GetContext(ctx, &entry, "SELECT * FROM entries WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("entryRepo.GetByID: %w", err)
	}
	return &entry, nil
}

func (r *entryRepo) ListByCreator(ctx context.Context, createdBy uuid.UUID, offset, limit int) ([]domain.Entry, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM entries WHERE created_by = $1", createdBy)
	if err != nil {
		return nil, 0, fmt.Errorf("entryRepo.ListByCreator count: %w", err)
	}

	var entries []domain.Entry
	err = r.db.SelectContext(ctx, &entries,
		`SELECT * FROM entries WHERE created_by = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		createdBy, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("entryRepo.ListByCreator: %w", err)
	}
	return entries, total, nil
}

func (r *entryRepo) ListByStatus(ctx context.Context, status domain.EntryStatus, offset, limit int) ([]domain.Entry, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM entries WHERE status = $1", status)
	if err != nil {
		return nil, 0, fmt.Errorf("entryRepo.ListByStatus count: %w", err)
	}

	var entries []domain.Entry
	err = r.db.SelectContext(ctx, &entries,
		`SELECT * FROM entries WHERE status = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("entryRepo.ListByStatus: %w", err)
	}
	return entries, total, nil
}

func (r *entryRepo) List(ctx context.Context, offset, limit int) ([]domain.Entry, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM entries")
	if err != nil {
		return nil, 0, fmt.Errorf("entryRepo.List count: %w", err)
	}

	var entries []domain.Entry
	err = r.db.SelectContext(ctx, &entries,
		"SELECT * FROM entries ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("entryRepo.List: %w", err)
	}
	return entries, total, nil
}

// TransitionStatus performs a guarded update: the row must still hold the
// expected status, otherwise a concurrent action already moved the entry and
// the caller gets ErrStaleWrite.
func (r *entryRepo) TransitionStatus(ctx context.Context, id uuid.UUID, expected, next domain.EntryStatus) error {
	now := time.Now().UTC()

	var validatedAt *time.Time
	if next == domain.EntryStatusValidated {
		validatedAt = &now
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE entries
		 SET status = $1, validated_at = COALESCE($2, validated_at), updated_at = $3
		 WHERE id = $4 AND status = $5`,
		next, validatedAt, now, id, expected)
	if err != nil {
		return fmt.Errorf("entryRepo.TransitionStatus: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("entryRepo.TransitionStatus rows affected: %w", err)
	}
	if affected == 0 {
		// Either the entry is gone or another action won the race.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return domain.ErrStaleWrite
	}
	return nil
}
