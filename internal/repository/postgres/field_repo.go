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
	"declara/internal/reconcile"
)

type fieldRepo struct {
	db *sqlx.DB
}

// NewFieldRepo creates the PostgreSQL-backed reconciliation store.
func NewFieldRepo(db *sqlx.DB) port.FieldRepository {
	return &fieldRepo{db: db}
}

// Upsert writes one candidate value under the confidence-precedence policy.
// The stored row is locked for the duration of the decision so overlapping
// extraction runs for the same (document_id, field_name) serialize instead
// of losing updates.
func (r *fieldRepo) Upsert(ctx context.Context, in port.FieldUpsert) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("fieldRepo.Upsert begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var stored domain.ExtractedField
	err = tx.GetContext(ctx, &stored,
		`SELECT * FROM extracted_fields
		 WHERE document_id = $1 AND field_name = $2 FOR UPDATE`,
		in.DocumentID, in.FieldName)

	now := time.Now().UTC()
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO extracted_fields (
				id, document_id, field_name, raw_value, normalized_value,
				confidence, source, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			uuid.New(), in.DocumentID, in.FieldName, in.RawValue, in.Value,
			in.Confidence, in.Source, now, now)
		if err != nil {
			return fmt.Errorf("fieldRepo.Upsert insert: %w", err)
		}

	case err != nil:
		return fmt.Errorf("fieldRepo.Upsert select: %w", err)

	default:
		keep := reconcile.Decide(
			&reconcile.Existing{Confidence: stored.Confidence, Source: stored.Source},
			reconcile.Candidate{Confidence: in.Confidence, Source: in.Source, FreshRun: in.FreshRun},
		)
		if !keep {
			return tx.Commit()
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE extracted_fields
			 SET raw_value = $1, normalized_value = $2, confidence = $3, source = $4, updated_at = $5
			 WHERE id = $6`,
			in.RawValue, in.Value, in.Confidence, in.Source, now, stored.ID)
		if err != nil {
			return fmt.Errorf("fieldRepo.Upsert update: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("fieldRepo.Upsert commit: %w", err)
	}
	return nil
}

// Override records a manual value. Manual entries carry the sentinel
// confidence so no automated run can displace them.
func (r *fieldRepo) Override(ctx context.Context, documentID uuid.UUID, fieldName, value string) error {
	return r.Upsert(ctx, port.FieldUpsert{
		DocumentID: documentID,
		FieldName:  fieldName,
		RawValue:   value,
		Value:      value,
		Confidence: domain.ManualConfidence,
		Source:     domain.SourceManual,
	})
}

func (r *fieldRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.ExtractedField, error) {
	var fields []domain.ExtractedField
	err := r.db.SelectContext(ctx, &fields,
		"SELECT * FROM extracted_fields WHERE document_id = $1 ORDER BY field_name ASC", documentID)
	if err != nil {
		return nil, fmt.Errorf("fieldRepo.ListByDocument: %w", err)
	}
	return fields, nil
}

func (r *fieldRepo) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.ExtractedField, error) {
	var fields []domain.ExtractedField
	err := r.db.SelectContext(ctx, &fields,
		`SELECT f.* FROM extracted_fields f
		 JOIN documents d ON d.id = f.document_id
		 WHERE d.entry_id = $1
		 ORDER BY f.field_name ASC`, entryID)
	if err != nil {
		return nil, fmt.Errorf("fieldRepo.ListByEntry: %w", err)
	}
	return fields, nil
}
