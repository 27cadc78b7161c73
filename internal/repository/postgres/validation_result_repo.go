package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"declara/internal/domain"
	"declara/internal/port"
)

type validationResultRepo struct {
	db *sqlx.DB
}

// NewValidationResultRepo creates a PostgreSQL-backed ValidationResultRepository.
func NewValidationResultRepo(db *sqlx.DB) port.ValidationResultRepository {
	return &validationResultRepo{db: db}
}

// ReplaceForEntry swaps the entry's result set in one transaction so readers
// never observe a half-replaced evaluation.
func (r *validationResultRepo) ReplaceForEntry(ctx context.Context, entryID uuid.UUID, results []domain.ValidationResult) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("validationResultRepo.ReplaceForEntry begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM validation_results WHERE entry_id = $1", entryID); err != nil {
		return fmt.Errorf("validationResultRepo.ReplaceForEntry delete: %w", err)
	}

	for i := range results {
		res := &results[i]
		_, err := tx.ExecContext(ctx,
			`INSERT INTO validation_results (id, entry_id, rule_id, status, severity, remarks, evaluated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			res.ID, res.EntryID, res.RuleID, res.Status, res.Severity, res.Remarks, res.EvaluatedAt)
		if err != nil {
			return fmt.Errorf("validationResultRepo.ReplaceForEntry insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("validationResultRepo.ReplaceForEntry commit: %w", err)
	}
	return nil
}

func (r *validationResultRepo) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.ValidationResult, error) {
	var results []domain.ValidationResult
	err := r.db.SelectContext(ctx, &results,
		"SELECT * FROM validation_results WHERE entry_id = $1 ORDER BY evaluated_at DESC, rule_id ASC", entryID)
	if err != nil {
		return nil, fmt.Errorf("validationResultRepo.ListByEntry: %w", err)
	}
	return results, nil
}

func (r *validationResultRepo) HasCriticalFailure(ctx context.Context, entryID uuid.UUID) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM validation_results
		 WHERE entry_id = $1 AND status = 'fail' AND severity = 'critical'`, entryID)
	if err != nil {
		return false, fmt.Errorf("validationResultRepo.HasCriticalFailure: %w", err)
	}
	return count > 0, nil
}
