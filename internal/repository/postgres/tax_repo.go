package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"declara/internal/domain"
	"declara/internal/port"
)

type taxComputationRepo struct {
	db *sqlx.DB
}

// NewTaxComputationRepo creates a PostgreSQL-backed TaxComputationRepository.
// The tax_computations table carries a unique constraint on entry_id, which
// gives confirm its insert-once semantics.
func NewTaxComputationRepo(db *sqlx.DB) port.TaxComputationRepository {
	return &taxComputationRepo{db: db}
}

func (r *taxComputationRepo) Create(ctx context.Context, comp *domain.TaxComputation) error {
	comp.CreatedAt = time.Now().UTC()

	query := `INSERT INTO tax_computations (
		id, entry_id, line_no, description, hs_code, currency,
		declared_value, exchange_rate, declared_value_local,
		duty_rate, duty_amount, vat_rate, vat_amount, total_tax,
		rate_source, confirmed_by, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9,
		$10, $11, $12, $13, $14,
		$15, $16, $17
	)`

	_, err := r.db.ExecContext(ctx, query,
		comp.ID, comp.EntryID, comp.LineNo, comp.Description, comp.HSCode, comp.Currency,
		comp.DeclaredValue, comp.ExchangeRate, comp.DeclaredValueLocal,
		comp.DutyRate, comp.DutyAmount, comp.VATRate, comp.VATAmount, comp.TotalTax,
		comp.RateSource, comp.ConfirmedBy, comp.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "entry_id") {
			return domain.ErrComputationExists
		}
		return fmt.Errorf("taxComputationRepo.Create: %w", err)
	}
	return nil
}

func (r *taxComputationRepo) GetByEntry(ctx context.Context, entryID uuid.UUID) (*domain.TaxComputation, error) {
	var comp domain.TaxComputation
	err := r.db.GetContext(ctx, &comp,
		"SELECT * FROM tax_computations WHERE entry_id = $1", entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("taxComputationRepo.GetByEntry: %w", err)
	}
	return &comp, nil
}

func (r *taxComputationRepo) ExistsForEntry(ctx context.Context, entryID uuid.UUID) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM tax_computations WHERE entry_id = $1", entryID)
	if err != nil {
		return false, fmt.Errorf("taxComputationRepo.ExistsForEntry: %w", err)
	}
	return count > 0, nil
}

func (r *taxComputationRepo) ExistsForEntries(ctx context.Context, entryIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(entryIDs))
	if len(entryIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(
		"SELECT entry_id FROM tax_computations WHERE entry_id IN (?)", entryIDs)
	if err != nil {
		return nil, fmt.Errorf("taxComputationRepo.ExistsForEntries in: %w", err)
	}

	var found []uuid.UUID
	if err := r.db.SelectContext(ctx, &found, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("taxComputationRepo.ExistsForEntries: %w", err)
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}
