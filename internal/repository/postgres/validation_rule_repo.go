package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"declara/internal/domain"
	"declara/internal/port"
)

type validationRuleRepo struct {
	db *sqlx.DB
}

// NewValidationRuleRepo creates a PostgreSQL-backed ValidationRuleRepository.
func NewValidationRuleRepo(db *sqlx.DB) port.ValidationRuleRepository {
	return &validationRuleRepo{db: db}
}

func (r *validationRuleRepo) Create(ctx context.Context, rule *domain.ValidationRule) error {
	rule.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO validation_rules (id, rule_key, rule_type, expected_behavior, severity, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (rule_key) DO NOTHING`,
		rule.ID, rule.RuleKey, rule.RuleType, rule.ExpectedBehavior, rule.Severity, rule.IsActive, rule.CreatedAt)
	if err != nil {
		return fmt.Errorf("validationRuleRepo.Create: %w", err)
	}
	return nil
}

func (r *validationRuleRepo) ListActive(ctx context.Context) ([]domain.ValidationRule, error) {
	var rules []domain.ValidationRule
	err := r.db.SelectContext(ctx, &rules,
		"SELECT * FROM validation_rules WHERE is_active = true ORDER BY rule_key ASC")
	if err != nil {
		return nil, fmt.Errorf("validationRuleRepo.ListActive: %w", err)
	}
	return rules, nil
}

func (r *validationRuleRepo) ListKeys(ctx context.Context) ([]string, error) {
	var keys []string
	err := r.db.SelectContext(ctx, &keys, "SELECT rule_key FROM validation_rules")
	if err != nil {
		return nil, fmt.Errorf("validationRuleRepo.ListKeys: %w", err)
	}
	return keys, nil
}
