package validator

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"declara/internal/domain"
	"declara/internal/port"
	"declara/internal/validator/entry"
)

// Engine orchestrates entry validation: it seeds built-in rule definitions,
// builds the entry's reconciled field view, runs every active rule, and
// atomically replaces the entry's result set.
type Engine struct {
	registry   *Registry
	ruleRepo   port.ValidationRuleRepository
	resultRepo port.ValidationResultRepository
	docRepo    port.DocumentRepository
	fieldRepo  port.FieldRepository
}

// NewEngine creates a validation engine.
func NewEngine(
	registry *Registry,
	ruleRepo port.ValidationRuleRepository,
	resultRepo port.ValidationResultRepository,
	docRepo port.DocumentRepository,
	fieldRepo port.FieldRepository,
) *Engine {
	return &Engine{
		registry:   registry,
		ruleRepo:   ruleRepo,
		resultRepo: resultRepo,
		docRepo:    docRepo,
		fieldRepo:  fieldRepo,
	}
}

// DefaultRegistry returns a registry loaded with every built-in validator.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, v := range entry.AllBuiltinValidators() {
		reg.Register(v)
	}
	return reg
}

// EvaluateEntry runs all active rules against the entry's reconciled fields.
// The fresh result set replaces the prior one; it is also returned so callers
// can gate on it without a second read.
func (e *Engine) EvaluateEntry(ctx context.Context, entryID uuid.UUID) ([]domain.ValidationResult, error) {
	if err := e.EnsureBuiltinRules(ctx); err != nil {
		return nil, fmt.Errorf("validator.Engine: ensuring builtin rules: %w", err)
	}

	rules, err := e.ruleRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("validator.Engine: loading rules: %w", err)
	}

	docs, err := e.docRepo.ListByEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("validator.Engine: loading documents: %w", err)
	}
	fields, err := e.fieldRepo.ListByEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("validator.Engine: loading fields: %w", err)
	}
	view := entry.BuildView(docs, fields)

	now := time.Now().UTC()
	results := make([]domain.ValidationResult, 0, len(rules))
	for i := range rules {
		rule := &rules[i]
		v := e.registry.Get(rule.RuleKey)
		if v == nil {
			log.Printf("validator.Engine: no validator registered for rule key %q", rule.RuleKey)
			continue
		}

		checks := v.Validate(view)
		status := domain.ResultPass
		var failures []string
		for _, c := range checks {
			if !c.Passed {
				status = domain.ResultFail
				failures = append(failures, c.Message)
			}
		}
		remarks := rule.ExpectedBehavior
		if len(failures) > 0 {
			remarks = strings.Join(failures, "; ")
		}

		results = append(results, domain.ValidationResult{
			ID:          uuid.New(),
			EntryID:     entryID,
			RuleID:      rule.ID,
			Status:      status,
			Severity:    rule.Severity,
			Remarks:     remarks,
			EvaluatedAt: now,
		})
	}

	if err := e.resultRepo.ReplaceForEntry(ctx, entryID, results); err != nil {
		return nil, fmt.Errorf("validator.Engine: storing results: %w", err)
	}

	log.Printf("validator.Engine: entry %s evaluated, %d rules, %d failures", entryID, len(results), countFailures(results))
	return results, nil
}

// EnsureBuiltinRules lazy-seeds rule definitions for every registered
// validator that has no row yet.
func (e *Engine) EnsureBuiltinRules(ctx context.Context) error {
	existing, err := e.ruleRepo.ListKeys(ctx)
	if err != nil {
		return fmt.Errorf("listing existing rule keys: %w", err)
	}

	existingSet := make(map[string]bool, len(existing))
	for _, key := range existing {
		existingSet[key] = true
	}

	for _, v := range e.registry.All() {
		if existingSet[v.RuleKey()] {
			continue
		}
		rule := &domain.ValidationRule{
			ID:               uuid.New(),
			RuleKey:          v.RuleKey(),
			RuleType:         v.RuleType(),
			ExpectedBehavior: v.RuleName(),
			Severity:         v.Severity(),
			IsActive:         true,
		}
		if err := e.ruleRepo.Create(ctx, rule); err != nil {
			return fmt.Errorf("seeding rule %s: %w", v.RuleKey(), err)
		}
	}
	return nil
}

// HasCriticalFailure reports whether the result set contains a failed
// critical rule. It works on an in-memory set so a fresh evaluation can be
// gated without re-reading storage.
func HasCriticalFailure(results []domain.ValidationResult) bool {
	for _, r := range results {
		if r.Status == domain.ResultFail && r.Severity == domain.SeverityCritical {
			return true
		}
	}
	return false
}

func countFailures(results []domain.ValidationResult) int {
	n := 0
	for _, r := range results {
		if r.Status == domain.ResultFail {
			n++
		}
	}
	return n
}
