package validator

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"declara/internal/domain"
	"declara/internal/validator/entry"
	"declara/mocks"
)

func engineFixture() (*Engine, *mocks.MockValidationRuleRepo, *mocks.MockValidationResultRepo, *mocks.MockDocumentRepo, *mocks.MockFieldRepo) {
	ruleRepo := new(mocks.MockValidationRuleRepo)
	resultRepo := new(mocks.MockValidationResultRepo)
	docRepo := new(mocks.MockDocumentRepo)
	fieldRepo := new(mocks.MockFieldRepo)
	e := NewEngine(DefaultRegistry(), ruleRepo, resultRepo, docRepo, fieldRepo)
	return e, ruleRepo, resultRepo, docRepo, fieldRepo
}

func allRuleRows() []domain.ValidationRule {
	var rules []domain.ValidationRule
	for _, v := range entry.AllBuiltinValidators() {
		rules = append(rules, domain.ValidationRule{
			ID:               uuid.New(),
			RuleKey:          v.RuleKey(),
			RuleType:         v.RuleType(),
			ExpectedBehavior: v.RuleName(),
			Severity:         v.Severity(),
			IsActive:         true,
		})
	}
	return rules
}

func allRuleKeys() []string {
	var keys []string
	for _, v := range entry.AllBuiltinValidators() {
		keys = append(keys, v.RuleKey())
	}
	return keys
}

func TestEnsureBuiltinRulesSeedsMissingOnly(t *testing.T) {
	e, ruleRepo, _, _, _ := engineFixture()

	seeded := []string{"required.declarant_name", "required.consignee"}
	ruleRepo.On("ListKeys", mock.Anything).Return(seeded, nil)
	ruleRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ValidationRule")).Return(nil)

	require.NoError(t, e.EnsureBuiltinRules(context.Background()))

	want := len(entry.AllBuiltinValidators()) - len(seeded)
	ruleRepo.AssertNumberOfCalls(t, "Create", want)
}

func TestEvaluateEntryStoresAndReturnsResults(t *testing.T) {
	e, ruleRepo, resultRepo, docRepo, fieldRepo := engineFixture()
	entryID := uuid.New()
	gdID := uuid.New()

	ruleRepo.On("ListKeys", mock.Anything).Return(allRuleKeys(), nil)
	ruleRepo.On("ListActive", mock.Anything).Return(allRuleRows(), nil)
	docRepo.On("ListByEntry", mock.Anything, entryID).Return([]domain.Document{
		{ID: gdID, EntryID: entryID, Type: domain.DocTypeGD},
	}, nil)
	fieldRepo.On("ListByEntry", mock.Anything, entryID).Return([]domain.ExtractedField{
		{DocumentID: gdID, FieldName: "declarant_name", NormalizedValue: "Acme Brokerage", Confidence: 0.92, Source: domain.SourceVision},
		{DocumentID: gdID, FieldName: "consignee", NormalizedValue: "Manila Trading Corp", Confidence: 0.92, Source: domain.SourceVision},
		{DocumentID: gdID, FieldName: "hs_code", NormalizedValue: "8471300000", Confidence: 0.88, Source: domain.SourcePattern},
		{DocumentID: gdID, FieldName: "declared_value", NormalizedValue: "12500", Confidence: 0.88, Source: domain.SourcePattern},
	}, nil)
	resultRepo.On("ReplaceForEntry", mock.Anything, entryID, mock.AnythingOfType("[]domain.ValidationResult")).Return(nil)

	results, err := e.EvaluateEntry(context.Background(), entryID)
	require.NoError(t, err)

	assert.Len(t, results, len(entry.AllBuiltinValidators()), "one outcome per active rule")
	assert.False(t, HasCriticalFailure(results))

	resultRepo.AssertCalled(t, "ReplaceForEntry", mock.Anything, entryID, mock.Anything)
}

func TestEvaluateEntryFlagsSyntheticPlaceholders(t *testing.T) {
	e, ruleRepo, resultRepo, docRepo, fieldRepo := engineFixture()
	entryID := uuid.New()
	gdID := uuid.New()

	rules := allRuleRows()
	ruleRepo.On("ListKeys", mock.Anything).Return(allRuleKeys(), nil)
	ruleRepo.On("ListActive", mock.Anything).Return(rules, nil)
	docRepo.On("ListByEntry", mock.Anything, entryID).Return([]domain.Document{
		{ID: gdID, EntryID: entryID, Type: domain.DocTypeGD},
	}, nil)
	fieldRepo.On("ListByEntry", mock.Anything, entryID).Return([]domain.ExtractedField{
		{DocumentID: gdID, FieldName: "hs_code", NormalizedValue: "0000000000", Confidence: 0.50, Source: domain.SourceSynthetic},
	}, nil)
	resultRepo.On("ReplaceForEntry", mock.Anything, entryID, mock.Anything).Return(nil)

	results, err := e.EvaluateEntry(context.Background(), entryID)
	require.NoError(t, err)

	assert.True(t, HasCriticalFailure(results), "placeholder-only entry must fail critically")

	ruleByID := make(map[uuid.UUID]domain.ValidationRule, len(rules))
	for _, r := range rules {
		ruleByID[r.ID] = r
	}
	for _, res := range results {
		if ruleByID[res.RuleID].RuleKey == "required.hs_code" {
			assert.Equal(t, domain.ResultFail, res.Status)
			assert.Equal(t, domain.SeverityCritical, res.Severity)
		}
		if ruleByID[res.RuleID].RuleKey == "classification.hs_code_not_placeholder" {
			assert.Equal(t, domain.ResultFail, res.Status)
		}
	}
}

func TestEvaluateEntrySkipsUnregisteredRuleKeys(t *testing.T) {
	e, ruleRepo, resultRepo, docRepo, fieldRepo := engineFixture()
	entryID := uuid.New()

	rules := append(allRuleRows(), domain.ValidationRule{
		ID: uuid.New(), RuleKey: "custom.retired_rule", IsActive: true,
	})
	ruleRepo.On("ListKeys", mock.Anything).Return(allRuleKeys(), nil)
	ruleRepo.On("ListActive", mock.Anything).Return(rules, nil)
	docRepo.On("ListByEntry", mock.Anything, entryID).Return([]domain.Document{}, nil)
	fieldRepo.On("ListByEntry", mock.Anything, entryID).Return([]domain.ExtractedField{}, nil)
	resultRepo.On("ReplaceForEntry", mock.Anything, entryID, mock.Anything).Return(nil)

	results, err := e.EvaluateEntry(context.Background(), entryID)
	require.NoError(t, err)

	assert.Len(t, results, len(entry.AllBuiltinValidators()), "rows without a registered validator are skipped")
}

func TestHasCriticalFailure(t *testing.T) {
	assert.False(t, HasCriticalFailure(nil))
	assert.False(t, HasCriticalFailure([]domain.ValidationResult{
		{Status: domain.ResultFail, Severity: domain.SeverityWarning},
		{Status: domain.ResultPass, Severity: domain.SeverityCritical},
	}))
	assert.True(t, HasCriticalFailure([]domain.ValidationResult{
		{Status: domain.ResultFail, Severity: domain.SeverityCritical},
	}))
}
