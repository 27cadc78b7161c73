package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"declara/internal/domain"
)

func viewWith(best map[string]Value) *View {
	v := &View{Best: best, ByType: map[domain.DocumentType]map[string]Value{}}
	if v.Best == nil {
		v.Best = map[string]Value{}
	}
	return v
}

func findValidator(t *testing.T, key string) *BuiltinValidator {
	t.Helper()
	for _, v := range AllBuiltinValidators() {
		if v.RuleKey() == key {
			return v
		}
	}
	t.Fatalf("no builtin validator registered for %s", key)
	return nil
}

func singleCheck(t *testing.T, key string, view *View) CheckResult {
	t.Helper()
	checks := findValidator(t, key).Validate(view)
	require.Len(t, checks, 1)
	return checks[0]
}

func TestRequiredFieldFailsOnMissingAndSynthetic(t *testing.T) {
	missing := singleCheck(t, "required.hs_code", viewWith(nil))
	assert.False(t, missing.Passed)

	placeholder := singleCheck(t, "required.hs_code", viewWith(map[string]Value{
		"hs_code": {Value: "0000000000", Confidence: 0.50, Source: domain.SourceSynthetic},
	}))
	assert.False(t, placeholder.Passed, "a placeholder must not satisfy a required check")

	real := singleCheck(t, "required.hs_code", viewWith(map[string]Value{
		"hs_code": {Value: "8471300000", Confidence: 0.88, Source: domain.SourcePattern},
	}))
	assert.True(t, real.Passed)
}

func TestRequiredSeverities(t *testing.T) {
	assert.Equal(t, domain.SeverityCritical, findValidator(t, "required.declarant_name").Severity())
	assert.Equal(t, domain.SeverityCritical, findValidator(t, "required.declared_value").Severity())
	assert.Equal(t, domain.SeverityWarning, findValidator(t, "required.invoice_number").Severity())
}

func TestHSCodeFormat(t *testing.T) {
	ok := singleCheck(t, "classification.hs_code_format", viewWith(map[string]Value{
		"hs_code": {Value: "8471300000"},
	}))
	assert.True(t, ok.Passed)

	bad := singleCheck(t, "classification.hs_code_format", viewWith(map[string]Value{
		"hs_code": {Value: "84-71.30"},
	}))
	assert.False(t, bad.Passed)

	short := singleCheck(t, "classification.hs_code_format", viewWith(map[string]Value{
		"hs_code": {Value: "847"},
	}))
	assert.False(t, short.Passed)
}

func TestHSCodeNotPlaceholder(t *testing.T) {
	zeros := singleCheck(t, "classification.hs_code_not_placeholder", viewWith(map[string]Value{
		"hs_code": {Value: "0000000000", Source: domain.SourceSynthetic},
	}))
	assert.False(t, zeros.Passed)

	real := singleCheck(t, "classification.hs_code_not_placeholder", viewWith(map[string]Value{
		"hs_code": {Value: "8471300000"},
	}))
	assert.True(t, real.Passed)
}

func TestDeclaredValuePositive(t *testing.T) {
	zero := singleCheck(t, "valuation.declared_value_positive", viewWith(map[string]Value{
		"declared_value": {Value: "0"},
	}))
	assert.False(t, zero.Passed, "the synthetic zero placeholder must fail valuation")

	positive := singleCheck(t, "valuation.declared_value_positive", viewWith(map[string]Value{
		"declared_value": {Value: "12500"},
	}))
	assert.True(t, positive.Passed)
}

func TestDeclaredValueMatchesInvoiceTotal(t *testing.T) {
	within := &View{Best: map[string]Value{}, ByType: map[domain.DocumentType]map[string]Value{
		domain.DocTypeGD:      {"declared_value": {Value: "10500"}},
		domain.DocTypeInvoice: {"total_value": {Value: "10000"}},
	}}
	assert.True(t, singleCheck(t, "valuation.matches_invoice_total", within).Passed)

	beyond := &View{Best: map[string]Value{}, ByType: map[domain.DocumentType]map[string]Value{
		domain.DocTypeGD:      {"declared_value": {Value: "12000"}},
		domain.DocTypeInvoice: {"total_value": {Value: "10000"}},
	}}
	assert.False(t, singleCheck(t, "valuation.matches_invoice_total", beyond).Passed)

	oneSided := &View{Best: map[string]Value{}, ByType: map[domain.DocumentType]map[string]Value{
		domain.DocTypeGD: {"declared_value": {Value: "12000"}},
	}}
	assert.True(t, singleCheck(t, "valuation.matches_invoice_total", oneSided).Passed,
		"a missing counterpart is not a mismatch")
}

func TestGrossWeightConsistency(t *testing.T) {
	agree := &View{Best: map[string]Value{}, ByType: map[domain.DocumentType]map[string]Value{
		domain.DocTypeGD:          {"gross_weight": {Value: "250"}},
		domain.DocTypePackingList: {"gross_weight": {Value: "248"}},
		domain.DocTypeAWB:         {"gross_weight": {Value: "251"}},
	}}
	assert.True(t, singleCheck(t, "logistics.gross_weight_consistent", agree).Passed)

	disagree := &View{Best: map[string]Value{}, ByType: map[domain.DocumentType]map[string]Value{
		domain.DocTypeGD:  {"gross_weight": {Value: "250"}},
		domain.DocTypeAWB: {"gross_weight": {Value: "180"}},
	}}
	assert.False(t, singleCheck(t, "logistics.gross_weight_consistent", disagree).Passed)
}

func TestNetNotAboveGross(t *testing.T) {
	bad := viewWith(map[string]Value{
		"net_weight":   {Value: "260"},
		"gross_weight": {Value: "250"},
	})
	assert.False(t, singleCheck(t, "logistics.net_not_above_gross", bad).Passed)

	good := viewWith(map[string]Value{
		"net_weight":   {Value: "230"},
		"gross_weight": {Value: "250"},
	})
	assert.True(t, singleCheck(t, "logistics.net_not_above_gross", good).Passed)
}

func TestPackagesPositive(t *testing.T) {
	assert.Equal(t, domain.SeverityInfo, findValidator(t, "logistics.packages_positive").Severity())

	zero := singleCheck(t, "logistics.packages_positive", viewWith(map[string]Value{
		"number_of_packages": {Value: "0"},
	}))
	assert.False(t, zero.Passed)

	absent := singleCheck(t, "logistics.packages_positive", viewWith(nil))
	assert.True(t, absent.Passed)
}
