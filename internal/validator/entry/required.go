package entry

import (
	"fmt"

	"declara/internal/domain"
)

// requiredFieldValidator checks that a field was genuinely extracted or
// entered, not left to a synthetic placeholder.
type requiredFieldValidator struct {
	ruleKey   string
	ruleName  string
	fieldName string
	severity  domain.Severity
}

func (v *requiredFieldValidator) RuleKey() string           { return v.ruleKey }
func (v *requiredFieldValidator) RuleName() string          { return v.ruleName }
func (v *requiredFieldValidator) RuleType() domain.RuleType { return domain.RuleRequired }
func (v *requiredFieldValidator) Severity() domain.Severity { return v.severity }

func (v *requiredFieldValidator) Validate(view *View) []CheckResult {
	val, ok := view.Get(v.fieldName)
	if !ok || val.Value == "" {
		return []CheckResult{fail(v.fieldName, fmt.Sprintf("%s is missing", v.fieldName))}
	}
	if val.Source == domain.SourceSynthetic {
		return []CheckResult{fail(v.fieldName, fmt.Sprintf("%s holds a placeholder, no real value was extracted or entered", v.fieldName))}
	}
	return []CheckResult{pass(v.fieldName, fmt.Sprintf("%s is present", v.fieldName))}
}

// RequiredValidators returns presence checks for the fields a declaration
// cannot proceed without.
func RequiredValidators() []*requiredFieldValidator {
	return []*requiredFieldValidator{
		{ruleKey: "required.declarant_name", ruleName: "Required: Declarant Name", fieldName: "declarant_name", severity: domain.SeverityCritical},
		{ruleKey: "required.consignee", ruleName: "Required: Consignee", fieldName: "consignee", severity: domain.SeverityCritical},
		{ruleKey: "required.hs_code", ruleName: "Required: HS Code", fieldName: "hs_code", severity: domain.SeverityCritical},
		{ruleKey: "required.declared_value", ruleName: "Required: Declared Value", fieldName: "declared_value", severity: domain.SeverityCritical},
		{ruleKey: "required.invoice_number", ruleName: "Required: Invoice Number", fieldName: "invoice_number", severity: domain.SeverityWarning},
		{ruleKey: "required.gross_weight", ruleName: "Required: Gross Weight", fieldName: "gross_weight", severity: domain.SeverityWarning},
	}
}
