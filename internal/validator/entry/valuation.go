package entry

import (
	"fmt"

	"github.com/shopspring/decimal"

	"declara/internal/domain"
)

// valuationValidator checks declared-value plausibility.
type valuationValidator struct {
	ruleKey  string
	ruleName string
	severity domain.Severity
	validate func(*View) []CheckResult
}

func (v *valuationValidator) RuleKey() string           { return v.ruleKey }
func (v *valuationValidator) RuleName() string          { return v.ruleName }
func (v *valuationValidator) RuleType() domain.RuleType { return domain.RuleValuation }
func (v *valuationValidator) Severity() domain.Severity { return v.severity }
func (v *valuationValidator) Validate(view *View) []CheckResult {
	return v.validate(view)
}

// invoiceTotalTolerance allows 10% drift between the declaration and the
// commercial invoice before flagging.
var invoiceTotalTolerance = decimal.NewFromFloat(0.10)

// ValuationValidators returns declared-value plausibility checks.
func ValuationValidators() []*valuationValidator {
	return []*valuationValidator{
		{
			ruleKey: "valuation.declared_value_positive", ruleName: "Valuation: Declared Value Positive",
			severity: domain.SeverityCritical,
			validate: func(view *View) []CheckResult {
				val, ok := view.Get("declared_value")
				if !ok || val.Value == "" {
					return []CheckResult{fail("declared_value", "declared_value is missing")}
				}
				d, err := decimal.NewFromString(val.Value)
				if err != nil {
					return []CheckResult{fail("declared_value", "declared_value "+val.Value+" is not numeric")}
				}
				if d.LessThanOrEqual(decimal.Zero) {
					return []CheckResult{fail("declared_value", "declared_value must be greater than zero")}
				}
				return []CheckResult{pass("declared_value", "declared_value is a positive amount")}
			},
		},
		{
			ruleKey: "valuation.matches_invoice_total", ruleName: "Valuation: Matches Invoice Total",
			severity: domain.SeverityWarning,
			validate: func(view *View) []CheckResult {
				declared, okD := view.ByType[domain.DocTypeGD]["declared_value"]
				invTotal, okI := view.ByType[domain.DocTypeInvoice]["total_value"]
				if !okD || !okI {
					return []CheckResult{pass("declared_value", "declaration and invoice totals not both present, nothing to compare")}
				}
				dv, err1 := decimal.NewFromString(declared.Value)
				it, err2 := decimal.NewFromString(invTotal.Value)
				if err1 != nil || err2 != nil || it.IsZero() {
					return []CheckResult{fail("declared_value", "declared_value and invoice total_value could not be compared numerically")}
				}
				drift := dv.Sub(it).Abs().Div(it)
				if drift.GreaterThan(invoiceTotalTolerance) {
					return []CheckResult{fail("declared_value", fmt.Sprintf("declared_value %s differs from invoice total %s by more than 10%%", dv, it))}
				}
				return []CheckResult{pass("declared_value", "declared_value is consistent with the invoice total")}
			},
		},
	}
}
