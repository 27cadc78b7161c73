package entry

import (
	"fmt"

	"github.com/shopspring/decimal"

	"declara/internal/domain"
)

// logisticsValidator checks weight and package consistency across documents.
type logisticsValidator struct {
	ruleKey  string
	ruleName string
	severity domain.Severity
	validate func(*View) []CheckResult
}

func (v *logisticsValidator) RuleKey() string           { return v.ruleKey }
func (v *logisticsValidator) RuleName() string          { return v.ruleName }
func (v *logisticsValidator) RuleType() domain.RuleType { return domain.RuleLogistics }
func (v *logisticsValidator) Severity() domain.Severity { return v.severity }
func (v *logisticsValidator) Validate(view *View) []CheckResult {
	return v.validate(view)
}

// grossWeightTolerance allows 5% drift between gross weights reported on
// different documents.
var grossWeightTolerance = decimal.NewFromFloat(0.05)

// LogisticsValidators returns cross-document weight and package checks.
func LogisticsValidators() []*logisticsValidator {
	return []*logisticsValidator{
		{
			ruleKey: "logistics.gross_weight_consistent", ruleName: "Logistics: Gross Weight Consistent",
			severity: domain.SeverityWarning,
			validate: func(view *View) []CheckResult {
				weights := map[domain.DocumentType]decimal.Decimal{}
				for _, t := range []domain.DocumentType{domain.DocTypeGD, domain.DocTypePackingList, domain.DocTypeAWB} {
					val, ok := view.ByType[t]["gross_weight"]
					if !ok || val.Value == "" {
						continue
					}
					if w, err := decimal.NewFromString(val.Value); err == nil && w.IsPositive() {
						weights[t] = w
					}
				}
				if len(weights) < 2 {
					return []CheckResult{pass("gross_weight", "fewer than two documents report gross_weight, nothing to compare")}
				}
				var minW, maxW decimal.Decimal
				first := true
				for _, w := range weights {
					if first {
						minW, maxW = w, w
						first = false
						continue
					}
					if w.LessThan(minW) {
						minW = w
					}
					if w.GreaterThan(maxW) {
						maxW = w
					}
				}
				if maxW.Sub(minW).Div(maxW).GreaterThan(grossWeightTolerance) {
					return []CheckResult{fail("gross_weight", fmt.Sprintf("gross_weight ranges from %s to %s across documents, beyond 5%% tolerance", minW, maxW))}
				}
				return []CheckResult{pass("gross_weight", "gross_weight agrees across documents")}
			},
		},
		{
			ruleKey: "logistics.net_not_above_gross", ruleName: "Logistics: Net Weight Not Above Gross",
			severity: domain.SeverityWarning,
			validate: func(view *View) []CheckResult {
				netVal, okN := view.Get("net_weight")
				grossVal, okG := view.Get("gross_weight")
				if !okN || !okG {
					return []CheckResult{pass("net_weight", "net and gross weights not both present, nothing to compare")}
				}
				net, err1 := decimal.NewFromString(netVal.Value)
				gross, err2 := decimal.NewFromString(grossVal.Value)
				if err1 != nil || err2 != nil {
					return []CheckResult{fail("net_weight", "net_weight and gross_weight could not be compared numerically")}
				}
				if net.GreaterThan(gross) {
					return []CheckResult{fail("net_weight", fmt.Sprintf("net_weight %s exceeds gross_weight %s", net, gross))}
				}
				return []CheckResult{pass("net_weight", "net_weight is within gross_weight")}
			},
		},
		{
			ruleKey: "logistics.packages_positive", ruleName: "Logistics: Package Count Positive",
			severity: domain.SeverityInfo,
			validate: func(view *View) []CheckResult {
				val, ok := view.Get("number_of_packages")
				if !ok || val.Value == "" {
					return []CheckResult{pass("number_of_packages", "no packing list on file, package count not checked")}
				}
				n, err := decimal.NewFromString(val.Value)
				if err != nil || !n.IsPositive() {
					return []CheckResult{fail("number_of_packages", "number_of_packages must be a positive count")}
				}
				return []CheckResult{pass("number_of_packages", "number_of_packages is a positive count")}
			},
		},
	}
}
