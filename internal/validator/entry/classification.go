package entry

import (
	"regexp"
	"strings"

	"declara/internal/domain"
)

var hsCodeFormat = regexp.MustCompile(`^\d{4,10}$`)

// classificationValidator checks HS code plausibility.
type classificationValidator struct {
	ruleKey  string
	ruleName string
	severity domain.Severity
	validate func(*View) []CheckResult
}

func (v *classificationValidator) RuleKey() string           { return v.ruleKey }
func (v *classificationValidator) RuleName() string          { return v.ruleName }
func (v *classificationValidator) RuleType() domain.RuleType { return domain.RuleClassification }
func (v *classificationValidator) Severity() domain.Severity { return v.severity }
func (v *classificationValidator) Validate(view *View) []CheckResult {
	return v.validate(view)
}

// ClassificationValidators returns HS code plausibility checks.
func ClassificationValidators() []*classificationValidator {
	return []*classificationValidator{
		{
			ruleKey: "classification.hs_code_format", ruleName: "Classification: HS Code Format",
			severity: domain.SeverityWarning,
			validate: func(view *View) []CheckResult {
				val, ok := view.Get("hs_code")
				if !ok || val.Value == "" {
					return []CheckResult{fail("hs_code", "hs_code is missing, cannot check format")}
				}
				if !hsCodeFormat.MatchString(val.Value) {
					return []CheckResult{fail("hs_code", "hs_code "+val.Value+" is not a 4-10 digit tariff code")}
				}
				return []CheckResult{pass("hs_code", "hs_code format is plausible")}
			},
		},
		{
			ruleKey: "classification.hs_code_not_placeholder", ruleName: "Classification: HS Code Classified",
			severity: domain.SeverityCritical,
			validate: func(view *View) []CheckResult {
				val, ok := view.Get("hs_code")
				if !ok {
					return []CheckResult{fail("hs_code", "hs_code is missing")}
				}
				if strings.Trim(val.Value, "0") == "" {
					return []CheckResult{fail("hs_code", "hs_code is an all-zero placeholder, goods are unclassified")}
				}
				return []CheckResult{pass("hs_code", "hs_code carries a real classification")}
			},
		},
	}
}
