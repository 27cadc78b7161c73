package entry

import (
	"declara/internal/domain"
)

// BuiltinValidator wraps a validator function and its metadata for the registry.
type BuiltinValidator struct {
	key      string
	name     string
	ruleType domain.RuleType
	sev      domain.Severity
	fn       func(*View) []CheckResult
}

func (b *BuiltinValidator) Validate(view *View) []CheckResult { return b.fn(view) }
func (b *BuiltinValidator) RuleKey() string                   { return b.key }
func (b *BuiltinValidator) RuleName() string                  { return b.name }
func (b *BuiltinValidator) RuleType() domain.RuleType         { return b.ruleType }
func (b *BuiltinValidator) Severity() domain.Severity         { return b.sev }

// AllBuiltinValidators returns every built-in customs entry validator.
func AllBuiltinValidators() []*BuiltinValidator {
	var all []*BuiltinValidator
	for _, v := range RequiredValidators() {
		all = append(all, wrap(v.RuleKey(), v.RuleName(), v.RuleType(), v.Severity(), v.Validate))
	}
	for _, v := range ClassificationValidators() {
		all = append(all, wrap(v.RuleKey(), v.RuleName(), v.RuleType(), v.Severity(), v.Validate))
	}
	for _, v := range ValuationValidators() {
		all = append(all, wrap(v.RuleKey(), v.RuleName(), v.RuleType(), v.Severity(), v.Validate))
	}
	for _, v := range LogisticsValidators() {
		all = append(all, wrap(v.RuleKey(), v.RuleName(), v.RuleType(), v.Severity(), v.Validate))
	}
	return all
}

func wrap(key, name string, t domain.RuleType, sev domain.Severity, fn func(*View) []CheckResult) *BuiltinValidator {
	return &BuiltinValidator{key: key, name: name, ruleType: t, sev: sev, fn: fn}
}
