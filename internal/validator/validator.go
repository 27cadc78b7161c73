package validator

import (
	"declara/internal/domain"
	"declara/internal/validator/entry"
)

// Validator is the interface for a single built-in validation rule.
type Validator interface {
	Validate(view *entry.View) []entry.CheckResult
	RuleKey() string
	RuleName() string
	RuleType() domain.RuleType
	Severity() domain.Severity
}
