package entry

// CheckResult is one pass/fail outcome produced by a validator.
type CheckResult struct {
	Passed    bool
	FieldName string
	Message   string
}

func pass(fieldName, msg string) CheckResult {
	return CheckResult{Passed: true, FieldName: fieldName, Message: msg}
}

func fail(fieldName, msg string) CheckResult {
	return CheckResult{Passed: false, FieldName: fieldName, Message: msg}
}
