package port

import (
	"context"

	"declara/internal/domain"
)

// ExtractInput carries one document through the strategy chain.
type ExtractInput struct {
	FileBytes    []byte
	ContentType  string
	DocumentType domain.DocumentType
}

// FieldResult is one extracted field with its provenance.
type FieldResult struct {
	RawValue   string
	Value      string
	Confidence float64
	Source     domain.FieldSource
}

// ExtractOutput maps whitelist field names to results, plus an overall
// strategy label for observability.
type ExtractOutput struct {
	Fields       map[string]FieldResult
	StrategyUsed string
}

// FieldExtractor abstracts the multi-strategy extraction chain. A "found
// nothing" run is a success with an empty map; an error means no strategy
// could execute.
type FieldExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
