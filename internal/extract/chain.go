package extract

import (
	"context"
	"fmt"
	"log"
	"time"

	"declara/internal/domain"
	"declara/internal/port"
)

// Strategy is one extraction stage. Attempt returns the fields it could
// populate; an error means the stage could not execute at all (network,
// unreadable input), never "found nothing".
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, input port.ExtractInput) (map[string]port.FieldResult, error)
}

// Chain runs strategies in order until one executes, then fills the
// remaining whitelist gaps with synthetic placeholders. It implements
// port.FieldExtractor.
type Chain struct {
	strategies []Strategy
	now        func() time.Time
}

// NewChain creates a Chain over an ordered list of strategies.
func NewChain(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies, now: time.Now}
}

func (c *Chain) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	if !domain.IsValidDocumentType(input.DocumentType) {
		return nil, fmt.Errorf("extract.Chain: unknown document type %q", input.DocumentType)
	}

	var (
		fields   map[string]port.FieldResult
		strategy string
		lastErr  error
	)

	for _, s := range c.strategies {
		if ctx.Err() != nil {
			lastErr = ctx.Err()
			break
		}
		out, err := s.Attempt(ctx, input)
		if err != nil {
			log.Printf("extract.Chain: %s failed, falling through: %v", s.Name(), err)
			lastErr = err
			continue
		}
		fields = out
		strategy = s.Name()
		break
	}

	if fields == nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrExtractionUnavailable, lastErr)
		}
		// Every genuine strategy errored; the synthetic stage still
		// guarantees a full field set.
		fields = map[string]port.FieldResult{}
		strategy = "synthetic"
	}

	// Keep only whitelisted, non-empty results, then fill the gaps.
	clean := make(map[string]port.FieldResult, len(fields))
	for name, fr := range fields {
		if !InWhitelist(input.DocumentType, name) || fr.Value == "" {
			continue
		}
		clean[name] = fr
	}
	now := c.now()
	for _, name := range Whitelist(input.DocumentType) {
		if _, ok := clean[name]; ok {
			continue
		}
		v := SyntheticValue(name, now)
		clean[name] = port.FieldResult{
			RawValue:   v,
			Value:      v,
			Confidence: SyntheticConfidence,
			Source:     domain.SourceSynthetic,
		}
	}

	return &port.ExtractOutput{Fields: clean, StrategyUsed: strategy}, nil
}
