package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"declara/internal/domain"
	"declara/internal/port"
)

type stubStrategy struct {
	name   string
	fields map[string]port.FieldResult
	err    error
	calls  int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Attempt(ctx context.Context, input port.ExtractInput) (map[string]port.FieldResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.fields, nil
}

func gdInput() port.ExtractInput {
	return port.ExtractInput{
		FileBytes:    []byte("%PDF-1.4"),
		ContentType:  "application/pdf",
		DocumentType: domain.DocTypeGD,
	}
}

func TestChainFirstStrategyWins(t *testing.T) {
	first := &stubStrategy{name: "vision", fields: map[string]port.FieldResult{
		"hs_code": {RawValue: "8471.30.0000", Value: "8471300000", Confidence: 0.92, Source: domain.SourceVision},
	}}
	second := &stubStrategy{name: "textlayer"}

	out, err := NewChain(first, second).Extract(context.Background(), gdInput())
	require.NoError(t, err)

	assert.Equal(t, "vision", out.StrategyUsed)
	assert.Equal(t, 0, second.calls, "later strategies must not run once one succeeds")
	assert.Equal(t, 0.92, out.Fields["hs_code"].Confidence)
}

func TestChainFallsThroughOnStrategyError(t *testing.T) {
	first := &stubStrategy{name: "vision", err: errors.New("503 service unavailable")}
	second := &stubStrategy{name: "textlayer", fields: map[string]port.FieldResult{
		"declarant_name": {RawValue: "Acme Brokerage", Value: "Acme Brokerage", Confidence: 0.88, Source: domain.SourcePattern},
	}}

	out, err := NewChain(first, second).Extract(context.Background(), gdInput())
	require.NoError(t, err)

	assert.Equal(t, "textlayer", out.StrategyUsed)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, domain.SourcePattern, out.Fields["declarant_name"].Source)
}

func TestChainSyntheticFillCoversWhitelist(t *testing.T) {
	strategy := &stubStrategy{name: "textlayer", fields: map[string]port.FieldResult{
		"hs_code": {RawValue: "8471300000", Value: "8471300000", Confidence: 0.88, Source: domain.SourcePattern},
	}}

	out, err := NewChain(strategy).Extract(context.Background(), gdInput())
	require.NoError(t, err)

	for _, name := range Whitelist(domain.DocTypeGD) {
		fr, ok := out.Fields[name]
		require.True(t, ok, "whitelist field %s must be populated", name)
		if name == "hs_code" {
			assert.Equal(t, domain.SourcePattern, fr.Source)
			continue
		}
		assert.Equal(t, domain.SourceSynthetic, fr.Source, "field %s", name)
		assert.Equal(t, SyntheticConfidence, fr.Confidence, "field %s", name)
	}
}

func TestChainAllStrategiesFailStillYieldsPlaceholders(t *testing.T) {
	first := &stubStrategy{name: "vision", err: errors.New("timeout")}
	second := &stubStrategy{name: "textlayer", err: errors.New("no text layer")}

	out, err := NewChain(first, second).Extract(context.Background(), gdInput())
	require.NoError(t, err)

	assert.Equal(t, "synthetic", out.StrategyUsed)
	assert.Len(t, out.Fields, len(Whitelist(domain.DocTypeGD)))
	for name, fr := range out.Fields {
		assert.Equal(t, domain.SourceSynthetic, fr.Source, "field %s", name)
	}
}

func TestChainDropsNonWhitelistAndEmptyFields(t *testing.T) {
	strategy := &stubStrategy{name: "textlayer", fields: map[string]port.FieldResult{
		"invoice_number": {Value: "INV-1", Confidence: 0.88, Source: domain.SourcePattern}, // not a GD field
		"consignee":      {Value: "", Confidence: 0.88, Source: domain.SourcePattern},
		"hs_code":        {Value: "8471300000", Confidence: 0.88, Source: domain.SourcePattern},
	}}

	out, err := NewChain(strategy).Extract(context.Background(), gdInput())
	require.NoError(t, err)

	assert.NotContains(t, out.Fields, "invoice_number")
	assert.Equal(t, domain.SourceSynthetic, out.Fields["consignee"].Source, "empty capture becomes a placeholder")
	assert.Equal(t, domain.SourcePattern, out.Fields["hs_code"].Source)
}

func TestChainCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	strategy := &stubStrategy{name: "vision"}
	_, err := NewChain(strategy).Extract(ctx, gdInput())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionUnavailable)
	assert.Equal(t, 0, strategy.calls)
}

func TestChainRejectsUnknownDocumentType(t *testing.T) {
	in := gdInput()
	in.DocumentType = domain.DocumentType("RECEIPT")
	_, err := NewChain(&stubStrategy{name: "vision"}).Extract(context.Background(), in)
	assert.Error(t, err)
}

func TestSyntheticValuesAreParseable(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "0", SyntheticValue("declared_value", now))
	assert.Equal(t, "0000000000", SyntheticValue("hs_code", now))
	assert.Equal(t, "2026-03-15", SyntheticValue("invoice_date", now))
	assert.Equal(t, "1", SyntheticValue("number_of_packages", now))
}

func TestCleanNumeric(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"12,500.00", "12500.00"},
		{"$1,000", "1000"},
		{"₱56,000.00", "56000.00"},
		{"250.5 kg", "250.5"},
		{"100 KGS", "100"},
		{"  42  ", "42"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanNumeric(tt.raw), "raw %q", tt.raw)
	}
}

func TestNormalizeOnlyTouchesNumericFields(t *testing.T) {
	assert.Equal(t, "12500.00", Normalize("declared_value", "12,500.00"))
	assert.Equal(t, "Acme Trading, Inc.", Normalize("consignee", "  Acme Trading, Inc.  "))
}
