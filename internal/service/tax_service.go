package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"declara/internal/domain"
	"declara/internal/forex"
	"declara/internal/port"
	"declara/internal/tax"
	"declara/internal/validator/entry"
)

// ManualRateSource labels a computation whose exchange rate the officer
// supplied directly instead of fetching.
const ManualRateSource = "manual (officer override)"

// RateOptions controls exchange-rate resolution for a computation. A manual
// rate bypasses the provider entirely.
type RateOptions struct {
	ManualRate    *decimal.Decimal
	BaseCurrency  string
	QuoteCurrency string
}

// TaxService previews and confirms duty/VAT computations. Confirm persists
// exactly once per entry.
type TaxService struct {
	entryRepo port.EntryRepository
	docRepo   port.DocumentRepository
	fieldRepo port.FieldRepository
	taxRepo   port.TaxComputationRepository
	resolver  *forex.Resolver
	audit     port.AuditSink
}

// NewTaxService creates a TaxService.
func NewTaxService(
	entryRepo port.EntryRepository,
	docRepo port.DocumentRepository,
	fieldRepo port.FieldRepository,
	taxRepo port.TaxComputationRepository,
	resolver *forex.Resolver,
	audit port.AuditSink,
) *TaxService {
	return &TaxService{
		entryRepo: entryRepo,
		docRepo:   docRepo,
		fieldRepo: fieldRepo,
		taxRepo:   taxRepo,
		resolver:  resolver,
		audit:     audit,
	}
}

// Preview computes the duty/VAT chain without persisting anything.
func (s *TaxService) Preview(ctx context.Context, entryID uuid.UUID, opts RateOptions) (*tax.Result, error) {
	input, err := s.buildInput(ctx, entryID, opts)
	if err != nil {
		return nil, err
	}
	return tax.Compute(*input)
}

// Confirm computes and persists the final computation. A second confirm for
// the same entry fails with ErrComputationExists rather than duplicating.
func (s *TaxService) Confirm(ctx context.Context, entryID uuid.UUID, opts RateOptions, actor domain.Actor) (*domain.TaxComputation, error) {
	if !actor.IsOfficer() {
		return nil, domain.ErrInsufficientRole
	}

	input, err := s.buildInput(ctx, entryID, opts)
	if err != nil {
		return nil, err
	}
	result, err := tax.Compute(*input)
	if err != nil {
		return nil, err
	}

	comp := &domain.TaxComputation{
		ID:                 uuid.New(),
		EntryID:            entryID,
		LineNo:             result.LineNo,
		Description:        result.Description,
		HSCode:             result.HSCode,
		Currency:           result.Currency,
		DeclaredValue:      result.DeclaredValue,
		ExchangeRate:       result.ExchangeRate,
		DeclaredValueLocal: result.DeclaredValueLocal,
		DutyRate:           result.DutyRate,
		DutyAmount:         result.DutyAmount,
		VATRate:            result.VATRate,
		VATAmount:          result.VATAmount,
		TotalTax:           result.TotalTax,
		RateSource:         result.RateSource,
		ConfirmedBy:        actor.ID,
	}
	if err := s.taxRepo.Create(ctx, comp); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEvent{
		Action:        "TAX_CONFIRMED",
		ActorRole:     actor.Role,
		ActorID:       actor.ID,
		ReferenceType: "entry",
		ReferenceID:   entryID.String(),
		Remarks:       fmt.Sprintf("total tax %s (%s)", comp.TotalTax, comp.RateSource),
	})
	return comp, nil
}

// GetComputation returns the entry's confirmed computation, if any.
func (s *TaxService) GetComputation(ctx context.Context, entryID uuid.UUID) (*domain.TaxComputation, error) {
	return s.taxRepo.GetByEntry(ctx, entryID)
}

// buildInput resolves the declaration line and exchange rate for an entry.
func (s *TaxService) buildInput(ctx context.Context, entryID uuid.UUID, opts RateOptions) (*tax.Input, error) {
	if _, err := s.entryRepo.GetByID(ctx, entryID); err != nil {
		return nil, err
	}

	docs, err := s.docRepo.ListByEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	fields, err := s.fieldRepo.ListByEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	view := entry.BuildView(docs, fields)

	quote := s.resolveRate(ctx, opts)

	declared := s.resolveDeclaredValue(view)
	hsCode := ""
	if v, ok := view.Get("hs_code"); ok {
		hsCode = v.Value
	}
	description := "Imported goods"
	if v, ok := view.ByType[domain.DocTypeInvoice]["description_of_goods"]; ok && v.Value != "" {
		description = v.Value
	}

	return &tax.Input{
		LineNo:        1,
		Description:   description,
		HSCode:        hsCode,
		Currency:      quote.BaseCurrency,
		DeclaredValue: declared,
		ExchangeRate:  quote.Rate,
		RateSource:    quote.Source,
	}, nil
}

func (s *TaxService) resolveRate(ctx context.Context, opts RateOptions) *port.RateQuote {
	now := time.Now().UTC()
	if opts.ManualRate != nil {
		return &port.RateQuote{
			Rate:          *opts.ManualRate,
			BaseCurrency:  opts.BaseCurrency,
			QuoteCurrency: opts.QuoteCurrency,
			RateDate:      now,
			Source:        ManualRateSource,
		}
	}
	return s.resolver.Resolve(ctx, opts.BaseCurrency, opts.QuoteCurrency, now)
}

// resolveDeclaredValue takes the GD declared_value, falling back to the
// invoice total when the GD field is absent, zero, or non-numeric.
func (s *TaxService) resolveDeclaredValue(view *entry.View) decimal.Decimal {
	if v, ok := view.ByType[domain.DocTypeGD]["declared_value"]; ok {
		if d, err := decimal.NewFromString(v.Value); err == nil && d.IsPositive() {
			return d
		}
	}
	if v, ok := view.ByType[domain.DocTypeInvoice]["total_value"]; ok {
		if d, err := decimal.NewFromString(v.Value); err == nil && d.IsPositive() {
			return d
		}
	}
	if v, ok := view.Get("declared_value"); ok {
		if d, err := decimal.NewFromString(v.Value); err == nil && d.IsPositive() {
			return d
		}
	}
	return decimal.Zero
}
