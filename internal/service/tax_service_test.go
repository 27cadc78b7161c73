package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"declara/internal/config"
	"declara/internal/domain"
	"declara/internal/forex"
	"declara/mocks"
)

type taxServiceFixture struct {
	svc       *TaxService
	entryRepo *mocks.MockEntryRepo
	docRepo   *mocks.MockDocumentRepo
	fieldRepo *mocks.MockFieldRepo
	taxRepo   *mocks.MockTaxComputationRepo
	provider  *mocks.MockRateProvider
	audit     *mocks.MockAuditSink
}

func newTaxServiceFixture() *taxServiceFixture {
	f := &taxServiceFixture{
		entryRepo: new(mocks.MockEntryRepo),
		docRepo:   new(mocks.MockDocumentRepo),
		fieldRepo: new(mocks.MockFieldRepo),
		taxRepo:   new(mocks.MockTaxComputationRepo),
		provider:  new(mocks.MockRateProvider),
		audit:     new(mocks.MockAuditSink),
	}
	resolver := forex.NewResolver(f.provider, &config.ForexConfig{FallbackRate: "58.50"})
	f.svc = NewTaxService(f.entryRepo, f.docRepo, f.fieldRepo, f.taxRepo, resolver, f.audit)
	f.audit.On("Record", mock.Anything, mock.Anything).Return().Maybe()
	return f
}

func (f *taxServiceFixture) stubEntryData(entryID uuid.UUID, docs []domain.Document, fields []domain.ExtractedField) {
	f.entryRepo.On("GetByID", mock.Anything, entryID).Return(&domain.Entry{ID: entryID, Status: domain.EntryStatusValidated}, nil)
	f.docRepo.On("ListByEntry", mock.Anything, entryID).Return(docs, nil)
	f.fieldRepo.On("ListByEntry", mock.Anything, entryID).Return(fields, nil)
}

func TestPreviewUsesFallbackRateWhenProviderFails(t *testing.T) {
	f := newTaxServiceFixture()
	entryID, gdID := uuid.New(), uuid.New()
	f.stubEntryData(entryID,
		[]domain.Document{{ID: gdID, EntryID: entryID, Type: domain.DocTypeGD}},
		[]domain.ExtractedField{
			{DocumentID: gdID, FieldName: "hs_code", NormalizedValue: "8471300000", Confidence: 0.88, Source: domain.SourcePattern},
			{DocumentID: gdID, FieldName: "declared_value", NormalizedValue: "12500", Confidence: 0.88, Source: domain.SourcePattern},
		})
	f.provider.On("Rate", mock.Anything, "USD", "PHP", mock.Anything).Return(nil, errors.New("api down"))

	result, err := f.svc.Preview(context.Background(), entryID, RateOptions{})
	require.NoError(t, err)

	assert.True(t, result.ExchangeRate.Equal(decimal.NewFromFloat(58.50)))
	assert.Equal(t, forex.FallbackSource, result.RateSource)
	assert.True(t, result.DeclaredValueLocal.Equal(decimal.NewFromInt(731250)))
	assert.True(t, result.TotalTax.Equal(decimal.NewFromInt(87750)))
}

func TestPreviewManualRateSkipsProvider(t *testing.T) {
	f := newTaxServiceFixture()
	entryID, gdID := uuid.New(), uuid.New()
	f.stubEntryData(entryID,
		[]domain.Document{{ID: gdID, EntryID: entryID, Type: domain.DocTypeGD}},
		[]domain.ExtractedField{
			{DocumentID: gdID, FieldName: "hs_code", NormalizedValue: "8712000000", Confidence: 0.88, Source: domain.SourcePattern},
			{DocumentID: gdID, FieldName: "declared_value", NormalizedValue: "1000", Confidence: 0.88, Source: domain.SourcePattern},
		})

	manual := decimal.RequireFromString("56.00")
	result, err := f.svc.Preview(context.Background(), entryID, RateOptions{ManualRate: &manual})
	require.NoError(t, err)

	assert.Equal(t, ManualRateSource, result.RateSource)
	assert.True(t, result.DeclaredValueLocal.Equal(decimal.NewFromInt(56000)))
	assert.True(t, result.DutyAmount.Equal(decimal.NewFromInt(2800)))
	assert.True(t, result.VATAmount.Equal(decimal.NewFromInt(7056)))
	assert.True(t, result.TotalTax.Equal(decimal.NewFromInt(9856)))
	f.provider.AssertNotCalled(t, "Rate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeclaredValueFallsBackToInvoiceTotal(t *testing.T) {
	f := newTaxServiceFixture()
	entryID, gdID, invID := uuid.New(), uuid.New(), uuid.New()
	f.stubEntryData(entryID,
		[]domain.Document{
			{ID: gdID, EntryID: entryID, Type: domain.DocTypeGD},
			{ID: invID, EntryID: entryID, Type: domain.DocTypeInvoice},
		},
		[]domain.ExtractedField{
			// Synthetic zero on the GD must not be used as the dutiable base.
			{DocumentID: gdID, FieldName: "declared_value", NormalizedValue: "0", Confidence: 0.50, Source: domain.SourceSynthetic},
			{DocumentID: gdID, FieldName: "hs_code", NormalizedValue: "8471300000", Confidence: 0.88, Source: domain.SourcePattern},
			{DocumentID: invID, FieldName: "total_value", NormalizedValue: "9800", Confidence: 0.88, Source: domain.SourcePattern},
		})

	manual := decimal.RequireFromString("58.50")
	result, err := f.svc.Preview(context.Background(), entryID, RateOptions{ManualRate: &manual})
	require.NoError(t, err)

	assert.True(t, result.DeclaredValue.Equal(decimal.NewFromInt(9800)))
}

func TestConfirmRequiresOfficer(t *testing.T) {
	f := newTaxServiceFixture()

	_, err := f.svc.Confirm(context.Background(), uuid.New(), RateOptions{}, broker())

	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	f.taxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConfirmPersistsOnce(t *testing.T) {
	f := newTaxServiceFixture()
	entryID, gdID := uuid.New(), uuid.New()
	f.stubEntryData(entryID,
		[]domain.Document{{ID: gdID, EntryID: entryID, Type: domain.DocTypeGD}},
		[]domain.ExtractedField{
			{DocumentID: gdID, FieldName: "hs_code", NormalizedValue: "8471300000", Confidence: 0.88, Source: domain.SourcePattern},
			{DocumentID: gdID, FieldName: "declared_value", NormalizedValue: "12500", Confidence: 0.88, Source: domain.SourcePattern},
		})

	manual := decimal.RequireFromString("58.50")
	f.taxRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.TaxComputation")).Return(nil).Once()
	f.taxRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.TaxComputation")).Return(domain.ErrComputationExists)

	act := officer()
	comp, err := f.svc.Confirm(context.Background(), entryID, RateOptions{ManualRate: &manual}, act)
	require.NoError(t, err)
	assert.True(t, comp.TotalTax.Equal(decimal.NewFromInt(87750)))
	assert.Equal(t, act.ID, comp.ConfirmedBy)

	_, err = f.svc.Confirm(context.Background(), entryID, RateOptions{ManualRate: &manual}, act)
	assert.ErrorIs(t, err, domain.ErrComputationExists)
}

func TestConfirmUnknownEntry(t *testing.T) {
	f := newTaxServiceFixture()
	entryID := uuid.New()
	f.entryRepo.On("GetByID", mock.Anything, entryID).Return(nil, domain.ErrEntryNotFound)

	_, err := f.svc.Confirm(context.Background(), entryID, RateOptions{}, officer())

	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}
