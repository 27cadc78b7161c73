package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"declara/internal/config"
	"declara/internal/domain"
	"declara/internal/port"
	"declara/mocks"
)

type documentFixture struct {
	svc       *DocumentService
	docRepo   *mocks.MockDocumentRepo
	entryRepo *mocks.MockEntryRepo
	fieldRepo *mocks.MockFieldRepo
	storage   *mocks.MockObjectStorage
	audit     *mocks.MockAuditSink
}

func newDocumentFixture(lockAfterReview bool) *documentFixture {
	f := &documentFixture{
		docRepo:   new(mocks.MockDocumentRepo),
		entryRepo: new(mocks.MockEntryRepo),
		fieldRepo: new(mocks.MockFieldRepo),
		storage:   new(mocks.MockObjectStorage),
		audit:     new(mocks.MockAuditSink),
	}
	f.svc = NewDocumentService(f.docRepo, f.entryRepo, f.fieldRepo, f.storage, f.audit,
		&config.S3Config{Bucket: "declara-documents", MaxFileSizeMB: 25, PresignExpiry: 3600},
		&config.PolicyConfig{LockFieldsAfterReview: lockAfterReview})
	f.audit.On("Record", mock.Anything, mock.Anything).Return().Maybe()
	return f
}

func (f *documentFixture) stubEntry(entryID uuid.UUID, status domain.EntryStatus) {
	f.entryRepo.On("GetByID", mock.Anything, entryID).Return(&domain.Entry{ID: entryID, Status: status}, nil)
}

func TestUploadStoresBlobAndRow(t *testing.T) {
	f := newDocumentFixture(false)
	entryID := uuid.New()
	f.stubEntry(entryID, domain.EntryStatusPending)
	f.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).Return(&port.UploadOutput{}, nil)
	f.docRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)

	doc, err := f.svc.Upload(context.Background(), entryID, domain.DocTypeGD,
		"declaration.pdf", "application/pdf", 1024, bytes.NewReader([]byte("%PDF")), broker())
	require.NoError(t, err)

	assert.Equal(t, domain.DocTypeGD, doc.Type)
	assert.Contains(t, doc.StoragePath, entryID.String())
	assert.Contains(t, doc.StoragePath, "gd/")
	f.storage.AssertExpectations(t)
}

func TestUploadRejectsUnsupportedContentType(t *testing.T) {
	f := newDocumentFixture(false)
	entryID := uuid.New()
	f.stubEntry(entryID, domain.EntryStatusPending)

	_, err := f.svc.Upload(context.Background(), entryID, domain.DocTypeGD,
		"declaration.docx", "application/msword", 1024, bytes.NewReader(nil), broker())

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestUploadRejectsMismatchedExtension(t *testing.T) {
	f := newDocumentFixture(false)
	entryID := uuid.New()
	f.stubEntry(entryID, domain.EntryStatusPending)

	_, err := f.svc.Upload(context.Background(), entryID, domain.DocTypeGD,
		"declaration.exe", "application/pdf", 1024, bytes.NewReader(nil), broker())

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	f := newDocumentFixture(false)
	entryID := uuid.New()
	f.stubEntry(entryID, domain.EntryStatusPending)

	_, err := f.svc.Upload(context.Background(), entryID, domain.DocTypeGD,
		"declaration.pdf", "application/pdf", 26*1024*1024, bytes.NewReader(nil), broker())

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestFieldViewRendersEverySlot(t *testing.T) {
	f := newDocumentFixture(false)
	docID := uuid.New()
	f.docRepo.On("GetByID", mock.Anything, docID).Return(&domain.Document{ID: docID, Type: domain.DocTypeGD}, nil)
	f.fieldRepo.On("ListByDocument", mock.Anything, docID).Return([]domain.ExtractedField{
		{DocumentID: docID, FieldName: "hs_code", RawValue: "8471.30", NormalizedValue: "8471300000", Confidence: 0.92, Source: domain.SourceVision},
	}, nil)

	slots, err := f.svc.FieldView(context.Background(), docID)
	require.NoError(t, err)

	require.Len(t, slots, 6, "one slot per GD whitelist field")
	present := 0
	for _, s := range slots {
		if s.Present {
			present++
			assert.Equal(t, "hs_code", s.FieldName)
			assert.Equal(t, "8471300000", s.Value)
		} else {
			assert.Empty(t, s.Value)
		}
	}
	assert.Equal(t, 1, present)
}

func TestOverrideFieldRejectsUnknownName(t *testing.T) {
	f := newDocumentFixture(false)
	docID := uuid.New()
	f.docRepo.On("GetByID", mock.Anything, docID).Return(&domain.Document{ID: docID, Type: domain.DocTypeGD}, nil)

	err := f.svc.OverrideField(context.Background(), docID, "invoice_number", "INV-1", broker())

	assert.ErrorIs(t, err, domain.ErrUnknownField)
	f.fieldRepo.AssertNotCalled(t, "Override", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOverrideFieldDelegatesToRepo(t *testing.T) {
	f := newDocumentFixture(false)
	docID := uuid.New()
	f.docRepo.On("GetByID", mock.Anything, docID).Return(&domain.Document{ID: docID, Type: domain.DocTypeGD}, nil)
	f.fieldRepo.On("Override", mock.Anything, docID, "hs_code", "8471300000").Return(nil)

	err := f.svc.OverrideField(context.Background(), docID, "hs_code", "8471300000", broker())

	require.NoError(t, err)
	f.fieldRepo.AssertExpectations(t)
}

func TestOverrideFieldLockedAfterReview(t *testing.T) {
	f := newDocumentFixture(true)
	entryID, docID := uuid.New(), uuid.New()
	f.docRepo.On("GetByID", mock.Anything, docID).Return(&domain.Document{ID: docID, EntryID: entryID, Type: domain.DocTypeGD}, nil)
	f.stubEntry(entryID, domain.EntryStatusForReview)

	err := f.svc.OverrideField(context.Background(), docID, "hs_code", "8471300000", broker())

	assert.ErrorIs(t, err, domain.ErrManualOverride)
	f.fieldRepo.AssertNotCalled(t, "Override", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
