package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"declara/internal/config"
	"declara/internal/domain"
	"declara/internal/extract"
	"declara/internal/port"
)

// FieldSlot is one whitelist position in a document's field view. Fields
// with no stored record render as empty slots, never null.
type FieldSlot struct {
	FieldName  string             `json:"field_name"`
	RawValue   string             `json:"raw_value"`
	Value      string             `json:"value"`
	Confidence float64            `json:"confidence"`
	Source     domain.FieldSource `json:"source"`
	Present    bool               `json:"present"`
}

// DocumentService handles uploads, retrieval handles, and the reconciled
// field view of single documents.
type DocumentService struct {
	docRepo   port.DocumentRepository
	entryRepo port.EntryRepository
	fieldRepo port.FieldRepository
	storage   port.ObjectStorage
	audit     port.AuditSink

	bucket          string
	maxFileBytes    int64
	presignExpiry   int64
	lockAfterReview bool
}

// NewDocumentService creates a DocumentService.
func NewDocumentService(
	docRepo port.DocumentRepository,
	entryRepo port.EntryRepository,
	fieldRepo port.FieldRepository,
	storage port.ObjectStorage,
	audit port.AuditSink,
	s3cfg *config.S3Config,
	policy *config.PolicyConfig,
) *DocumentService {
	maxBytes := s3cfg.MaxFileSizeMB * 1024 * 1024
	if maxBytes <= 0 {
		maxBytes = 25 * 1024 * 1024
	}
	expiry := s3cfg.PresignExpiry
	if expiry <= 0 {
		expiry = 3600
	}
	return &DocumentService{
		docRepo:         docRepo,
		entryRepo:       entryRepo,
		fieldRepo:       fieldRepo,
		storage:         storage,
		audit:           audit,
		bucket:          s3cfg.Bucket,
		maxFileBytes:    maxBytes,
		presignExpiry:   expiry,
		lockAfterReview: policy.LockFieldsAfterReview,
	}
}

// Upload stores a document blob and registers the document row. The file is
// immutable once stored; corrections arrive as new documents or overrides.
func (s *DocumentService) Upload(ctx context.Context, entryID uuid.UUID, docType domain.DocumentType, fileName, contentType string, size int64, body io.Reader, actor domain.Actor) (*domain.Document, error) {
	if _, err := s.entryRepo.GetByID(ctx, entryID); err != nil {
		return nil, err
	}
	if !domain.IsValidDocumentType(docType) {
		return nil, fmt.Errorf("%w: unknown document type %q", domain.ErrUnsupportedFileType, docType)
	}
	if _, ok := domain.AllowedContentTypes[contentType]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, contentType)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, fmt.Errorf("%w: .%s", domain.ErrUnsupportedFileType, ext)
	}
	if size > s.maxFileBytes {
		return nil, fmt.Errorf("%w: %d bytes", domain.ErrFileTooLarge, size)
	}

	docID := uuid.New()
	key := fmt.Sprintf("entries/%s/%s/%s.%s", entryID, strings.ToLower(string(docType)), docID, ext)

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        body,
		ContentType: contentType,
		Size:        size,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	doc := &domain.Document{
		ID:          docID,
		EntryID:     entryID,
		Type:        docType,
		StoragePath: key,
		ContentType: contentType,
		FileName:    fileName,
		FileSize:    size,
		UploadedBy:  actor.ID,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEvent{
		Action:        "DOCUMENT_UPLOADED",
		ActorRole:     actor.Role,
		ActorID:       actor.ID,
		ReferenceType: "document",
		ReferenceID:   docID.String(),
		Remarks:       fmt.Sprintf("%s %s", docType, fileName),
	})
	return doc, nil
}

// Get returns one document row.
func (s *DocumentService) Get(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	return s.docRepo.GetByID(ctx, docID)
}

// ListByEntry returns the entry's documents in upload order.
func (s *DocumentService) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.Document, error) {
	return s.docRepo.ListByEntry(ctx, entryID)
}

// SignedURL returns a time-limited retrieval handle for the document blob.
func (s *DocumentService) SignedURL(ctx context.Context, docID uuid.UUID) (string, error) {
	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return "", err
	}
	url, err := s.storage.GetPresignedURL(ctx, s.bucket, doc.StoragePath, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("DocumentService.SignedURL: %w", err)
	}
	return url, nil
}

// FieldView returns the document's fields in whitelist order, one slot per
// whitelist name whether or not a record exists yet.
func (s *DocumentService) FieldView(ctx context.Context, docID uuid.UUID) ([]FieldSlot, error) {
	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	fields, err := s.fieldRepo.ListByDocument(ctx, docID)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]domain.ExtractedField, len(fields))
	for _, f := range fields {
		byName[f.FieldName] = f
	}

	names := extract.Whitelist(doc.Type)
	slots := make([]FieldSlot, 0, len(names))
	for _, name := range names {
		if f, ok := byName[name]; ok {
			slots = append(slots, FieldSlot{
				FieldName:  name,
				RawValue:   f.RawValue,
				Value:      f.NormalizedValue,
				Confidence: f.Confidence,
				Source:     f.Source,
				Present:    true,
			})
			continue
		}
		slots = append(slots, FieldSlot{FieldName: name})
	}
	return slots, nil
}

// OverrideField records a broker edit. Manual values carry the sentinel
// confidence and are never displaced by automated re-runs.
func (s *DocumentService) OverrideField(ctx context.Context, docID uuid.UUID, fieldName, value string, actor domain.Actor) error {
	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return err
	}
	if !extract.InWhitelist(doc.Type, fieldName) {
		return fmt.Errorf("%w: %s for %s", domain.ErrUnknownField, fieldName, doc.Type)
	}

	if s.lockAfterReview {
		entry, err := s.entryRepo.GetByID(ctx, doc.EntryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.EntryStatusPending {
			return fmt.Errorf("%w: entry is %s and field edits are locked", domain.ErrManualOverride, entry.Status)
		}
	}

	if err := s.fieldRepo.Override(ctx, docID, fieldName, value); err != nil {
		return err
	}

	s.audit.Record(ctx, domain.AuditEvent{
		Action:        "FIELD_OVERRIDDEN",
		ActorRole:     actor.Role,
		ActorID:       actor.ID,
		ReferenceType: "document",
		ReferenceID:   docID.String(),
		Remarks:       fieldName,
	})
	return nil
}
