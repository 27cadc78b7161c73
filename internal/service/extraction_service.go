package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"declara/internal/domain"
	"declara/internal/port"
)

// DocumentExtraction is the per-document outcome of an extraction batch.
type DocumentExtraction struct {
	DocumentID   uuid.UUID `json:"document_id"`
	StrategyUsed string    `json:"strategy_used,omitempty"`
	FieldsStored int       `json:"fields_stored"`
	Error        string    `json:"error,omitempty"`
}

// ExtractionService dispatches the strategy chain across an entry's
// documents with a bounded worker pool and commits results per document.
type ExtractionService struct {
	docRepo   port.DocumentRepository
	fieldRepo port.FieldRepository
	storage   port.ObjectStorage
	extractor port.FieldExtractor
	audit     port.AuditSink

	bucket      string
	concurrency int
}

// NewExtractionService creates an ExtractionService.
func NewExtractionService(
	docRepo port.DocumentRepository,
	fieldRepo port.FieldRepository,
	storage port.ObjectStorage,
	extractor port.FieldExtractor,
	audit port.AuditSink,
	bucket string,
	concurrency int,
) *ExtractionService {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &ExtractionService{
		docRepo:     docRepo,
		fieldRepo:   fieldRepo,
		storage:     storage,
		extractor:   extractor,
		audit:       audit,
		bucket:      bucket,
		concurrency: concurrency,
	}
}

// ExtractDocument runs the chain for one document and upserts its fields.
// fresh marks a user-requested re-run, which may refresh equal-confidence
// automated values but never touches manual overrides.
func (s *ExtractionService) ExtractDocument(ctx context.Context, docID uuid.UUID, fresh bool, actor domain.Actor) (*DocumentExtraction, error) {
	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	result := s.extractOne(ctx, doc, fresh)
	if result.Error != "" {
		return result, fmt.Errorf("ExtractionService.ExtractDocument: %s", result.Error)
	}

	s.audit.Record(ctx, domain.AuditEvent{
		Action:        "EXTRACTION_RUN",
		ActorRole:     actor.Role,
		ActorID:       actor.ID,
		ReferenceType: "document",
		ReferenceID:   docID.String(),
		Remarks:       result.StrategyUsed,
	})
	return result, nil
}

// ExtractEntry runs the chain across every document of an entry. Documents
// are independent, so they are dispatched concurrently under a bounded pool;
// each document commits its own fields, so cancellation mid-batch keeps the
// finished documents' results (it stops dispatching, in-flight work
// completes and commits).
func (s *ExtractionService) ExtractEntry(ctx context.Context, entryID uuid.UUID, fresh bool, actor domain.Actor) ([]DocumentExtraction, error) {
	docs, err := s.docRepo.ListByEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	results := make([]DocumentExtraction, 0, len(docs))

	for i := range docs {
		if ctx.Err() != nil {
			// Stop dispatching; whatever is in flight still commits.
			break
		}
		doc := docs[i]

		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			// Detached timeout so an in-flight extraction survives batch
			// cancellation and still commits its document.
			runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Minute)
			defer cancel()

			r := s.extractOne(runCtx, &doc, fresh)
			mu.Lock()
			results = append(results, *r)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Slice(results, func(a, b int) bool {
		return results[a].DocumentID.String() < results[b].DocumentID.String()
	})

	s.audit.Record(ctx, domain.AuditEvent{
		Action:        "EXTRACTION_BATCH",
		ActorRole:     actor.Role,
		ActorID:       actor.ID,
		ReferenceType: "entry",
		ReferenceID:   entryID.String(),
		Remarks:       fmt.Sprintf("%d of %d documents dispatched", len(results), len(docs)),
	})
	return results, nil
}

func (s *ExtractionService) extractOne(ctx context.Context, doc *domain.Document, fresh bool) *DocumentExtraction {
	out := &DocumentExtraction{DocumentID: doc.ID}

	fileBytes, err := s.storage.Download(ctx, s.bucket, doc.StoragePath)
	if err != nil {
		out.Error = fmt.Sprintf("downloading document: %v", err)
		return out
	}

	extracted, err := s.extractor.Extract(ctx, port.ExtractInput{
		FileBytes:    fileBytes,
		ContentType:  doc.ContentType,
		DocumentType: doc.Type,
	})
	if err != nil {
		out.Error = fmt.Sprintf("extracting fields: %v", err)
		return out
	}
	out.StrategyUsed = extracted.StrategyUsed

	// Per-field upserts commit independently so a single conflict cannot
	// roll back the document's whole run.
	for name, fr := range extracted.Fields {
		err := s.fieldRepo.Upsert(ctx, port.FieldUpsert{
			DocumentID: doc.ID,
			FieldName:  name,
			RawValue:   fr.RawValue,
			Value:      fr.Value,
			Confidence: fr.Confidence,
			Source:     fr.Source,
			// Synthetic placeholders never qualify as a refresh; a re-run
			// that found nothing must not clobber a real earlier value.
			FreshRun: fresh && fr.Source != domain.SourceSynthetic,
		})
		if err != nil {
			log.Printf("service.ExtractionService: upsert %s on document %s failed: %v", name, doc.ID, err)
			continue
		}
		out.FieldsStored++
	}

	log.Printf("service.ExtractionService: document %s extracted via %s, %d fields stored",
		doc.ID, out.StrategyUsed, out.FieldsStored)
	return out
}
