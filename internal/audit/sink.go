package audit

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"declara/internal/domain"
	"declara/internal/port"
)

// Sink appends activity records to the audit_logs table. Recording is
// fire-and-forget: failures are logged and swallowed so they can never fail
// or roll back the operation being audited.
type Sink struct {
	db *sqlx.DB
}

// NewSink creates a postgres-backed audit sink.
func NewSink(db *sqlx.DB) port.AuditSink {
	return &Sink{db: db}
}

func (s *Sink) Record(ctx context.Context, event domain.AuditEvent) {
	if event.ID == (uuid.UUID{}) {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO audit_logs (id, action, actor_role, actor_id, reference_type, reference_id, remarks, created_at)
		VALUES (:id, :action, :actor_role, :actor_id, :reference_type, :reference_id, :remarks, :created_at)`

	if _, err := s.db.NamedExecContext(ctx, query, event); err != nil {
		log.Printf("audit.Sink: failed to record %s on %s %s: %v", event.Action, event.ReferenceType, event.ReferenceID, err)
	}
}

// NopSink discards every event. Useful where auditing is not configured.
type NopSink struct{}

func (NopSink) Record(context.Context, domain.AuditEvent) {}
