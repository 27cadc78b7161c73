package port

import (
	"context"

	"declara/internal/domain"
)

// AuditSink is the fire-and-forget activity log boundary. Record never
// returns an error; implementations swallow and log failures so auditing can
// never roll back the operation that triggered it.
type AuditSink interface {
	Record(ctx context.Context, event domain.AuditEvent)
}
