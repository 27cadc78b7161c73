package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry represents one customs formal-entry submission (a document set).
type Entry struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	Status      EntryStatus `db:"status" json:"status"`
	CreatedBy   *uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	SubmittedAt time.Time   `db:"submitted_at" json:"submitted_at"`
	ValidatedAt *time.Time  `db:"validated_at" json:"validated_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// Document is one uploaded file belonging to an entry. Immutable after
// creation; corrections are new documents or field overrides.
type Document struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	EntryID     uuid.UUID    `db:"entry_id" json:"entry_id"`
	Type        DocumentType `db:"document_type" json:"document_type"`
	StoragePath string       `db:"storage_path" json:"storage_path"`
	ContentType string       `db:"content_type" json:"content_type"`
	FileName    string       `db:"file_name" json:"file_name"`
	FileSize    int64        `db:"file_size" json:"file_size"`
	UploadedBy  *uuid.UUID   `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
}

// ExtractedField is the single authoritative observation for one
// (document, field name) pair. Reconciliation upserts on that pair.
type ExtractedField struct {
	ID              uuid.UUID   `db:"id" json:"id"`
	DocumentID      uuid.UUID   `db:"document_id" json:"document_id"`
	FieldName       string      `db:"field_name" json:"field_name"`
	RawValue        string      `db:"raw_value" json:"raw_value"`
	NormalizedValue string      `db:"normalized_value" json:"normalized_value"`
	Confidence      float64     `db:"confidence" json:"confidence"`
	Source          FieldSource `db:"source" json:"source"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}

// ValidationRule is a configured rule definition. Severity belongs to the
// definition, not the evaluation.
type ValidationRule struct {
	ID               uuid.UUID `db:"id" json:"id"`
	RuleKey          string    `db:"rule_key" json:"rule_key"`
	RuleType         RuleType  `db:"rule_type" json:"rule_type"`
	ExpectedBehavior string    `db:"expected_behavior" json:"expected_behavior"`
	Severity         Severity  `db:"severity" json:"severity"`
	IsActive         bool      `db:"is_active" json:"is_active"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// ValidationResult is one evaluation outcome for an entry against one rule.
// A fresh evaluation run replaces the entry's prior result set.
type ValidationResult struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	EntryID     uuid.UUID    `db:"entry_id" json:"entry_id"`
	RuleID      uuid.UUID    `db:"rule_id" json:"rule_id"`
	Status      ResultStatus `db:"status" json:"status"`
	Severity    Severity     `db:"severity" json:"severity"`
	Remarks     string       `db:"remarks" json:"remarks"`
	EvaluatedAt time.Time    `db:"evaluated_at" json:"evaluated_at"`
}

// TaxComputation is the confirmed, immutable computation for an entry. Its
// existence is what makes an entry display as completed.
type TaxComputation struct {
	ID                  uuid.UUID       `db:"id" json:"id"`
	EntryID             uuid.UUID       `db:"entry_id" json:"entry_id"`
	LineNo              int             `db:"line_no" json:"line_no"`
	Description         string          `db:"description" json:"description"`
	HSCode              string          `db:"hs_code" json:"hs_code"`
	Currency            string          `db:"currency" json:"currency"`
	DeclaredValue       decimal.Decimal `db:"declared_value" json:"declared_value"`
	ExchangeRate        decimal.Decimal `db:"exchange_rate" json:"exchange_rate"`
	DeclaredValueLocal  decimal.Decimal `db:"declared_value_local" json:"declared_value_local"`
	DutyRate            decimal.Decimal `db:"duty_rate" json:"duty_rate"`
	DutyAmount          decimal.Decimal `db:"duty_amount" json:"duty_amount"`
	VATRate             decimal.Decimal `db:"vat_rate" json:"vat_rate"`
	VATAmount           decimal.Decimal `db:"vat_amount" json:"vat_amount"`
	TotalTax            decimal.Decimal `db:"total_tax" json:"total_tax"`
	RateSource          string          `db:"rate_source" json:"rate_source"`
	ConfirmedBy         *uuid.UUID      `db:"confirmed_by" json:"confirmed_by"`
	CreatedAt           time.Time       `db:"created_at" json:"created_at"`
}

// Actor identifies who is performing an operation, as resolved by the
// external auth layer.
type Actor struct {
	ID   *uuid.UUID
	Role ActorRole
}

// IsOfficer reports whether the actor may trigger entry status transitions.
func (a Actor) IsOfficer() bool {
	return a.Role == RoleOfficer || a.Role == RoleAdmin
}

// AuditEvent is a fire-and-forget activity record. Recording failures must
// never fail the triggering operation.
type AuditEvent struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Action        string     `db:"action" json:"action"`
	ActorRole     ActorRole  `db:"actor_role" json:"actor_role"`
	ActorID       *uuid.UUID `db:"actor_id" json:"actor_id"`
	ReferenceType string     `db:"reference_type" json:"reference_type"`
	ReferenceID   string     `db:"reference_id" json:"reference_id"`
	Remarks       string     `db:"remarks" json:"remarks"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}
