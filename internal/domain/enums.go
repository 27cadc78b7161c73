package domain

// DocumentType identifies one of the customs document kinds an entry may hold.
type DocumentType string

const (
	DocTypeGD          DocumentType = "GD"
	DocTypeInvoice     DocumentType = "INVOICE"
	DocTypePackingList DocumentType = "PACKING_LIST"
	DocTypeAWB         DocumentType = "AWB"
)

// DocumentTypes lists all valid document types in display order.
var DocumentTypes = []DocumentType{DocTypeGD, DocTypeInvoice, DocTypePackingList, DocTypeAWB}

// IsValidDocumentType reports whether t is a known document type.
func IsValidDocumentType(t DocumentType) bool {
	switch t {
	case DocTypeGD, DocTypeInvoice, DocTypePackingList, DocTypeAWB:
		return true
	}
	return false
}

// EntryStatus is the stored lifecycle status of an entry. "Completed" is not a
// stored status; it is derived from the existence of a tax computation.
type EntryStatus string

const (
	EntryStatusPending   EntryStatus = "PENDING"
	EntryStatusForReview EntryStatus = "FOR_REVIEW"
	EntryStatusValidated EntryStatus = "VALIDATED"
	EntryStatusError     EntryStatus = "ERROR"
)

// OfficerAction is one of the three officer-triggered entry transitions.
type OfficerAction string

const (
	ActionSendBack OfficerAction = "SEND_BACK"
	ActionReject   OfficerAction = "REJECT"
	ActionProceed  OfficerAction = "PROCEED"
)

// StatusForAction maps an officer action to the status it produces.
var StatusForAction = map[OfficerAction]EntryStatus{
	ActionSendBack: EntryStatusForReview,
	ActionReject:   EntryStatusError,
	ActionProceed:  EntryStatusValidated,
}

// ActorRole identifies who is acting at the API boundary. Authentication is
// external; the role arrives already resolved by the auth layer.
type ActorRole string

const (
	RoleBroker  ActorRole = "BROKER"
	RoleOfficer ActorRole = "CUSTOMS_OFFICER"
	RoleAdmin   ActorRole = "ADMIN"
)

// FieldSource records which extraction strategy produced a field value.
type FieldSource string

const (
	SourceVision    FieldSource = "vision"
	SourcePattern   FieldSource = "text_pattern"
	SourceProximity FieldSource = "text_proximity"
	SourceSynthetic FieldSource = "synthetic"
	SourceManual    FieldSource = "manual"
)

// IsAutomated reports whether the source is an extraction strategy rather
// than a broker edit.
func (s FieldSource) IsAutomated() bool { return s != SourceManual }

// ManualConfidence is the sentinel confidence stored for broker overrides.
// It sits above every automated strategy so confidence precedence alone
// keeps overrides from being displaced.
const ManualConfidence = 0.99

// RuleType is the closed taxonomy of validation rule categories.
type RuleType string

const (
	RuleRequired       RuleType = "REQUIRED"
	RuleClassification RuleType = "CLASSIFICATION"
	RuleValuation      RuleType = "VALUATION"
	RuleLogistics      RuleType = "LOGISTICS"
)

// Severity grades a validation rule. Only critical failures block PROCEED.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// ResultStatus is the outcome of one rule evaluation.
type ResultStatus string

const (
	ResultPass ResultStatus = "pass"
	ResultFail ResultStatus = "fail"
)

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}
