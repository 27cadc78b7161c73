package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrEntryNotFound       = errors.New("entry not found")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInsufficientRole    = errors.New("insufficient role for this action")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")

	// ErrExtractionUnavailable means no extraction strategy could execute at
	// all, as opposed to strategies running and finding nothing.
	ErrExtractionUnavailable = errors.New("could not process document")

	// ErrUnknownField is returned when a field name outside the document
	// type's whitelist is written or overridden.
	ErrUnknownField = errors.New("field name not in document type whitelist")

	// ErrManualOverride is returned when an automated run would touch a field
	// under manual override and the run was not confirmed to do so.
	ErrManualOverride = errors.New("field is under manual override")

	// ErrValidationBlocked rejects PROCEED while a critical failure exists.
	ErrValidationBlocked = errors.New("entry has critical validation failures")

	// ErrInvalidTransition rejects an action the entry's current status or the
	// actor's role does not permit.
	ErrInvalidTransition = errors.New("action not permitted for current entry status")

	// ErrRemarksRequired rejects SEND_BACK/REJECT without remarks.
	ErrRemarksRequired = errors.New("remarks are required for this action")

	// ErrStaleWrite means a concurrent transition or upsert won the race; the
	// caller should reload and retry.
	ErrStaleWrite = errors.New("concurrent update detected, please retry")

	// ErrComputationExists guards the insert-once semantics of confirmed tax
	// computations.
	ErrComputationExists = errors.New("tax computation already confirmed for this entry")
)
