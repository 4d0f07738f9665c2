package complaint

import "errors"

// Error taxonomy of the lifecycle service. Handlers translate these to
// HTTP status codes; anything unrecognized is logged and becomes a
// generic 500.
var (
	// ErrValidation marks missing or invalid submission fields.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a missing complaint.
	ErrNotFound = errors.New("complaint not found")
	// ErrNoAttachment marks a complaint without an uploaded file.
	ErrNoAttachment = errors.New("no file attached to this complaint")
	// ErrFileMissing marks attachment metadata whose file is gone from disk.
	ErrFileMissing = errors.New("file not found on server")
	// ErrForbidden marks a role or ownership mismatch.
	ErrForbidden = errors.New("access denied")
	// ErrConflict marks a duplicate complaint number that survived the
	// regeneration retry.
	ErrConflict = errors.New("complaint number conflict")
)
