package ledger

import "errors"

// Sentinel errors surfaced by the ledger stores. Handlers map these onto
// HTTP statuses; nothing below this layer retries or swallows a write
// failure.
var (
	// ErrNotFound means the target row no longer exists, e.g. an entry
	// deleted by another session.
	ErrNotFound = errors.New("not found")

	// ErrDuplicatePhone is returned when a live contact with the same phone
	// already exists for the user, whether caught by the pre-check or by the
	// store's unique constraint.
	ErrDuplicatePhone = errors.New("phone number already in use")

	// ErrInvalidAmount rejects zero, negative, or malformed amounts.
	ErrInvalidAmount = errors.New("amount must be a positive value")

	// ErrTagAssignFailed marks the best-effort tag association step after a
	// contact write succeeded. The contact write is not rolled back; callers
	// surface this as a warning, not a failure.
	ErrTagAssignFailed = errors.New("tag assignment failed")
)

// ValidationError reports bad input caught before any write is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
