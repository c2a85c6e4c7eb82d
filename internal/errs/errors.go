package errs

import (
	"errors"
	"fmt"
)

// Common sentinel errors for cross-layer signaling.
var (
	// ErrNotFound means the target document is missing or not owned by the user.
	ErrNotFound = errors.New("not_found")
	// ErrInvalid means malformed or invariant-violating input.
	ErrInvalid = errors.New("invalid")
	// ErrConfig means static data (the chart of accounts or preset catalog) is
	// inconsistent. This is a programming bug, never a user error.
	ErrConfig = errors.New("configuration")
)

// Specific validation failures. All wrap ErrInvalid so callers can match the
// family with errors.Is and the HTTP layer can map each to an error code.
var (
	ErrNoLines        = fmt.Errorf("%w: entry has no lines", ErrInvalid)
	ErrInvalidAmount  = fmt.Errorf("%w: amount must be positive", ErrInvalid)
	ErrOneSidePerLine = fmt.Errorf("%w: line must carry exactly one of debit or credit", ErrInvalid)
	ErrUnbalanced     = fmt.Errorf("%w: debits do not equal credits", ErrInvalid)
	ErrUnknownAccount = fmt.Errorf("%w: unknown account", ErrInvalid)
	ErrBadDate        = fmt.Errorf("%w: date is not a valid instant", ErrInvalid)
)
