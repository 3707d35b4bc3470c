package repos

import "errors"

var (
	// ErrNotFound means the requested record does not exist. "No
	// traceability chain yet" is an expected business state, so callers
	// translate this into an empty result, not a failure.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID means a put collided with an existing traceability ID.
	ErrDuplicateID = errors.New("duplicate traceability id")

	// ErrStorageUnavailable wraps backing-store faults. The repo layer does
	// not retry; retry policy belongs to the caller.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
