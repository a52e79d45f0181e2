package repositories

import "errors"

var (
	// ErrNotFound is returned by lookups that match no document.
	ErrNotFound = errors.New("record not found")
	// ErrUnacknowledged is returned when the store does not confirm a write.
	ErrUnacknowledged = errors.New("write not acknowledged")
)
