package domain

import "errors"

var (
	// ErrInvalidField indicates an empty, over-long, or unparseable input field.
	ErrInvalidField = errors.New("invalid field")

	// ErrDurationNonPositive indicates a computed duration of zero or less,
	// after any cross-midnight rollover.
	ErrDurationNonPositive = errors.New("duration must be positive")

	// ErrNoteTooLong indicates note text over the allowed length after trimming.
	ErrNoteTooLong = errors.New("note too long")

	// ErrNotFound indicates an edit or note target that does not exist.
	ErrNotFound = errors.New("not found")
)
