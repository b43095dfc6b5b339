package domain

import "errors"

var (
	// ErrInvalidSegment is returned for a segment with a bad interval or duration
	ErrInvalidSegment = errors.New("domain: invalid segment")

	// ErrInvalidRecurrence is returned for bad recurrence parameters
	ErrInvalidRecurrence = errors.New("domain: invalid recurrence")
)
