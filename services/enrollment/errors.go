package enrollment

import "errors"

// Sentinel errors returned by the service. Controllers match on these to
// pick a response status; anything else is a store failure and surfaces
// as a 500.
var (
	ErrInvalidReference   = errors.New("user or course not found")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrNotEnrolled        = errors.New("not enrolled in this course")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrUnknownCorrelation = errors.New("no purchase for correlation id")
)
