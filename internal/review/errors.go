package review

import "errors"

var (
	// ErrDisabled is returned when no LLM provider is configured.
	ErrDisabled = errors.New("mentor review is disabled: no LLM provider configured")

	// ErrNothingToReview is returned for a nil request, which is what
	// FromSnapshot yields for a blank buffer.
	ErrNothingToReview = errors.New("nothing to review")
)
