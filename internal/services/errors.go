package services

import "errors"

// Service-level sentinel errors. Storage, parsing, and validation
// failures from lower layers pass through as *errors.AppError; these
// cover conditions that only exist at the service boundary.
var (
	// Upload errors
	ErrEmptyUpload = errors.New("uploaded file is empty")

	// Comparison errors
	ErrUnknownComparisonKind = errors.New("unknown comparison kind")
)
