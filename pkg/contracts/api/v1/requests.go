// Package api contains API contract definitions for the BNI chapter
// activity tracker. Version v1 represents the current stable API version.
package api

// Comparison API Requests

// ComparisonRequest asks for a diff of one matrix kind between two
// stored snapshots of the same chapter. Periods use YYYY-MM form.
type ComparisonRequest struct {
	Kind           string `json:"kind" validate:"required,oneof=referral one_to_one combination"`
	ChapterID      int64  `json:"chapter_id" validate:"required,min=1"`
	CurrentPeriod  string `json:"current_period" validate:"required,period"`
	PreviousPeriod string `json:"previous_period" validate:"required,period"`
}

// FullComparisonRequest asks for the combined three-matrix comparison
// with cross-metric insights between two periods of one chapter.
type FullComparisonRequest struct {
	ChapterID      int64  `json:"chapter_id" validate:"required,min=1"`
	CurrentPeriod  string `json:"current_period" validate:"required,period"`
	PreviousPeriod string `json:"previous_period" validate:"required,period"`
}

