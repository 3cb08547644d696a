package domain

import (
	"time"
)

// Chapter represents a BNI chapter whose activity is tracked.
type Chapter struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name" validate:"required"`
	Location   string    `json:"location,omitempty" db:"location"`
	MeetingDay string    `json:"meeting_day,omitempty" db:"meeting_day"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Member represents a chapter member. Identity within a chapter is the
// normalized name: two spellings that normalize to the same string are
// the same member.
type Member struct {
	ID             int64  `json:"id" db:"id"`
	ChapterID      int64  `json:"chapter_id" db:"chapter_id" validate:"required"`
	FirstName      string `json:"first_name" db:"first_name" validate:"required"`
	LastName       string `json:"last_name" db:"last_name"`
	NormalizedName string `json:"normalized_name" db:"normalized_name"`
	IsActive       bool   `json:"is_active" db:"is_active"`
}

// FullName returns the member's display name.
func (m Member) FullName() string {
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}
