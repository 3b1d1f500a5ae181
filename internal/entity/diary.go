package entity

import (
	"strings"
	"time"
)

// DiaryEntry is one dated record of a learning session.
type DiaryEntry struct {
	ID         string     `json:"id"`
	Date       Date       `json:"date"`
	Category   Category   `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
	Notes      string     `json:"notes"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// DiaryEntryPatch carries the replaceable fields of an entry.
// Date is only applied when non-nil.
type DiaryEntryPatch struct {
	Category   Category
	Difficulty Difficulty
	Notes      string
	Date       *Date
}

// Validate checks the enum and date invariants.
func (e *DiaryEntry) Validate() error {
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if !e.Difficulty.Valid() {
		return ErrInvalidDifficulty
	}
	return nil
}

// Apply replaces the mutable fields of e with p.
func (e *DiaryEntry) Apply(p DiaryEntryPatch) {
	e.Category = p.Category
	e.Difficulty = p.Difficulty
	e.Notes = p.Notes
	if p.Date != nil {
		e.Date = *p.Date
	}
}

// Normalize ensures defaults before the entry is stored.
func (e *DiaryEntry) Normalize(now time.Time) {
	e.ID = strings.TrimSpace(e.ID)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
}
