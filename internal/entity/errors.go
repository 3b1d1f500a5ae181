package entity

import "errors"

// Domain errors for diary, tutor and writing aggregates.
var (
	ErrDiaryEntryNotFound = errors.New("diary entry not found")
	ErrInvalidDiaryID     = errors.New("invalid diary entry ID")
	ErrDiaryEntryExists   = errors.New("diary entry already exists")
	ErrInvalidDate        = errors.New("invalid calendar date")
	ErrInvalidCategory    = errors.New("invalid diary category")
	ErrInvalidDifficulty  = errors.New("invalid diary difficulty")
	ErrEmptyQuestion      = errors.New("question must not be empty")
	ErrReplyPending       = errors.New("a tutor reply is still pending")
	ErrEmptyEssay         = errors.New("essay text must not be empty")
)
