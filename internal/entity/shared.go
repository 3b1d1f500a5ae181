package entity

import "strings"

// Category is the practice area a diary entry belongs to.
type Category string

const (
	CategoryUnspecified Category = ""
	CategorySpeaking    Category = "speaking"
	CategoryWriting     Category = "writing"
	CategoryReading     Category = "reading"
)

// Categories lists every valid category in display order.
var Categories = []Category{CategorySpeaking, CategoryWriting, CategoryReading}

// Label returns the Korean label shown in the diary list.
func (c Category) Label() string {
	switch c {
	case CategorySpeaking:
		return "말하기"
	case CategoryWriting:
		return "쓰기"
	case CategoryReading:
		return "읽기"
	default:
		return string(c)
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySpeaking, CategoryWriting, CategoryReading:
		return true
	default:
		return false
	}
}

// ParseCategory converts an arbitrary string into a Category.
// Both the English code and the Korean label are accepted.
func ParseCategory(raw string) (Category, error) {
	switch normalizeToken(raw) {
	case "speaking", "말하기":
		return CategorySpeaking, nil
	case "writing", "쓰기":
		return CategoryWriting, nil
	case "reading", "읽기":
		return CategoryReading, nil
	default:
		return CategoryUnspecified, ErrInvalidCategory
	}
}

// Difficulty is the self-rated difficulty of a practice session.
type Difficulty string

const (
	DifficultyUnspecified Difficulty = ""
	DifficultyLow         Difficulty = "low"
	DifficultyMedium      Difficulty = "medium"
	DifficultyHigh        Difficulty = "high"
)

// Difficulties lists every valid difficulty from easiest to hardest.
var Difficulties = []Difficulty{DifficultyLow, DifficultyMedium, DifficultyHigh}

// Label returns the 하/중/상 label used by the diary form.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyLow:
		return "하"
	case DifficultyMedium:
		return "중"
	case DifficultyHigh:
		return "상"
	default:
		return string(d)
	}
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyLow, DifficultyMedium, DifficultyHigh:
		return true
	default:
		return false
	}
}

// ParseDifficulty accepts low/medium/high as well as 하/중/상.
func ParseDifficulty(raw string) (Difficulty, error) {
	switch normalizeToken(raw) {
	case "low", "하":
		return DifficultyLow, nil
	case "medium", "중":
		return DifficultyMedium, nil
	case "high", "상":
		return DifficultyHigh, nil
	default:
		return DifficultyUnspecified, ErrInvalidDifficulty
	}
}

func normalizeToken(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
