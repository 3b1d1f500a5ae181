package mapping

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/tutorpad/internal/entity"
)

// DiaryEntryRequest is the body of create and update calls.
// Category and difficulty accept either the code or the Korean label.
type DiaryEntryRequest struct {
	Date       string `json:"date"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Notes      string `json:"notes"`
}

// DiaryEntryResponse adds display labels to an entry.
type DiaryEntryResponse struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	Category        string    `json:"category"`
	CategoryLabel   string    `json:"category_label"`
	Difficulty      string    `json:"difficulty"`
	DifficultyLabel string    `json:"difficulty_label"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ListDiaryResponse struct {
	Entries  []DiaryEntryResponse `json:"entries"`
	Total    int64                `json:"total"`
	PageNo   int32                `json:"page_no"`
	PageSize int32                `json:"page_size"`
}

// ToDiaryDraft parses a create request.
func ToDiaryDraft(in DiaryEntryRequest) (*entity.DiaryEntry, error) {
	date, err := entity.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	category, difficulty, err := parseEnums(in)
	if err != nil {
		return nil, err
	}
	return &entity.DiaryEntry{
		Date:       date,
		Category:   category,
		Difficulty: difficulty,
		Notes:      in.Notes,
	}, nil
}

// ToDiaryPatch parses an update request. An empty date keeps the stored one.
func ToDiaryPatch(in DiaryEntryRequest) (entity.DiaryEntryPatch, error) {
	category, difficulty, err := parseEnums(in)
	if err != nil {
		return entity.DiaryEntryPatch{}, err
	}
	patch := entity.DiaryEntryPatch{
		Category:   category,
		Difficulty: difficulty,
		Notes:      in.Notes,
	}
	if strings.TrimSpace(in.Date) != "" {
		date, err := entity.ParseDate(in.Date)
		if err != nil {
			return entity.DiaryEntryPatch{}, err
		}
		patch.Date = &date
	}
	return patch, nil
}

func parseEnums(in DiaryEntryRequest) (entity.Category, entity.Difficulty, error) {
	category, err := entity.ParseCategory(in.Category)
	if err != nil {
		return "", "", err
	}
	difficulty, err := entity.ParseDifficulty(in.Difficulty)
	if err != nil {
		return "", "", err
	}
	return category, difficulty, nil
}

func ToDiaryResponse(e *entity.DiaryEntry) *DiaryEntryResponse {
	if e == nil {
		return nil
	}
	return &DiaryEntryResponse{
		ID:              e.ID,
		Date:            e.Date.String(),
		Category:        string(e.Category),
		CategoryLabel:   e.Category.Label(),
		Difficulty:      string(e.Difficulty),
		DifficultyLabel: e.Difficulty.Label(),
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func ToDiaryResponses(entries []entity.DiaryEntry) []DiaryEntryResponse {
	return lo.Map(entries, func(e entity.DiaryEntry, _ int) DiaryEntryResponse {
		return *ToDiaryResponse(&e)
	})
}

// CalendarResponse is a month grid with the weekday header.
type CalendarResponse struct {
	Year     int                 `json:"year"`
	Month    int                 `json:"month"`
	Weekdays []string            `json:"weekdays"`
	Weeks    [][]CalendarDayCell `json:"weeks"`
}

type CalendarDayCell struct {
	Day      int    `json:"day"`
	Date     string `json:"date,omitempty"`
	EntryID  string `json:"entry_id,omitempty"`
	Category string `json:"category,omitempty"`
	Label    string `json:"label,omitempty"`
}

func ToCalendarResponse(grid *entity.MonthGrid) *CalendarResponse {
	weeks := lo.Map(grid.Weeks, func(week []entity.CalendarDay, _ int) []CalendarDayCell {
		return lo.Map(week, func(day entity.CalendarDay, _ int) CalendarDayCell {
			cell := CalendarDayCell{Day: day.Day}
			if day.Date != nil {
				cell.Date = day.Date.String()
			}
			if day.Entry != nil {
				cell.EntryID = day.Entry.ID
				cell.Category = string(day.Entry.Category)
				cell.Label = day.Entry.Category.Label()
			}
			return cell
		})
	})
	return &CalendarResponse{
		Year:     grid.Year,
		Month:    int(grid.Month),
		Weekdays: entity.WeekdayLabels[:],
		Weeks:    weeks,
	}
}
