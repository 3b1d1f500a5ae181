package entity

import (
	"fmt"
	"time"
)

// WeekdayLabels are the Sunday-first column headers of the calendar.
var WeekdayLabels = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// CalendarDay is one cell of a month grid. Blank padding cells have Day 0.
type CalendarDay struct {
	Day   int         `json:"day"`
	Date  *Date       `json:"date,omitempty"`
	Entry *DiaryEntry `json:"entry,omitempty"`
}

// MonthGrid lays out a month as Sunday-first weeks of seven cells.
type MonthGrid struct {
	Year  int             `json:"year"`
	Month time.Month      `json:"month"`
	Weeks [][]CalendarDay `json:"weeks"`
}

// NewMonthGrid builds the empty grid for year/month.
func NewMonthGrid(year int, month time.Month) (*MonthGrid, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidDate, int(month))
	}
	if year < MinYear || year > MaxYear {
		return nil, fmt.Errorf("%w: year %d", ErrInvalidDate, year)
	}

	first := MustDate(year, month, 1)
	days := first.Time().AddDate(0, 1, -1).Day()
	lead := int(first.Weekday())

	cells := make([]CalendarDay, lead, lead+days+6)
	for d := 1; d <= days; d++ {
		date := Date{Year: year, Month: month, Day: d}
		cells = append(cells, CalendarDay{Day: d, Date: &date})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, CalendarDay{})
	}

	grid := &MonthGrid{Year: year, Month: month}
	for i := 0; i < len(cells); i += 7 {
		grid.Weeks = append(grid.Weeks, cells[i:i+7])
	}
	return grid, nil
}

// Each calls fn for every non-blank cell.
func (g *MonthGrid) Each(fn func(cell *CalendarDay)) {
	for w := range g.Weeks {
		for d := range g.Weeks[w] {
			if g.Weeks[w][d].Day != 0 {
				fn(&g.Weeks[w][d])
			}
		}
	}
}
