/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/tutorpad/internal/app"
	"github.com/eslsoft/tutorpad/internal/entity"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar [YYYY-MM]",
	Short: "Print the diary month grid with the seeded entries",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, month, err := parseMonthArg(args, time.Now())
		if err != nil {
			return err
		}

		container, cleanup, err := app.Initialize()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer cleanup()

		grid, err := container.Diary.MonthGrid(cmd.Context(), year, month)
		if err != nil {
			return fmt.Errorf("build month grid: %w", err)
		}
		renderCalendar(cmd.OutOrStdout(), grid)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}

// parseMonthArg reads an optional YYYY-MM argument, defaulting to now's month.
func parseMonthArg(args []string, now time.Time) (int, time.Month, error) {
	if len(args) == 0 {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", strings.TrimSpace(args[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: expected YYYY-MM, got %q", entity.ErrInvalidDate, args[0])
	}
	return t.Year(), t.Month(), nil
}

// renderCalendar prints the grid with a * beside days that have an entry,
// followed by one line per entry.
func renderCalendar(w io.Writer, grid *entity.MonthGrid) {
	fmt.Fprintf(w, "%d-%02d\n", grid.Year, int(grid.Month))
	for _, label := range entity.WeekdayLabels {
		fmt.Fprintf(w, " %s ", label)
	}
	fmt.Fprintln(w)

	var entries []*entity.DiaryEntry
	for _, week := range grid.Weeks {
		for _, cell := range week {
			switch {
			case cell.Day == 0:
				fmt.Fprint(w, "    ")
			case cell.Entry != nil:
				fmt.Fprintf(w, "%3d*", cell.Day)
				entries = append(entries, cell.Entry)
			default:
				fmt.Fprintf(w, "%3d ", cell.Day)
			}
		}
		fmt.Fprintln(w)
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%s %s/%s %s\n", e.Date, e.Category.Label(), e.Difficulty.Label(), e.Notes)
	}
}
