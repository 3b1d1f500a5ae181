package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/eslsoft/tutorpad/internal/entity"
)

func TestParseMonthArg(t *testing.T) {
	now := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

	year, month, err := parseMonthArg(nil, now)
	if err != nil || year != 2026 || month != time.March {
		t.Fatalf("expected current month, got %d-%d (%v)", year, month, err)
	}

	year, month, err = parseMonthArg([]string{"2024-01"}, now)
	if err != nil || year != 2024 || month != time.January {
		t.Fatalf("expected 2024-01, got %d-%d (%v)", year, month, err)
	}

	if _, _, err := parseMonthArg([]string{"2024-13"}, now); !errors.Is(err, entity.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestRenderCalendar(t *testing.T) {
	grid, err := entity.NewMonthGrid(2024, time.January)
	if err != nil {
		t.Fatalf("NewMonthGrid returned error: %v", err)
	}
	entry := &entity.DiaryEntry{
		ID:         "1",
		Date:       entity.MustDate(2024, time.January, 15),
		Category:   entity.CategorySpeaking,
		Difficulty: entity.DifficultyMedium,
		Notes:      "발음 교정",
	}
	grid.Each(func(cell *entity.CalendarDay) {
		if *cell.Date == entry.Date {
			cell.Entry = entry
		}
	})

	var out bytes.Buffer
	renderCalendar(&out, grid)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")

	if lines[0] != "2024-01" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if lines[1] != " 일  월  화  수  목  금  토 " {
		t.Fatalf("unexpected header %q", lines[1])
	}
	if lines[2] != "      1   2   3   4   5   6 " {
		t.Fatalf("unexpected first week %q", lines[2])
	}
	if !strings.Contains(lines[4], " 15*") {
		t.Fatalf("expected marked 15th in %q", lines[4])
	}
	if last := lines[len(lines)-1]; last != "2024-01-15 말하기/중 발음 교정" {
		t.Fatalf("unexpected entry line %q", last)
	}
}

func TestDefaultExportFilename(t *testing.T) {
	now := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	if got := defaultExportFilename(false, now); got != "tutorpad-diary-20240115-093000.jsonl" {
		t.Fatalf("unexpected filename %q", got)
	}
	if got := defaultExportFilename(true, now); !strings.HasSuffix(got, ".jsonl.gz") {
		t.Fatalf("expected gz suffix, got %q", got)
	}
}

func TestCLIProgress(t *testing.T) {
	var out bytes.Buffer
	p := newCLIProgress(&out)
	p.StartTable("diary_entries", 3)
	p.Increment("diary_entries", 2)
	p.Increment("diary_entries", 1)
	p.FinishTable("diary_entries")

	want := "exporting diary_entries (3 rows)\n" +
		"progress diary_entries: 2/3\n" +
		"progress diary_entries: 3/3\n" +
		"finished diary_entries: 3/3 rows\n"
	if out.String() != want {
		t.Fatalf("unexpected progress output:\n%s", out.String())
	}
}

func TestProgressStep(t *testing.T) {
	cases := map[int]int{0: 1000, 10: 1, 100: 5, 100000: 1000}
	for total, want := range cases {
		if got := progressStep(total); got != want {
			t.Fatalf("progressStep(%d) = %d, want %d", total, got, want)
		}
	}
}
