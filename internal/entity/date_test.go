package entity

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2024-01-15", want: Date{Year: 2024, Month: time.January, Day: 15}},
		{in: " 2024-02-29 ", want: Date{Year: 2024, Month: time.February, Day: 29}},
		{in: "2023-02-29", wantErr: true},
		{in: "2024-13-01", wantErr: true},
		{in: "20240115", wantErr: true},
		{in: "0000-01-01", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, c := range cases {
		got, err := ParseDate(c.in)
		if c.wantErr {
			if !errors.Is(err, ErrInvalidDate) {
				t.Fatalf("ParseDate(%q) expected ErrInvalidDate, got %v", c.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDate(%q) returned error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseDate(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestNewDateRejectsOverflow(t *testing.T) {
	if _, err := NewDate(2024, time.April, 31); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for April 31, got %v", err)
	}
}

func TestNewDateRejectsYearOutOfRange(t *testing.T) {
	for _, year := range []int{0, -1, MaxYear + 1} {
		if _, err := NewDate(year, time.January, 1); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("year %d: expected ErrInvalidDate, got %v", year, err)
		}
	}
	if _, err := NewDate(MaxYear, time.December, 31); err != nil {
		t.Fatalf("year %d: unexpected error %v", MaxYear, err)
	}
}

func TestDateJSON(t *testing.T) {
	d := MustDate(2024, time.January, 5)
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2024-01-05"` {
		t.Fatalf("unexpected JSON %s", raw)
	}

	var back Date
	if err := json.Unmarshal([]byte(`"2024-03-31"`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.String() != "2024-03-31" {
		t.Fatalf("unexpected date %s", back)
	}
	if err := json.Unmarshal([]byte(`"2024-03-32"`), &back); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan([]byte("2024-01-16")); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if d != MustDate(2024, time.January, 16) {
		t.Fatalf("unexpected date %s", d)
	}
	if err := d.Scan(42); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for int source, got %v", err)
	}
}
