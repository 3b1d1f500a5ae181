package writing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eslsoft/tutorpad/internal/entity"
)

func newTimer(t *testing.T, seconds int) *Timer {
	t.Helper()
	timer, err := NewTimer(seconds)
	if err != nil {
		t.Fatalf("NewTimer returned error: %v", err)
	}
	return timer
}

func TestTimerCountsDownToExpired(t *testing.T) {
	timer := newTimer(t, 180)
	if timer.State() != TimerIdle || timer.Remaining() != 180 {
		t.Fatalf("unexpected initial state %s/%d", timer.State(), timer.Remaining())
	}

	timer.Tick()
	if timer.Remaining() != 180 {
		t.Fatalf("idle timer must ignore ticks, remaining %d", timer.Remaining())
	}

	timer.Start()
	for i := 0; i < 179; i++ {
		timer.Tick()
	}
	if timer.State() != TimerRunning || timer.Remaining() != 1 {
		t.Fatalf("expected running/1 after 179 ticks, got %s/%d", timer.State(), timer.Remaining())
	}
	timer.Tick()
	if timer.State() != TimerExpired || timer.Remaining() != 0 {
		t.Fatalf("expected expired/0 after 180 ticks, got %s/%d", timer.State(), timer.Remaining())
	}

	timer.Tick()
	if timer.Remaining() != 0 {
		t.Fatalf("expired timer must not go negative")
	}

	timer.Reset()
	if timer.State() != TimerIdle || timer.Remaining() != 180 {
		t.Fatalf("expected idle/180 after reset, got %s/%d", timer.State(), timer.Remaining())
	}
}

func TestTimerStartRestartsCountdown(t *testing.T) {
	timer := newTimer(t, 3)
	timer.Start()
	timer.Tick()
	timer.Start()
	if timer.Remaining() != 3 || timer.State() != TimerRunning {
		t.Fatalf("expected restart to full duration, got %s/%d", timer.State(), timer.Remaining())
	}
}

func TestTimerRun(t *testing.T) {
	timer := newTimer(t, 2)
	timer.Start()

	ticks := make(chan time.Time)
	done := make(chan error, 1)
	go func() { done <- timer.Run(context.Background(), ticks) }()

	ticks <- time.Now()
	ticks <- time.Now()
	close(ticks)

	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if timer.State() != TimerExpired {
		t.Fatalf("expected expired, got %s", timer.State())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := timer.Run(ctx, make(chan time.Time)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewTimerRejectsNonPositive(t *testing.T) {
	if _, err := NewTimer(0); err == nil {
		t.Fatalf("expected error")
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := map[int]string{180: "3:00", 65: "1:05", 9: "0:09", 0: "0:00", -3: "0:00"}
	for in, want := range cases {
		if got := FormatSeconds(in); got != want {
			t.Fatalf("FormatSeconds(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestWordCount(t *testing.T) {
	cases := map[string]int{"": 0, "   ": 0, "one": 1, " Technology  has\nmade\tlife ": 4}
	for in, want := range cases {
		if got := WordCount(in); got != want {
			t.Fatalf("WordCount(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestSessionLifecycle(t *testing.T) {
	review := entity.EssayFeedback{Grammar: "g", Vocabulary: "v", Structure: "s", Overall: "o"}
	session := NewSession("topic", review, newTimer(t, 180))

	if _, err := session.Submit(); !errors.Is(err, entity.ErrEmptyEssay) {
		t.Fatalf("expected ErrEmptyEssay, got %v", err)
	}

	snap := session.Start()
	if snap.State != TimerRunning || snap.Clock != "3:00" || snap.Text != "" {
		t.Fatalf("unexpected snapshot after start %+v", snap)
	}

	snap = session.SetText("Technology makes life easier")
	if snap.WordCount != 4 {
		t.Fatalf("expected 4 words, got %d", snap.WordCount)
	}

	session.Timer().Tick()
	if session.FormatRemaining() != "2:59" {
		t.Fatalf("unexpected clock %s", session.FormatRemaining())
	}

	got, err := session.Submit()
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if got != review || session.Snapshot().Feedback == nil {
		t.Fatalf("expected canned review to be recorded")
	}

	snap = session.Start()
	if snap.Feedback != nil || snap.Text != "" || snap.Remaining != 180 {
		t.Fatalf("start must clear the previous attempt, got %+v", snap)
	}

	session.SetText("   ")
	if _, err := session.Submit(); !errors.Is(err, entity.ErrEmptyEssay) {
		t.Fatalf("expected ErrEmptyEssay for blank text, got %v", err)
	}

	snap = session.Reset()
	if snap.State != TimerIdle || snap.Remaining != 180 || snap.Feedback != nil || snap.WordCount != 0 {
		t.Fatalf("unexpected snapshot after reset %+v", snap)
	}
}
