// Package writing implements the timed essay practice.
package writing

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// TimerState is the countdown lifecycle.
type TimerState string

const (
	TimerIdle    TimerState = "idle"
	TimerRunning TimerState = "running"
	TimerExpired TimerState = "expired"
)

// Timer counts down whole seconds. Ticks only have an effect while running;
// reaching zero moves it to expired.
type Timer struct {
	mu        sync.Mutex
	duration  int
	remaining int
	state     TimerState
}

// NewTimer returns an idle timer of the given length in seconds.
func NewTimer(seconds int) (*Timer, error) {
	if seconds <= 0 {
		return nil, fmt.Errorf("timer duration must be positive, got %d", seconds)
	}
	return &Timer{duration: seconds, remaining: seconds, state: TimerIdle}, nil
}

// Start restarts the countdown from the full duration.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.remaining = t.duration
	t.state = TimerRunning
}

// Tick consumes one second.
func (t *Timer) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != TimerRunning {
		return
	}
	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.state = TimerExpired
	}
}

// Reset returns to idle with the full duration.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.remaining = t.duration
	t.state = TimerIdle
}

func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

func (t *Timer) State() TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Timer) Duration() int { return t.duration }

// Run calls Tick for every value received on ticks until ctx ends or ticks is closed.
func (t *Timer) Run(ctx context.Context, ticks <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			t.Tick()
		}
	}
}

// FormatSeconds renders seconds as m:ss.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
