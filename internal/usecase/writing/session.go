package writing

import (
	"strings"
	"sync"

	"github.com/eslsoft/tutorpad/internal/entity"
)

// Snapshot is the observable state of a writing session.
type Snapshot struct {
	Topic     string                `json:"topic"`
	Text      string                `json:"text"`
	WordCount int                   `json:"word_count"`
	State     TimerState            `json:"state"`
	Remaining int                   `json:"remaining"`
	Clock     string                `json:"clock"`
	Feedback  *entity.EssayFeedback `json:"feedback,omitempty"`
}

// Session is one essay attempt against a countdown.
type Session struct {
	mu       sync.Mutex
	topic    string
	review   entity.EssayFeedback
	timer    *Timer
	text     string
	feedback *entity.EssayFeedback
}

// NewSession binds a topic and the canned review to a timer.
func NewSession(topic string, review entity.EssayFeedback, timer *Timer) *Session {
	return &Session{topic: topic, review: review, timer: timer}
}

func (s *Session) Timer() *Timer { return s.timer }

// Start clears the essay and feedback and starts the countdown.
func (s *Session) Start() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = ""
	s.feedback = nil
	s.timer.Start()
	return s.snapshotLocked()
}

// SetText replaces the essay text.
func (s *Session) SetText(text string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	return s.snapshotLocked()
}

// Submit returns the review for a non-blank essay.
func (s *Session) Submit() (entity.EssayFeedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(s.text) == "" {
		return entity.EssayFeedback{}, entity.ErrEmptyEssay
	}
	review := s.review
	s.feedback = &review
	return review, nil
}

// Reset clears everything and stops the countdown.
func (s *Session) Reset() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = ""
	s.feedback = nil
	s.timer.Reset()
	return s.snapshotLocked()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// FormatRemaining renders the countdown as m:ss.
func (s *Session) FormatRemaining() string {
	return FormatSeconds(s.timer.Remaining())
}

func (s *Session) snapshotLocked() Snapshot {
	remaining := s.timer.Remaining()
	snap := Snapshot{
		Topic:     s.topic,
		Text:      s.text,
		WordCount: WordCount(s.text),
		State:     s.timer.State(),
		Remaining: remaining,
		Clock:     FormatSeconds(remaining),
	}
	if s.feedback != nil {
		fb := *s.feedback
		snap.Feedback = &fb
	}
	return snap
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
