package feedback

import (
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/eslsoft/tutorpad/internal/entity"
)

// Tutor answers questions for one learner level after a fixed delay.
type Tutor struct {
	dispatcher *Dispatcher
	level      entity.Level
	greeting   string
	delay      time.Duration
	clock      func() time.Time
}

// NewTutor renders the greeting for level. The greeting template sees
// {{.Level}} and {{.Description}}.
func NewTutor(dispatcher *Dispatcher, level entity.Level, greeting string, delay time.Duration) (*Tutor, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("tutor: dispatcher is required")
	}
	tmpl, err := template.New("greeting").Option("missingkey=error").Parse(greeting)
	if err != nil {
		return nil, fmt.Errorf("tutor: parse greeting: %w", err)
	}
	var b strings.Builder
	data := struct{ Level, Description string }{level.Label, level.Description}
	if err := tmpl.Execute(&b, data); err != nil {
		return nil, fmt.Errorf("tutor: render greeting: %w", err)
	}
	return &Tutor{
		dispatcher: dispatcher,
		level:      level,
		greeting:   b.String(),
		delay:      delay,
		clock:      time.Now,
	}, nil
}

func (t *Tutor) Level() entity.Level { return t.level }

func (t *Tutor) Greeting() string { return t.greeting }

// Ask resolves to the assistant reply once the delay elapses, or to ctx's
// error if ctx ends first. A zero delay resolves before Ask returns.
func (t *Tutor) Ask(ctx context.Context, question string) *Future {
	f := newFuture()
	if strings.TrimSpace(question) == "" {
		f.resolve(entity.Message{}, entity.ErrEmptyQuestion)
		return f
	}

	reply := func() {
		f.resolve(entity.Message{
			Role:      entity.RoleAssistant,
			Content:   t.dispatcher.Respond(question, t.level.Label),
			CreatedAt: t.clock(),
		}, nil)
	}

	if t.delay <= 0 {
		reply()
		return f
	}

	go func() {
		timer := time.NewTimer(t.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			f.resolve(entity.Message{}, ctx.Err())
		case <-timer.C:
			reply()
		}
	}()
	return f
}
