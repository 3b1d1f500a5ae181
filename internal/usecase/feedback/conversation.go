package feedback

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/eslsoft/tutorpad/internal/entity"
)

// Conversation is the append-only transcript of one chat session.
// At most one reply is outstanding at a time.
type Conversation struct {
	mu       sync.Mutex
	tutor    *Tutor
	messages []entity.Message
	pending  *Future
	clock    func() time.Time
}

// NewConversation starts a transcript with the tutor's greeting.
func NewConversation(tutor *Tutor) *Conversation {
	c := &Conversation{tutor: tutor, clock: time.Now}
	c.messages = append(c.messages, entity.Message{
		ID:        1,
		Role:      entity.RoleAssistant,
		Content:   tutor.Greeting(),
		CreatedAt: c.clock(),
	})
	return c
}

func (c *Conversation) Level() entity.Level { return c.tutor.Level() }

// Messages returns a copy of the transcript in order.
func (c *Conversation) Messages() []entity.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.messages)
}

// Pending reports whether a reply is still outstanding.
func (c *Conversation) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Send appends the user's message and asks the tutor. The returned future
// resolves after the reply has been appended to the transcript; cancelling
// ctx only abandons the caller's wait.
func (c *Conversation) Send(ctx context.Context, text string) (entity.Message, *Future, error) {
	if strings.TrimSpace(text) == "" {
		return entity.Message{}, nil, entity.ErrEmptyQuestion
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		return entity.Message{}, nil, entity.ErrReplyPending
	}

	userMsg := entity.Message{
		ID:        len(c.messages) + 1,
		Role:      entity.RoleUser,
		Content:   text,
		CreatedAt: c.clock(),
	}
	c.messages = append(c.messages, userMsg)

	out := newFuture()
	c.pending = out
	// The reply belongs to the transcript, so it outlives the caller's ctx.
	inner := c.tutor.Ask(context.WithoutCancel(ctx), text)

	go func() {
		<-inner.Done()
		msg, err := inner.Wait(context.Background())

		c.mu.Lock()
		c.pending = nil
		if err == nil {
			msg.ID = len(c.messages) + 1
			c.messages = append(c.messages, msg)
		}
		c.mu.Unlock()

		out.resolve(msg, err)
	}()

	return userMsg, out, nil
}
