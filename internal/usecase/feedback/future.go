package feedback

import (
	"context"
	"sync"

	"github.com/eslsoft/tutorpad/internal/entity"
)

// Future is a reply that becomes available later.
type Future struct {
	once sync.Once
	done chan struct{}
	msg  entity.Message
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(msg entity.Message, err error) {
	f.once.Do(func() {
		f.msg, f.err = msg, err
		close(f.done)
	})
}

// Done is closed once the reply is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the reply is available or ctx ends.
func (f *Future) Wait(ctx context.Context) (entity.Message, error) {
	select {
	case <-f.done:
		return f.msg, f.err
	default:
	}
	select {
	case <-f.done:
		return f.msg, f.err
	case <-ctx.Done():
		return entity.Message{}, ctx.Err()
	}
}
