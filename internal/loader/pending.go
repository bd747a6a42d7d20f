package loader

import (
	"context"
	"sync"
)

// Pending is a one-shot handle on an in-flight load. It resolves exactly
// once; every waiter observes the same snapshot or error.
type Pending struct {
	once     sync.Once
	done     chan struct{}
	snapshot *Snapshot
	err      error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// Resolved returns a handle that is already complete
func Resolved(snapshot *Snapshot) *Pending {
	p := newPending()
	p.resolve(snapshot, nil)
	return p
}

// Failed returns a handle that already carries err
func Failed(err error) *Pending {
	p := newPending()
	p.resolve(nil, err)
	return p
}

// Done is closed once the load has finished
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the load finishes or ctx is done, in which case it
// returns the context's cause
func (p *Pending) Wait(ctx context.Context) (*Snapshot, error) {
	select {
	case <-p.done:
		return p.snapshot, p.err
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	}
}

func (p *Pending) resolve(snapshot *Snapshot, err error) {
	p.once.Do(func() {
		p.snapshot = snapshot
		p.err = err
		close(p.done)
	})
}
