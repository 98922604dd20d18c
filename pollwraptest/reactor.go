// Package pollwraptest provides a scripted, in-memory pollwrap.Reactor, for
// testing code built on pollwrap without real descriptors.
package pollwraptest

import (
	"errors"
	"slices"

	"github.com/eapache/queue"
	pollwrap "github.com/joeycumines/go-pollwrap"
)

// ErrNoBatches is returned by Reactor.Wait once every scripted batch has been
// consumed.
var ErrNoBatches = errors.New("pollwraptest: no batches left")

// Registration records one accepted Reactor.Register call.
type Registration struct {
	Source   pollwrap.Source
	Token    pollwrap.Token
	Interest pollwrap.Interest
}

// batch is one scripted Wait result.
type batch struct {
	err    error
	events []pollwrap.Event
}

// Reactor implements pollwrap.Reactor by replaying scripted batches.
//
// Like the platform reactors it is not safe for concurrent use; script it
// before Run, or from within callbacks.
type Reactor struct {
	batches       *queue.Queue // of batch
	rejections    *queue.Queue // of error, consumed by Register
	closeErr      error
	pending       []pollwrap.Event // remainder of a batch larger than the buffer
	registrations []Registration
	waits         int
	closed        bool
}

// NewReactor returns an empty Reactor. Wait fails with ErrNoBatches until
// batches are pushed.
func NewReactor() *Reactor {
	return &Reactor{
		batches:    queue.New(),
		rejections: queue.New(),
	}
}

// Func adapts r for pollwrap.WithReactorFunc.
func (r *Reactor) Func() func() (pollwrap.Reactor, error) {
	return func() (pollwrap.Reactor, error) { return r, nil }
}

// Push queues a batch of events, returned by a later Wait. An empty batch
// makes Wait return zero events, as if interrupted.
func (r *Reactor) Push(events ...pollwrap.Event) {
	r.batches.Add(batch{events: slices.Clone(events)})
}

// PushError queues a Wait failure.
func (r *Reactor) PushError(err error) {
	r.batches.Add(batch{err: err})
}

// Reject makes the next Register call fail with err, without registering.
// Multiple rejections apply to successive calls.
func (r *Reactor) Reject(err error) {
	r.rejections.Add(err)
}

// SetCloseError sets the error returned by Close.
func (r *Reactor) SetCloseError(err error) {
	r.closeErr = err
}

// Register implements pollwrap.Reactor.
func (r *Reactor) Register(src pollwrap.Source, token pollwrap.Token, interest pollwrap.Interest) error {
	if r.closed {
		return pollwrap.ErrReactorClosed
	}
	if r.rejections.Length() != 0 {
		return r.rejections.Remove().(error)
	}
	r.registrations = append(r.registrations, Registration{
		Source:   src,
		Token:    token,
		Interest: interest,
	})
	return nil
}

// Wait implements pollwrap.Reactor. A batch larger than events is delivered
// across successive calls.
func (r *Reactor) Wait(events []pollwrap.Event) (int, error) {
	if r.closed {
		return 0, pollwrap.ErrReactorClosed
	}
	r.waits++
	if len(r.pending) == 0 {
		if r.batches.Length() == 0 {
			return 0, ErrNoBatches
		}
		b := r.batches.Remove().(batch)
		if b.err != nil {
			return 0, b.err
		}
		r.pending = b.events
	}
	n := copy(events, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

// Close implements pollwrap.Reactor.
func (r *Reactor) Close() error {
	r.closed = true
	return r.closeErr
}

// Registrations returns every accepted registration, in order.
func (r *Reactor) Registrations() []Registration {
	return slices.Clone(r.registrations)
}

// Closed reports whether Close has been called.
func (r *Reactor) Closed() bool { return r.closed }

// Waits returns the number of Wait calls made while open.
func (r *Reactor) Waits() int { return r.waits }
