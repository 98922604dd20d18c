package pollwrap

import (
	"errors"
	"fmt"
	"slices"

	"github.com/joeycumines/logiface"
)

type dispatcherState uint8

const (
	stateCreated dispatcherState = iota
	stateRunning
	stateDone
)

// Callback handles one event. The scope is only valid until the callback
// returns, and must not be retained. A non-nil error stops [Dispatcher.Run],
// which returns it unchanged.
type Callback func(event Event, scope *Scope) error

// Dispatcher owns a [Reactor], issues tokens, and runs the dispatch loop.
//
// A Dispatcher is not safe for concurrent use. Sources may be registered via
// [Dispatcher.Register] until [Dispatcher.Run] is called, and after that only
// through the [Scope] passed to each callback.
type Dispatcher struct {
	reactor Reactor
	logger  *logiface.Logger[logiface.Event]
	events  []Event
	tokens  []Token // permanent record, in issuance order
	next    Token
	state   dispatcherState
}

// New creates a Dispatcher, and its reactor. If the reactor cannot be
// created, a *ReactorError is returned.
func New(opts ...Option) (*Dispatcher, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	reactor, err := cfg.reactorFunc()
	if err == nil && reactor == nil {
		err = errors.New("nil reactor")
	}
	if err != nil {
		return nil, &ReactorError{Op: "create", Cause: err}
	}

	return &Dispatcher{
		reactor: reactor,
		logger:  cfg.logger,
		events:  make([]Event, cfg.eventCapacity),
	}, nil
}

// Register registers src for read and write readiness, and returns its token.
// It fails with ErrDispatcherConsumed once Run has been called, or the
// Dispatcher has been closed. See [Reactor] for how a descriptor that is
// already registered is handled, which differs by platform.
func (d *Dispatcher) Register(src Source) (Token, error) {
	if d.state != stateCreated {
		return 0, ErrDispatcherConsumed
	}
	token, err := issueToken(d.reactor, &d.next, &d.tokens, src)
	if err != nil {
		return 0, err
	}
	d.logger.Debug().
		Stringer("token", token).
		Log("registered source")
	return token, nil
}

// Tokens returns a copy of every token issued so far, in issuance order.
// Tokens issued through a scope are included once its callback has returned
// without error.
func (d *Dispatcher) Tokens() []Token {
	return slices.Clone(d.tokens)
}

// Run waits for events, indefinitely, calling fn once per event. It consumes
// the Dispatcher: the reactor is closed when Run returns, though registered
// sources are left untouched.
//
// Run only returns on failure: either the error returned by fn, unchanged, or
// a *ReactorError if waiting failed. Events after a failed callback are not
// dispatched.
func (d *Dispatcher) Run(fn Callback) error {
	if fn == nil {
		return ErrNilCallback
	}
	switch d.state {
	case stateRunning:
		return ErrDispatcherRunning
	case stateDone:
		return ErrDispatcherConsumed
	}

	d.state = stateRunning
	defer d.stop()

	for {
		n, err := d.reactor.Wait(d.events)
		if err != nil {
			return &ReactorError{Op: "wait", Cause: err}
		}
		if n < 0 || n > len(d.events) {
			return &ReactorError{Op: "wait", Cause: fmt.Errorf("%w: %d events for a buffer of %d", ErrEventCount, n, len(d.events))}
		}
		d.logger.Trace().
			Int("events", n).
			Log("wait returned")
		for i := 0; i < n; i++ {
			if err := d.dispatch(d.events[i], fn); err != nil {
				return err
			}
		}
	}
}

// dispatch runs fn for one event, under a fresh scope, merging the scope's
// tokens if fn succeeds.
func (d *Dispatcher) dispatch(event Event, fn Callback) error {
	scope := &Scope{
		reactor: d.reactor,
		logger:  d.logger,
		next:    &d.next,
	}
	defer scope.expire()

	if err := fn(event, scope); err != nil {
		d.logger.Debug().
			Stringer("token", event.Token()).
			Err(err).
			Log("callback failed")
		return err
	}

	if len(scope.issued) != 0 {
		d.tokens = append(d.tokens, scope.issued...)
		d.logger.Trace().
			Int("count", len(scope.issued)).
			Log("merged scope tokens")
	}
	return nil
}

// Close releases the reactor of a Dispatcher that will not be run. It is a
// no-op after Run has returned, and fails with ErrDispatcherRunning if called
// while Run is active.
func (d *Dispatcher) Close() error {
	switch d.state {
	case stateRunning:
		return ErrDispatcherRunning
	case stateDone:
		return nil
	}
	d.state = stateDone
	return d.reactor.Close()
}

func (d *Dispatcher) stop() {
	d.state = stateDone
	if err := d.reactor.Close(); err != nil {
		d.logger.Debug().
			Err(err).
			Log("reactor close failed")
	}
	d.logger.Debug().
		Int("tokens", len(d.tokens)).
		Log("dispatcher stopped")
}
