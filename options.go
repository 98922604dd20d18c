package pollwrap

import (
	"errors"
	"fmt"

	"github.com/joeycumines/logiface"
)

// defaultEventCapacity is the number of events fetched per wait.
const defaultEventCapacity = 128

// dispatcherOptions holds configuration options for Dispatcher creation.
type dispatcherOptions struct {
	logger        *logiface.Logger[logiface.Event]
	reactorFunc   func() (Reactor, error)
	eventCapacity int
}

// Option configures a Dispatcher instance.
type Option interface {
	applyDispatcher(*dispatcherOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyDispatcherFunc func(*dispatcherOptions) error
}

func (o *optionImpl) applyDispatcher(opts *dispatcherOptions) error {
	return o.applyDispatcherFunc(opts)
}

// WithLogger attaches a logger, used for debug and trace diagnostics only.
// Errors are always returned to the caller, never just logged. A nil logger
// (the default) disables logging.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *dispatcherOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithEventCapacity sets the maximum number of events fetched by one wait.
func WithEventCapacity(n int) Option {
	return &optionImpl{func(opts *dispatcherOptions) error {
		if n < 1 {
			return fmt.Errorf("pollwrap: invalid event capacity %d", n)
		}
		opts.eventCapacity = n
		return nil
	}}
}

// WithReactorFunc replaces the platform reactor constructor, [NewReactor].
func WithReactorFunc(fn func() (Reactor, error)) Option {
	return &optionImpl{func(opts *dispatcherOptions) error {
		if fn == nil {
			return errors.New("pollwrap: nil reactor func")
		}
		opts.reactorFunc = fn
		return nil
	}}
}

// resolveOptions applies Option instances to dispatcherOptions.
func resolveOptions(opts []Option) (*dispatcherOptions, error) {
	cfg := &dispatcherOptions{
		reactorFunc:   NewReactor,
		eventCapacity: defaultEventCapacity,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyDispatcher(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
