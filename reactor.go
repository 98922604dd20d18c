package pollwrap

import (
	"errors"
	"syscall"
)

// Reactor is the readiness multiplexer driven by a [Dispatcher].
//
// Implementations need not be safe for concurrent use: a Dispatcher only calls
// them from the goroutine running it.
type Reactor interface {
	// Register associates src with token, for the given interest.
	//
	// Registering a descriptor that is already registered fails with
	// ErrAlreadyRegistered on epoll. On kqueue it succeeds, replacing the
	// descriptor's token, since kqueue drops filters for closed descriptors
	// and a recycled descriptor must be accepted.
	Register(src Source, token Token, interest Interest) error

	// Wait blocks, without a timeout, until at least one event is available,
	// then writes up to len(events) of them and returns the count. A count of
	// zero with a nil error means the wait was interrupted.
	Wait(events []Event) (int, error)

	// Close releases the reactor. Registered sources are not closed.
	Close() error
}

// Source is an I/O object that can be registered. It remains owned by the
// caller. Most of the net and os types implement it.
type Source interface {
	SyscallConn() (syscall.RawConn, error)
}

// FD adapts a raw file descriptor to a [Source].
func FD(fd int) Source {
	return fdSource(fd)
}

type fdSource int

func (s fdSource) SyscallConn() (syscall.RawConn, error) {
	if s < 0 {
		return nil, syscall.EBADF
	}
	return fdRawConn(s), nil
}

// fdRawConn only supports Control, which is all registration needs.
type fdRawConn int

func (c fdRawConn) Control(f func(fd uintptr)) error {
	f(uintptr(c))
	return nil
}

func (c fdRawConn) Read(func(fd uintptr) bool) error { return errors.ErrUnsupported }

func (c fdRawConn) Write(func(fd uintptr) bool) error { return errors.ErrUnsupported }
