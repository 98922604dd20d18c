//go:build darwin

package pollwrap

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// kqueueReactor implements Reactor using kqueue, with EV_CLEAR for edge
// semantics. Tokens are kept per ident, since Udata is a pointer.
//
// Registering an ident again replaces its token: kqueue silently drops
// filters for closed descriptors, so a recycled descriptor must be accepted.
type kqueueReactor struct {
	tokens map[uint64]Token
	buf    []unix.Kevent_t
	kq     int
	closed bool
}

// NewReactor creates the platform reactor (kqueue on Darwin).
func NewReactor() (Reactor, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, err
	}
	unix.CloseOnExec(kq)
	return &kqueueReactor{
		tokens: make(map[uint64]Token),
		kq:     kq,
	}, nil
}

// Register adds read and/or write filters for the source's descriptor.
func (r *kqueueReactor) Register(src Source, token Token, interest Interest) error {
	if r.closed {
		return ErrReactorClosed
	}
	fd, err := sourceFD(src)
	if err != nil {
		return err
	}

	changes := interestToKevents(fd, interest, unix.EV_ADD|unix.EV_CLEAR|unix.EV_RECEIPT)
	if len(changes) == 0 {
		return nil
	}
	// EV_RECEIPT reports each change's result in place, so a partial failure
	// can be rolled back.
	if err := retryEINTR(func() error {
		_, err := unix.Kevent(r.kq, changes, changes, nil)
		return err
	}); err != nil {
		return err
	}
	for i := range changes {
		if changes[i].Flags&unix.EV_ERROR != 0 && changes[i].Data != 0 {
			rollback := interestToKevents(fd, interest, unix.EV_DELETE)
			_, _ = unix.Kevent(r.kq, rollback, nil, nil)
			return syscall.Errno(changes[i].Data)
		}
	}

	r.tokens[uint64(fd)] = token
	return nil
}

// Wait blocks indefinitely for events. EINTR yields (0, nil).
func (r *kqueueReactor) Wait(events []Event) (int, error) {
	if r.closed {
		return 0, ErrReactorClosed
	}
	if len(r.buf) < len(events) {
		r.buf = make([]unix.Kevent_t, len(events))
	}
	n, err := unix.Kevent(r.kq, nil, r.buf[:len(events)], nil)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}
	out := 0
	for i := 0; i < n; i++ {
		kev := &r.buf[i]
		token, ok := r.tokens[kev.Ident]
		if !ok {
			continue
		}
		events[out] = NewEvent(token, keventToReadiness(kev))
		out++
	}
	return out, nil
}

// Close closes the kqueue instance. It is idempotent.
func (r *kqueueReactor) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return unix.Close(r.kq)
}

// retryEINTR calls fn until it returns something other than EINTR.
func retryEINTR(fn func() error) error {
	for {
		if err := fn(); err != unix.EINTR {
			return err
		}
	}
}

// interestToKevents builds the change list for fd.
func interestToKevents(fd int, interest Interest, flags int) []unix.Kevent_t {
	var changes []unix.Kevent_t
	if interest&InterestReadable != 0 {
		var kev unix.Kevent_t
		unix.SetKevent(&kev, fd, unix.EVFILT_READ, flags)
		changes = append(changes, kev)
	}
	if interest&InterestWritable != 0 {
		var kev unix.Kevent_t
		unix.SetKevent(&kev, fd, unix.EVFILT_WRITE, flags)
		changes = append(changes, kev)
	}
	return changes
}

// keventToReadiness converts a kevent to Readiness.
func keventToReadiness(kev *unix.Kevent_t) Readiness {
	var r Readiness
	switch kev.Filter {
	case unix.EVFILT_READ:
		r |= Readable
	case unix.EVFILT_WRITE:
		r |= Writable
	}
	if kev.Flags&unix.EV_EOF != 0 {
		r |= Hangup
	}
	if kev.Flags&unix.EV_ERROR != 0 {
		r |= ErrorReadiness
	}
	return r
}
