//go:build linux

package pollwrap

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// epollReactor implements Reactor using edge-triggered epoll. The token is
// stored in the 64-bit epoll data word, split across the Fd and Pad fields.
type epollReactor struct {
	buf    []unix.EpollEvent // raw event buffer, grown to the caller's
	epfd   int
	closed bool
}

// NewReactor creates the platform reactor (epoll on Linux).
func NewReactor() (Reactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &epollReactor{epfd: epfd}, nil
}

// Register adds the source's descriptor to the epoll set.
func (r *epollReactor) Register(src Source, token Token, interest Interest) error {
	if r.closed {
		return ErrReactorClosed
	}
	fd, err := sourceFD(src)
	if err != nil {
		return err
	}
	ev := unix.EpollEvent{Events: interestToEpoll(interest)}
	putEpollToken(&ev, token)
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		if errors.Is(err, unix.EEXIST) {
			return fmt.Errorf("%w: %w", ErrAlreadyRegistered, err)
		}
		return err
	}
	return nil
}

// Wait blocks indefinitely for events. EINTR yields (0, nil).
func (r *epollReactor) Wait(events []Event) (int, error) {
	if r.closed {
		return 0, ErrReactorClosed
	}
	if len(r.buf) < len(events) {
		r.buf = make([]unix.EpollEvent, len(events))
	}
	n, err := unix.EpollWait(r.epfd, r.buf[:len(events)], -1)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}
	for i := 0; i < n; i++ {
		events[i] = NewEvent(epollToken(&r.buf[i]), epollToReadiness(r.buf[i].Events))
	}
	return n, nil
}

// Close closes the epoll instance. It is idempotent.
func (r *epollReactor) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return unix.Close(r.epfd)
}

func putEpollToken(ev *unix.EpollEvent, token Token) {
	ev.Fd = int32(uint32(token))
	ev.Pad = int32(uint32(token >> 32))
}

func epollToken(ev *unix.EpollEvent) Token {
	return Token(uint32(ev.Fd)) | Token(uint32(ev.Pad))<<32
}

// interestToEpoll converts an Interest to edge-triggered epoll flags.
func interestToEpoll(interest Interest) uint32 {
	flags := uint32(unix.EPOLLET)
	if interest&InterestReadable != 0 {
		flags |= unix.EPOLLIN | unix.EPOLLRDHUP
	}
	if interest&InterestWritable != 0 {
		flags |= unix.EPOLLOUT
	}
	return flags
}

// epollToReadiness converts epoll event flags to Readiness.
func epollToReadiness(flags uint32) Readiness {
	var r Readiness
	if flags&unix.EPOLLIN != 0 {
		r |= Readable
	}
	if flags&unix.EPOLLOUT != 0 {
		r |= Writable
	}
	if flags&unix.EPOLLERR != 0 {
		r |= ErrorReadiness
	}
	if flags&(unix.EPOLLHUP|unix.EPOLLRDHUP) != 0 {
		r |= Hangup
	}
	return r
}
