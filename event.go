package pollwrap

import (
	"strings"
)

// Readiness is the set of conditions reported for a source.
type Readiness uint32

const (
	// Readable indicates the source can be read without blocking.
	Readable Readiness = 1 << iota
	// Writable indicates the source can be written without blocking.
	Writable
	// ErrorReadiness indicates an error condition on the source.
	ErrorReadiness
	// Hangup indicates the peer closed its end.
	Hangup
)

// String returns the set flags joined by "|", or "none".
func (r Readiness) String() string {
	if r == 0 {
		return "none"
	}
	var parts []string
	if r&Readable != 0 {
		parts = append(parts, "readable")
	}
	if r&Writable != 0 {
		parts = append(parts, "writable")
	}
	if r&ErrorReadiness != 0 {
		parts = append(parts, "error")
	}
	if r&Hangup != 0 {
		parts = append(parts, "hangup")
	}
	return strings.Join(parts, "|")
}

// Interest is the set of conditions a source is registered for.
type Interest uint32

const (
	// InterestReadable requests read readiness.
	InterestReadable Interest = 1 << iota
	// InterestWritable requests write readiness.
	InterestWritable
)

// Event is a single readiness notification.
type Event struct {
	token     Token
	readiness Readiness
}

// NewEvent builds an Event. It exists for [Reactor] implementations.
func NewEvent(token Token, readiness Readiness) Event {
	return Event{token: token, readiness: readiness}
}

// Token returns the token of the source this event concerns.
func (e Event) Token() Token { return e.token }

// Readiness returns the full readiness set.
func (e Event) Readiness() Readiness { return e.readiness }

// IsReadable reports whether the source is readable.
func (e Event) IsReadable() bool { return e.readiness&Readable != 0 }

// IsWritable reports whether the source is writable.
func (e Event) IsWritable() bool { return e.readiness&Writable != 0 }

// IsError reports whether the reactor reported an error condition.
func (e Event) IsError() bool { return e.readiness&ErrorReadiness != 0 }

// IsHangup reports whether the peer hung up, or the read side was closed.
func (e Event) IsHangup() bool { return e.readiness&Hangup != 0 }
