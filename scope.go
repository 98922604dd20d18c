package pollwrap

import (
	"slices"

	"github.com/joeycumines/logiface"
)

// Scope registers sources on behalf of a running [Dispatcher], for the
// duration of a single callback. Tokens issued through it share the
// Dispatcher's counter, and join its permanent record after the callback
// returns nil.
//
// A Scope must not be used after its callback returns; Register then fails
// with ErrScopeExpired.
type Scope struct {
	reactor Reactor
	logger  *logiface.Logger[logiface.Event]
	next    *Token // the Dispatcher's counter, nil once expired
	issued  []Token
}

// Register registers src for read and write readiness, and returns its token.
func (s *Scope) Register(src Source) (Token, error) {
	if s.next == nil {
		return 0, ErrScopeExpired
	}
	token, err := issueToken(s.reactor, s.next, &s.issued, src)
	if err != nil {
		return 0, err
	}
	s.logger.Debug().
		Stringer("token", token).
		Bool("scoped", true).
		Log("registered source")
	return token, nil
}

// Issued returns a copy of the tokens issued through this scope.
func (s *Scope) Issued() []Token {
	return slices.Clone(s.issued)
}

func (s *Scope) expire() {
	s.reactor = nil
	s.next = nil
}
