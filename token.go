package pollwrap

import (
	"math"
	"strconv"
)

// Token identifies a registered source. Tokens are issued from zero, one at a
// time, and are never reused by the same Dispatcher.
type Token uint64

// String returns the token formatted as Token(N).
func (t Token) String() string {
	return "Token(" + strconv.FormatUint(uint64(t), 10) + ")"
}

// Handle can register sources, issuing a fresh Token for each. Both
// [Dispatcher] (before Run) and [Scope] (inside a callback) implement it.
type Handle interface {
	Register(src Source) (Token, error)
}

var (
	_ Handle = (*Dispatcher)(nil)
	_ Handle = (*Scope)(nil)
)

// registration is the fixed interest set used for every source.
const registration = InterestReadable | InterestWritable

// issueToken registers src under the next token. The counter only advances,
// and the token is only appended to issued, if the reactor accepts src.
func issueToken(r Reactor, next *Token, issued *[]Token, src Source) (Token, error) {
	token := *next
	if token == math.MaxUint64 {
		return 0, ErrTokensExhausted
	}
	if err := r.Register(src, token, registration); err != nil {
		return 0, &RegistrationError{Token: token, Cause: err}
	}
	*next = token + 1
	*issued = append(*issued, token)
	return token, nil
}
