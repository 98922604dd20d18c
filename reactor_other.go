//go:build !linux && !darwin

package pollwrap

// NewReactor returns ErrUnsupportedPlatform: only epoll and kqueue are
// implemented. Supply a Reactor via WithReactorFunc on other platforms.
func NewReactor() (Reactor, error) {
	return nil, ErrUnsupportedPlatform
}
