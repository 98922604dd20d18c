//go:build linux || darwin

package pollwrap_test

import (
	"testing"

	"golang.org/x/sys/unix"
)

// testSocketPair creates a connected, non-blocking unix socket pair, closed
// when the test ends.
func testSocketPair(t *testing.T) (a, b int) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatal("unix.Socketpair failed:", err)
	}
	for _, fd := range fds {
		if err := unix.SetNonblock(fd, true); err != nil {
			t.Fatal("unix.SetNonblock failed:", err)
		}
	}
	t.Cleanup(func() {
		_ = unix.Close(fds[0])
		_ = unix.Close(fds[1])
	})
	return fds[0], fds[1]
}
