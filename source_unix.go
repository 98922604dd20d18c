//go:build linux || darwin

package pollwrap

import (
	"syscall"
)

// sourceFD extracts the descriptor backing src.
func sourceFD(src Source) (int, error) {
	if src == nil {
		return -1, syscall.EBADF
	}
	rc, err := src.SyscallConn()
	if err != nil {
		return -1, err
	}
	fd := -1
	if err := rc.Control(func(v uintptr) { fd = int(v) }); err != nil {
		return -1, err
	}
	if fd < 0 {
		return -1, syscall.EBADF
	}
	return fd, nil
}
