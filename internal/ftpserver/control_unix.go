//go:build linux || freebsd || darwin || aix || dragonfly || netbsd || openbsd
// +build linux freebsd darwin aix dragonfly netbsd openbsd

package ftpserver

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// reusePortControl is used as a net.Dialer's Control hook so active-mode
// (PORT) transfers can dial out from the conventional port 20 even across
// several concurrent connections, grounded on the teacher's control_unix.go.
func reusePortControl(_, _ string, c syscall.RawConn) error {
	var errSetOpts error

	err := c.Control(func(fd uintptr) {
		errSetOpts = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
		if errSetOpts != nil {
			return
		}

		errSetOpts = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
	})
	if err != nil {
		return fmt.Errorf("unable to set socket options: %w", err)
	}

	if errSetOpts != nil {
		return fmt.Errorf("unable to set socket options: %w", errSetOpts)
	}

	return nil
}
