//go:build windows
// +build windows

package ftpserver

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// reusePortControl mirrors control_unix.go's intent on Windows, where only
// SO_REUSEADDR is meaningful.
func reusePortControl(_, _ string, c syscall.RawConn) error {
	var errSetOpts error

	err := c.Control(func(fd uintptr) {
		errSetOpts = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}

	return errSetOpts
}
