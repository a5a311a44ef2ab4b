package ftpserver

import (
	"fmt"
	"net"
	"time"
)

// activeTransfer dials out to the client's PORT address on demand,
// grounded on the teacher's activeTransferHandler.
type activeTransfer struct {
	raddr   *net.TCPAddr
	timeout time.Duration
	conn    net.Conn
}

func newActiveTransfer(raddr *net.TCPAddr, timeout time.Duration) *activeTransfer {
	return &activeTransfer{raddr: raddr, timeout: timeout}
}

func (a *activeTransfer) Open() (net.Conn, error) {
	dialer := &net.Dialer{
		Timeout:   a.timeout,
		LocalAddr: &net.TCPAddr{Port: 20},
		Control:   reusePortControl,
	}

	conn, err := dialer.Dial("tcp", a.raddr.String())
	if err != nil {
		// Port 20 may already be in use by another connection's active
		// transfer; fall back to an ephemeral source port rather than
		// fail outright.
		dialer.LocalAddr = nil

		conn, err = dialer.Dial("tcp", a.raddr.String())
		if err != nil {
			return nil, fmt.Errorf("could not establish active data connection: %w", err)
		}
	}

	a.conn = conn

	return conn, nil
}

func (a *activeTransfer) Close() error {
	if a.conn != nil {
		return a.conn.Close()
	}

	return nil
}
