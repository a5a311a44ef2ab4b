package ftpserver

import (
	"fmt"
	"net"
)

func (c *clientHandler) handlePORT(arg string) {
	raddr, err := ParsePORTAddr(arg)
	if err != nil {
		c.writeMessage(StatusSyntaxErrorParams, fmt.Sprintf("Could not parse PORT address: %v", err))
		return
	}

	endpoint := newActiveTransfer(raddr, c.server.settings.ConnectionTimeout)

	c.user.Lock()
	c.user.SetTransfer(newTransferSession(endpoint))
	c.user.Unlock()

	c.writeMessage(StatusFileActionOK, "PORT command successful.")
}

func (c *clientHandler) handlePASV(_ string) {
	host := c.server.passiveAnnounceHost(c.conn)

	listener, err := c.server.passivePorts.listen(c.server.settings.listenHost())
	if err != nil {
		c.writeMessage(StatusCannotOpenDataConn, fmt.Sprintf("Could not listen for passive connection: %v", err))
		return
	}

	endpoint := newPassiveTransfer(listener)

	c.user.Lock()
	c.user.SetTransfer(newTransferSession(endpoint))
	c.user.Unlock()

	addr, ok := listener.Addr().(*net.TCPAddr)
	if !ok {
		c.writeMessage(StatusCannotOpenDataConn, "Could not determine listener address.")
		return
	}

	var ipBytes [4]byte

	if ip4 := net.ParseIP(host).To4(); ip4 != nil {
		copy(ipBytes[:], ip4)
	}

	c.writeMessage(StatusEnteringPASV, fmt.Sprintf("Entering Passive Mode (%s)", FormatPASVAddr(ipBytes, addr.Port)))
}
