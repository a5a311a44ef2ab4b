package ftpserver

import (
	"net"
)

// openDataConnection waits for the session installed by PORT/PASV to
// become ready, emitting the 150 reply first. On failure it writes the
// terminal error reply itself so callers only need to bail out.
func (c *clientHandler) openDataConnection(openingMessage string) (net.Conn, *TransferSession, error) {
	c.user.Lock()
	transfer := c.user.Transfer()
	c.user.Unlock()

	if transfer == nil {
		c.writeMessage(StatusCannotOpenDataConn, "Can't open data connection.")
		return nil, nil, ErrNoTransferSession
	}

	c.writeMessage(StatusDataConnOpening, openingMessage)

	conn, err := transfer.Open()
	if err != nil {
		c.user.Lock()
		aborted := transfer.Aborted
		c.user.Unlock()

		if aborted {
			c.writeMessage(StatusClosingDataConn, "Connection closed; transfer aborted.")
		} else {
			c.networkErr("open data connection", err)
			c.writeMessage(StatusCannotOpenDataConn, "Can't open data connection.")
		}

		return nil, transfer, err
	}

	return conn, transfer, nil
}

// closeDataConnection finishes a transfer and writes the matching terminal
// reply, honouring the aborted flag (spec §4.3, §7).
func (c *clientHandler) closeDataConnection(transfer *TransferSession, transferErr error) {
	if transfer == nil {
		return
	}

	closeErr := transfer.Close()

	c.user.Lock()
	aborted := transfer.Aborted
	if c.user.Transfer() == transfer {
		c.user.ClearTransfer()
	}
	c.user.Unlock()

	if aborted {
		c.writeMessage(StatusClosingDataConn, "Connection closed; transfer aborted.")
		return
	}

	switch {
	case transferErr != nil:
		c.networkErr("data transfer", transferErr)
		c.writeMessage(StatusConnClosedTransfer, "Connection closed; transfer aborted.")
	case closeErr != nil:
		c.networkErr("close data connection", closeErr)
		c.writeMessage(StatusConnClosedTransfer, "Connection closed; transfer aborted.")
	default:
		c.writeMessage(StatusClosingDataConn, "Transfer complete.")
	}
}
