package ftpserver

import (
	"net"
)

// transferEndpoint is the active/passive data-channel handle, grounded on
// the teacher's transferHandler interface.
type transferEndpoint interface {
	// Open returns the data connection, blocking until it is ready. An
	// active dial is bounded by its timeout; a passive accept is not.
	Open() (net.Conn, error)
	Close() error
}

// TransferSession is the per-connection record describing the currently
// prepared or in-flight data channel (spec §3, §4.3). It is owned by the
// User it belongs to and is always accessed under the User's lock.
type TransferSession struct {
	endpoint transferEndpoint

	Filename         string
	Offset           int64
	BytesTransferred int64
	Finished         bool
	Aborted          bool
}

func newTransferSession(endpoint transferEndpoint) *TransferSession {
	return &TransferSession{endpoint: endpoint}
}

// Open blocks until the data connection is established (dialing out for
// active mode, bounded by the dial timeout, or waiting without a time limit
// for the pending passive accept).
func (s *TransferSession) Open() (net.Conn, error) {
	return s.endpoint.Open()
}

// Close releases the endpoint: the dialed socket in active mode, the
// listener in passive mode (an accepted passive connection is closed by
// the handler that uses it, not here). Safe to call multiple times.
func (s *TransferSession) Close() error {
	if s.endpoint == nil {
		return nil
	}

	return s.endpoint.Close()
}
