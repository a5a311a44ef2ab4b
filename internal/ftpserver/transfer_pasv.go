package ftpserver

import (
	"fmt"
	"net"
	"sync"
	"time"
)

// passivePortRange hands out ephemeral listener ports from a bounded range,
// grounded on the teacher's passive port allocation in transfer_pasv.go.
type passivePortRange struct {
	mu    sync.Mutex
	start int
	end   int
	next  int
}

func newPassivePortRange(r PortRange) *passivePortRange {
	return &passivePortRange{start: r.Start, end: r.End, next: r.Start}
}

// listen scans the configured range for a free port, starting from the
// position after the last one handed out, wrapping around once.
func (p *passivePortRange) listen(host string) (*net.TCPListener, error) {
	if p.start == 0 && p.end == 0 {
		return net.ListenTCP("tcp", &net.TCPAddr{IP: net.ParseIP(host)})
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	span := p.end - p.start + 1
	if span <= 0 {
		return nil, fmt.Errorf("invalid passive port range [%d,%d]", p.start, p.end)
	}

	for i := 0; i < span; i++ {
		port := p.start + (p.next-p.start+i)%span

		l, err := net.ListenTCP("tcp", &net.TCPAddr{IP: net.ParseIP(host), Port: port})
		if err == nil {
			p.next = port + 1
			return l, nil
		}
	}

	return nil, fmt.Errorf("no free port in passive range [%d,%d]", p.start, p.end)
}

// passiveTransfer owns the listener opened in response to PASV and the
// background goroutine waiting on its single Accept. The background
// goroutine never touches User state directly: it only ever writes to
// ready, a one-slot buffered channel written exactly once, which is the sole point where
// the accepting goroutine and the command-processing goroutine interact.
// This keeps the per-connection mutex (see user.go) the only serialization
// point for actual User fields, per the design note about not mutating
// shared state from a foreign goroutine.
type passiveTransfer struct {
	listener *net.TCPListener
	ready    chan passiveAcceptResult
	once     sync.Once
}

type passiveAcceptResult struct {
	conn net.Conn
	err  error
}

func newPassiveTransfer(listener *net.TCPListener) *passiveTransfer {
	p := &passiveTransfer{
		listener: listener,
		ready:    make(chan passiveAcceptResult, 1),
	}

	go p.acceptLoop()

	return p
}

func (p *passiveTransfer) acceptLoop() {
	conn, err := p.listener.Accept()
	p.ready <- passiveAcceptResult{conn: conn, err: err}
}

// Open blocks until the background accept completes, with no timeout: it
// calls openTimeout with zero, which waits indefinitely.
func (p *passiveTransfer) Open() (net.Conn, error) {
	return p.openTimeout(0)
}

func (p *passiveTransfer) openTimeout(timeout time.Duration) (net.Conn, error) {
	if timeout <= 0 {
		result := <-p.ready
		if result.err != nil {
			return nil, fmt.Errorf("passive accept failed: %w", result.err)
		}

		return result.conn, nil
	}

	select {
	case result := <-p.ready:
		if result.err != nil {
			return nil, fmt.Errorf("passive accept failed: %w", result.err)
		}

		return result.conn, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("timed out waiting for passive data connection")
	}
}

// Close shuts the listener. It is safe to call before or after Accept
// fires; the listener close unblocks an in-flight Accept with an error
// that acceptLoop forwards on ready.
func (p *passiveTransfer) Close() error {
	var err error

	p.once.Do(func() {
		err = p.listener.Close()
	})

	return err
}
