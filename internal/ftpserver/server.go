package ftpserver

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/powerfooI/rftp/internal/logging"
)

// ErrNotListening is returned by Stop when the server was never started.
var ErrNotListening = errors.New("server is not listening")

// Server is the Acceptor (spec §4.5): it binds the control port, accepts
// new connections and spawns a Connection Actor for each, grounded on the
// teacher's FtpServer.
type Server struct {
	settings Settings
	driver   ClientDriver
	logger   logging.Logger

	listener      net.Listener
	clientCounter uint32
	passivePorts  *passivePortRange

	mu      sync.Mutex
	clients map[uint32]*clientHandler
}

// NewServer builds a Server around a filesystem driver rooted at
// settings.Root. The caller is responsible for canonicalising Root before
// construction (spec §6).
func NewServer(settings Settings, driver ClientDriver, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Server{
		settings:     settings,
		driver:       driver,
		logger:       logger,
		passivePorts: newPassivePortRange(settings.PassivePortRange),
		clients:      make(map[uint32]*clientHandler),
	}
}

// Listen binds the control address without accepting connections yet.
func (s *Server) Listen() error {
	listener, err := net.Listen("tcp", s.settings.ListenAddr)
	if err != nil {
		return fmt.Errorf("cannot listen on %s: %w", s.settings.ListenAddr, err)
	}

	s.listener = listener
	s.logger.Info("listening", "address", listener.Addr().String())

	return nil
}

// Serve accepts connections until the listener is closed.
func (s *Server) Serve() error {
	var tempDelay time.Duration

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if isClosedListenerError(err) {
				return nil
			}

			var netErr net.Error
			if errors.As(err, &netErr) {
				if tempDelay == 0 {
					tempDelay = 5 * time.Millisecond
				} else {
					tempDelay *= 2
				}

				if tempDelay > time.Second {
					tempDelay = time.Second
				}

				s.logger.Warn("accept error, retrying", "err", err, "delay", tempDelay)
				time.Sleep(tempDelay)

				continue
			}

			return fmt.Errorf("accept error: %w", err)
		}

		tempDelay = 0

		s.clientArrival(conn)
	}
}

// ListenAndServe chains Listen and Serve.
func (s *Server) ListenAndServe() error {
	if err := s.Listen(); err != nil {
		return err
	}

	return s.Serve()
}

// Addr returns the bound control address, or "" if not listening.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// Stop closes the listener; in-flight Connection Actors drain on their own.
func (s *Server) Stop() error {
	if s.listener == nil {
		return ErrNotListening
	}

	return s.listener.Close()
}

func (s *Server) clientArrival(conn net.Conn) {
	id := atomic.AddUint32(&s.clientCounter, 1)

	handler := newClientHandler(s, conn, id)

	s.mu.Lock()
	s.clients[id] = handler
	s.mu.Unlock()

	handler.logger.Debug("client connected", "remoteAddr", conn.RemoteAddr().String())

	go handler.HandleCommands()
}

func (s *Server) clientDeparted(id uint32) {
	s.mu.Lock()
	delete(s.clients, id)
	s.mu.Unlock()
}

// passiveAnnounceHost decides which IP address to advertise in a PASV
// reply: the configured PublicHost override, or the local address the
// client actually connected to.
func (s *Server) passiveAnnounceHost(conn net.Conn) string {
	if s.settings.PublicHost != "" {
		return s.settings.PublicHost
	}

	if tcpAddr, ok := conn.LocalAddr().(*net.TCPAddr); ok {
		return tcpAddr.IP.String()
	}

	return "127.0.0.1"
}

func (s Settings) listenHost() string {
	host, _, err := net.SplitHostPort(s.ListenAddr)
	if err != nil || host == "" || host == "0.0.0.0" || host == "::" {
		return "0.0.0.0"
	}

	return host
}

func isClosedListenerError(err error) bool {
	return strings.Contains(err.Error(), "use of closed network connection")
}
