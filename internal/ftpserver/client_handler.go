package ftpserver

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/powerfooI/rftp/internal/logging"
	"github.com/powerfooI/rftp/internal/pathguard"
)

// commandDescription mirrors the teacher's CommandDescription: a flag
// saying whether the command is allowed before login, and whether it runs
// on the transfer goroutine so ABOR/STAT/QUIT can still be serviced while
// it streams.
type commandDescription struct {
	Open            bool
	TransferRelated bool
	SpecialAction   bool
	Fn              func(c *clientHandler, arg string)
}

var commandsMap map[string]*commandDescription

func init() {
	commandsMap = map[string]*commandDescription{
		"USER": {Open: true, Fn: (*clientHandler).handleUSER},
		"PASS": {Open: true, Fn: (*clientHandler).handlePASS},
		"ACCT": {Fn: (*clientHandler).handleACCT},
		"QUIT": {Open: true, SpecialAction: true, Fn: (*clientHandler).handleQUIT},
		"NOOP": {Open: true, Fn: (*clientHandler).handleNOOP},
		"REIN": {Fn: (*clientHandler).handleREIN},

		"PORT": {Fn: (*clientHandler).handlePORT},
		"PASV": {Fn: (*clientHandler).handlePASV},

		"TYPE": {Fn: (*clientHandler).handleTYPE},
		"STRU": {Fn: (*clientHandler).handleSTRU},
		"MODE": {Fn: (*clientHandler).handleMODE},

		"RETR": {TransferRelated: true, Fn: (*clientHandler).handleRETR},
		"STOR": {TransferRelated: true, Fn: (*clientHandler).handleSTOR},
		"STOU": {TransferRelated: true, Fn: (*clientHandler).handleSTOU},
		"APPE": {TransferRelated: true, Fn: (*clientHandler).handleAPPE},
		"ALLO": {Fn: (*clientHandler).handleALLO},
		"REST": {Fn: (*clientHandler).handleREST},

		"RNFR": {Fn: (*clientHandler).handleRNFR},
		"RNTO": {Fn: (*clientHandler).handleRNTO},
		"ABOR": {SpecialAction: true, Fn: (*clientHandler).handleABOR},
		"DELE": {Fn: (*clientHandler).handleDELE},
		"RMD":  {Fn: (*clientHandler).handleRMD},
		"MKD":  {Fn: (*clientHandler).handleMKD},
		"PWD":  {Fn: (*clientHandler).handlePWD},
		"CWD":  {Fn: (*clientHandler).handleCWD},
		"CDUP": {Fn: (*clientHandler).handleCDUP},

		"LIST": {TransferRelated: true, Fn: (*clientHandler).handleLIST},
		"NLST": {TransferRelated: true, Fn: (*clientHandler).handleNLST},
		"SITE": {Fn: (*clientHandler).handleSITE},
		"SYST": {Open: true, Fn: (*clientHandler).handleSYST},
		"STAT": {SpecialAction: true, Fn: (*clientHandler).handleSTAT},
		"HELP": {Open: true, Fn: (*clientHandler).handleHELP},

		"FEAT": {Open: true, Fn: (*clientHandler).handleFEAT},
		"MDTM": {Fn: (*clientHandler).handleMDTM},
	}
}

// clientHandler is the Connection Actor: it owns exactly one control TCP
// connection, reads lines, dispatches them and writes replies, grounded on
// the teacher's clientHandler.
type clientHandler struct {
	id       uint32
	server   *Server
	conn     net.Conn
	writer   *bufio.Writer
	reader   *bufio.Reader
	writerMu sync.Mutex

	driver ClientDriver
	guard  pathguard.Guard
	user   *User

	logger logging.Logger

	transferWg sync.WaitGroup
	restOffset int64
}

func newClientHandler(server *Server, conn net.Conn, id uint32) *clientHandler {
	return &clientHandler{
		id:     id,
		server: server,
		conn:   conn,
		writer: bufio.NewWriter(conn),
		reader: bufio.NewReader(conn),
		driver: server.driver,
		// The guard is always rooted at "/": server.driver is itself the
		// sandbox (afero.NewBasePathFs(OsFs, settings.Root) in production,
		// the bare in-memory fs in tests), so the guard only needs to stop
		// a path from walking above the virtual root it hands the driver —
		// rooting it at settings.Root as well would make every resolved
		// path absolute twice over (settings.Root joined into itself by
		// BasePathFs's own RealPath).
		guard:  pathguard.New("/"),
		user:   NewUser(),
		logger: server.logger.With("clientId", id),
	}
}

// HandleCommands runs the read-dispatch-reply loop until the control
// connection is closed (spec §4.4).
func (c *clientHandler) HandleCommands() {
	defer c.end()

	c.writeMessage(StatusServiceReady, c.server.settings.Banner)

	for {
		if c.server.settings.IdleTimeout > 0 {
			if err := c.conn.SetDeadline(time.Now().Add(c.server.settings.IdleTimeout)); err != nil {
				c.logger.Error("set deadline failed", "err", err)
			}
		}

		line, err := c.reader.ReadString('\n')
		if err != nil {
			c.logger.Debug("control read ended", "err", err)
			return
		}

		if c.handleLine(line) {
			return
		}
	}
}

// handleLine processes one control-channel line and reports whether the
// connection should now be torn down (QUIT).
func (c *clientHandler) handleLine(line string) (done bool) {
	cmd := ParseLine(line)

	desc, ok := commandsMap[cmd.Verb]
	if !ok {
		// Unknown verbs are mapped to NOOP and logged, never closing the
		// connection.
		c.logger.Info("unknown command mapped to NOOP", "verb", cmd.Verb)
		c.writeMessage(StatusFileActionOK, "NOOP ok.")

		return false
	}

	if !desc.Open {
		c.user.Lock()
		active := c.user.Status == UserStatusActive
		c.user.Unlock()

		if !active {
			c.writeMessage(StatusNotLoggedIn, "Not logged in.")
			return false
		}
	}

	if !desc.SpecialAction || (cmd.Verb == "STAT" && cmd.Arg != "") {
		c.transferWg.Wait()
	}

	if desc.TransferRelated {
		c.transferWg.Add(1)

		go func(fn func(*clientHandler, string), arg string) {
			defer c.transferWg.Done()
			fn(c, arg)
		}(desc.Fn, cmd.Arg)

		return false
	}

	desc.Fn(c, cmd.Arg)

	return cmd.Verb == "QUIT"
}

func (c *clientHandler) end() {
	c.user.Lock()
	if t := c.user.Transfer(); t != nil {
		_ = t.Close()
	}
	c.user.Unlock()

	c.transferWg.Wait()

	_ = c.conn.Close()
	c.server.clientDeparted(c.id)
}

// driverErr wraps a filesystem driver failure in a DriverError, logs it
// server-side, and returns a short reason fit for the client (spec §7,
// FilesystemError).
func (c *clientHandler) driverErr(op string, err error) string {
	wrapped := NewDriverError(op, err)
	c.logger.Error("driver error", "op", op, "err", wrapped)

	return "Permission denied."
}

// networkErr wraps a data-connection failure in a NetworkError and logs it
// server-side (spec §7, DataConnectionError).
func (c *clientHandler) networkErr(op string, err error) {
	c.logger.Warn("data connection error", "err", NewNetworkError(op, err))
}

// absPath resolves a command argument against the user's current working
// directory through the Path Guard.
func (c *clientHandler) absPath(arg string) (string, error) {
	c.user.Lock()
	cwd := c.user.WorkingDir
	c.user.Unlock()

	return c.guard.Resolve(cwd, arg)
}

func (c *clientHandler) writeLine(line string) {
	c.writerMu.Lock()
	defer c.writerMu.Unlock()

	if _, err := c.writer.WriteString(line + "\r\n"); err != nil {
		c.logger.Warn("write failed", "err", err)
		return
	}

	if err := c.writer.Flush(); err != nil {
		c.logger.Warn("flush failed", "err", err)
	}
}

// writeMessage writes a (possibly multi-line) reply, using the continued
// line form for every line but the last (spec §6).
func (c *clientHandler) writeMessage(code int, message string) {
	lines := strings.Split(message, "\n")

	for i, line := range lines {
		if i < len(lines)-1 {
			c.writeLine(fmt.Sprintf("%d-%s", code, line))
		} else {
			c.writeLine(fmt.Sprintf("%d %s", code, line))
		}
	}
}
