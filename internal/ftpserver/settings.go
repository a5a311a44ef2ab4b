package ftpserver

import "time"

// Settings holds the immutable, process-lifetime server configuration
// (spec §3's ServerConfig, spec §6's external interface). It is built once
// by the CLI layer (cmd/rftpd) and handed to NewServer.
type Settings struct {
	// ListenAddr is the "host:port" the control listener binds to.
	ListenAddr string

	// Root is the canonical absolute directory every client is sandboxed
	// into. It must already be canonicalised (symlinks resolved) before
	// being set here (see cmd/rftpd); the server does not check it.
	Root string

	// Banner is the text sent after "220 " in the greeting.
	Banner string

	// IdleTimeout closes a control connection that hasn't sent a command
	// in this long. Zero disables the idle timeout (spec §5 "MAY be
	// applied").
	IdleTimeout time.Duration

	// ConnectionTimeout bounds how long PORT dials will wait before giving
	// up. It does not apply to PASV accepts, which wait without a limit.
	ConnectionTimeout time.Duration

	// PassivePortRange is the inclusive range scanned for an ephemeral
	// PASV listener (spec §4.5 default is [49152, 65535)).
	PassivePortRange PortRange

	// PublicHost is the IPv4 address advertised in PASV replies. When
	// empty, the control connection's local address is used instead.
	PublicHost string
}

// PortRange is an inclusive [Start, End] port range used for PASV.
type PortRange struct {
	Start int
	End   int
}

// DefaultSettings returns Settings populated with the spec §6 defaults.
func DefaultSettings() Settings {
	return Settings{
		ListenAddr:        "127.0.0.1:21",
		Banner:            "rftp server ready",
		IdleTimeout:       0,
		ConnectionTimeout: 30 * time.Second,
		PassivePortRange:  PortRange{Start: 49152, End: 65534},
	}
}
