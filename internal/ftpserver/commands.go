package ftpserver

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Command is a parsed control-channel line: the uppercased verb and its
// argument, preserved verbatim (including internal spaces) except for the
// separating space itself (spec §4.2).
type Command struct {
	Verb string
	Arg  string
}

// ParseLine splits a CRLF-stripped control-channel line into a Command. It
// never fails: an empty line becomes an empty verb, which the dispatcher
// maps to NOOP just like any other unrecognised verb (spec §4.2, §9).
func ParseLine(line string) Command {
	line = strings.TrimRight(line, "\r\n")

	parts := strings.SplitN(line, " ", 2)
	verb := strings.ToUpper(parts[0])

	arg := ""
	if len(parts) == 2 {
		arg = parts[1]
	}

	return Command{Verb: verb, Arg: arg}
}

// ParsePORTAddr decodes PORT's "h1,h2,h3,h4,p1,p2" argument into a TCP
// address (spec §4.2).
func ParsePORTAddr(arg string) (*net.TCPAddr, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 6 {
		return nil, fmt.Errorf("malformed PORT argument %q", arg)
	}

	octets := make([]string, 4)
	for i := 0; i < 4; i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 || n > 255 {
			return nil, fmt.Errorf("malformed PORT host octet %q", parts[i])
		}

		octets[i] = parts[i]
	}

	p1, err := strconv.Atoi(parts[4])
	if err != nil || p1 < 0 || p1 > 255 {
		return nil, fmt.Errorf("malformed PORT port high byte %q", parts[4])
	}

	p2, err := strconv.Atoi(parts[5])
	if err != nil || p2 < 0 || p2 > 255 {
		return nil, fmt.Errorf("malformed PORT port low byte %q", parts[5])
	}

	port := p1*256 + p2
	host := strings.Join(octets, ".")

	return net.ResolveTCPAddr("tcp", fmt.Sprintf("%s:%d", host, port))
}

// FormatPASVAddr renders an IPv4 address and port into PASV's
// "h1,h2,h3,h4,p1,p2" reply form (spec §4.4).
func FormatPASVAddr(ip [4]byte, port int) string {
	p1 := port / 256
	p2 := port - p1*256

	return fmt.Sprintf("%d,%d,%d,%d,%d,%d", ip[0], ip[1], ip[2], ip[3], p1, p2)
}

// ParseUint64Arg parses ALLO/REST's decimal u64 argument.
func ParseUint64Arg(arg string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(arg), 10, 64)
}
