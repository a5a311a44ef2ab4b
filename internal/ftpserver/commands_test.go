package ftpserver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLineUppercasesVerb(t *testing.T) {
	cmd := ParseLine("user anonymous\r\n")
	require.Equal(t, "USER", cmd.Verb)
	require.Equal(t, "anonymous", cmd.Arg)
}

func TestParseLinePreservesInternalSpaces(t *testing.T) {
	cmd := ParseLine("RNTO a file with spaces.txt\r\n")
	require.Equal(t, "RNTO", cmd.Verb)
	require.Equal(t, "a file with spaces.txt", cmd.Arg)
}

func TestParseLineNoArgument(t *testing.T) {
	cmd := ParseLine("PWD\r\n")
	require.Equal(t, "PWD", cmd.Verb)
	require.Empty(t, cmd.Arg)
}

func TestParsePORTAddr(t *testing.T) {
	addr, err := ParsePORTAddr("127,0,0,1,195,80")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", addr.IP.String())
	require.Equal(t, 195*256+80, addr.Port)
}

func TestParsePORTAddrMalformed(t *testing.T) {
	_, err := ParsePORTAddr("127,0,0,1,195")
	require.Error(t, err)
}

func TestFormatPASVAddr(t *testing.T) {
	out := FormatPASVAddr([4]byte{127, 0, 0, 1}, 50000)
	require.Equal(t, "127,0,0,1,195,80", out)
}

func TestParseUint64Arg(t *testing.T) {
	v, err := ParseUint64Arg(" 1024 ")
	require.NoError(t, err)
	require.EqualValues(t, 1024, v)
}
