package ftpserver_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/powerfooI/rftp/internal/ftpserver"
)

func TestAnonymousLoginSystQuit(t *testing.T) {
	raw := newRawConn(t)

	sendAndCheck(t, raw, "SYST", ftpserver.StatusSystemType)
	sendAndCheck(t, raw, "QUIT", ftpserver.StatusClosingControlConn)
}

func TestPasvListEmptyDirectory(t *testing.T) {
	raw := newRawConn(t)

	dcGetter, err := raw.PrepareDataConn()
	require.NoError(t, err)

	code, msg, err := raw.SendCommand("LIST")
	require.NoError(t, err)
	require.Equal(t, ftpserver.StatusDataConnOpening, code, msg)

	dc, err := dcGetter()
	require.NoError(t, err)

	data, err := io.ReadAll(dc)
	require.NoError(t, err)
	require.Empty(t, data)
	require.NoError(t, dc.Close())

	code, msg, err = raw.ReadResponse()
	require.NoError(t, err)
	require.Equal(t, ftpserver.StatusClosingDataConn, code, msg)
}

func TestStorThenRetrRoundTrip(t *testing.T) {
	client := newTestClient(t)

	payload := []byte("ABCD")
	require.NoError(t, client.Store("hello.bin", bytes.NewReader(payload)))

	var buf bytes.Buffer
	require.NoError(t, client.Retrieve("hello.bin", &buf))

	require.Equal(t, payload, buf.Bytes())
}

func TestPathEscapeIsDenied(t *testing.T) {
	raw := newRawConn(t)

	sendAndCheck(t, raw, "CWD ../../etc", ftpserver.StatusFileUnavailable)

	msg := sendAndCheck(t, raw, "PWD", ftpserver.StatusPathCreatedOrPWD)
	require.Contains(t, msg, `"/"`)
}

func TestRestResumesAtOffset(t *testing.T) {
	client := newTestClient(t)

	require.NoError(t, client.Store("f", bytes.NewReader([]byte("0123456789"))))

	raw, err := client.OpenRawConn()
	require.NoError(t, err)

	defer func() { _ = raw.Close() }()

	sendAndCheck(t, raw, "REST 4", ftpserver.StatusFileActionPending)

	dcGetter, err := raw.PrepareDataConn()
	require.NoError(t, err)

	code, msg, err := raw.SendCommand("RETR f")
	require.NoError(t, err)
	require.Equal(t, ftpserver.StatusDataConnOpening, code, msg)

	dc, err := dcGetter()
	require.NoError(t, err)

	data, err := io.ReadAll(dc)
	require.NoError(t, err)
	require.NoError(t, dc.Close())

	require.Len(t, data, 6)
	require.Equal(t, []byte("456789"), data)

	_, _, err = raw.ReadResponse()
	require.NoError(t, err)
}

func TestAborDuringStor(t *testing.T) {
	raw := newRawConn(t)

	dcGetter, err := raw.PrepareDataConn()
	require.NoError(t, err)

	code, msg, err := raw.SendCommand("STOR big.bin")
	require.NoError(t, err)
	require.Equal(t, ftpserver.StatusDataConnOpening, code, msg)

	dc, err := dcGetter()
	require.NoError(t, err)

	_, err = dc.Write(bytes.Repeat([]byte{'x'}, 4096))
	require.NoError(t, err)

	code, msg, err = raw.SendCommand("ABOR")
	require.NoError(t, err)
	require.Equal(t, ftpserver.StatusClosingDataConn, code, msg)

	require.NoError(t, dc.Close())

	// The in-flight STOR's own terminal reply follows, in either order
	// relative to ABOR's (spec §5).
	code, msg, err = raw.ReadResponse()
	require.NoError(t, err)
	require.Equal(t, ftpserver.StatusClosingDataConn, code, msg)
}
