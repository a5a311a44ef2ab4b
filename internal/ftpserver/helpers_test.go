package ftpserver_test

import (
	"testing"

	"github.com/secsy/goftp"
	"github.com/stretchr/testify/require"

	"github.com/powerfooI/rftp/internal/driver"
	"github.com/powerfooI/rftp/internal/ftpserver"
	"github.com/powerfooI/rftp/internal/logging"
)

// newTestServer starts a server over an in-memory filesystem listening on
// an OS-assigned loopback port, and stops it when the test ends.
func newTestServer(t *testing.T) *ftpserver.Server {
	t.Helper()

	settings := ftpserver.DefaultSettings()
	settings.ListenAddr = "127.0.0.1:0"
	settings.Root = "/"

	server := ftpserver.NewServer(settings, driver.NewMemory(), logging.NewNop())
	require.NoError(t, server.Listen())

	t.Cleanup(func() { _ = server.Stop() })

	go func() { _ = server.Serve() }()

	return server
}

func newTestClient(t *testing.T) *goftp.Client {
	t.Helper()

	return newClientTo(t, newTestServer(t))
}

func newRawConn(t *testing.T) goftp.RawConn {
	t.Helper()

	return newRawConnTo(t, newTestServer(t))
}

// newClientTo dials an already-running server, for tests that need control
// over how the server itself was constructed (e.g. its driver or root).
func newClientTo(t *testing.T, server *ftpserver.Server) *goftp.Client {
	t.Helper()

	client, err := goftp.DialConfig(goftp.Config{User: "anonymous", Password: "x@y"}, server.Addr())
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	return client
}

func newRawConnTo(t *testing.T, server *ftpserver.Server) goftp.RawConn {
	t.Helper()

	client := newClientTo(t, server)

	raw, err := client.OpenRawConn()
	require.NoError(t, err)

	t.Cleanup(func() { _ = raw.Close() })

	return raw
}

func sendAndCheck(t *testing.T, raw goftp.RawConn, cmd string, expected int) string {
	t.Helper()

	code, msg, err := raw.SendCommand(cmd)
	require.NoError(t, err)
	require.Equal(t, expected, code, msg)

	return msg
}
