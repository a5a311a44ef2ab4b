package ftpserver_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/powerfooI/rftp/internal/driver"
	"github.com/powerfooI/rftp/internal/ftpserver"
	"github.com/powerfooI/rftp/internal/logging"
)

// TestProductionDriverNonRootRoot exercises the real afero.NewBasePathFs
// wiring with a root that is NOT "/", guarding against the guard and the
// driver each re-applying the sandbox (which would double the root into
// the resolved path and make every operation fail with ENOENT).
func TestProductionDriverNonRootRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "photos"), 0o755))

	fsDriver, err := driver.NewOS(root)
	require.NoError(t, err)

	settings := ftpserver.DefaultSettings()
	settings.ListenAddr = "127.0.0.1:0"
	settings.Root = root

	server := ftpserver.NewServer(settings, fsDriver, logging.NewNop())
	require.NoError(t, server.Listen())
	t.Cleanup(func() { _ = server.Stop() })
	go func() { _ = server.Serve() }()

	raw := newRawConnTo(t, server)

	sendAndCheck(t, raw, "CWD photos", ftpserver.StatusFileActionOK)

	msg := sendAndCheck(t, raw, "PWD", ftpserver.StatusPathCreatedOrPWD)
	require.Contains(t, msg, `"/photos"`)

	require.NoError(t, raw.Close())

	client := newClientTo(t, server)

	payload := []byte("hello from disk")
	require.NoError(t, client.Store("photos/hello.bin", bytes.NewReader(payload)))

	onDisk, err := os.ReadFile(filepath.Join(root, "photos", "hello.bin"))
	require.NoError(t, err)
	require.Equal(t, payload, onDisk, "STOR must land under root/photos, not root/root/photos")

	var buf bytes.Buffer
	require.NoError(t, client.Retrieve("photos/hello.bin", &buf))
	require.Equal(t, payload, buf.Bytes())
}
