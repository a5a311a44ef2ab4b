// Package driver provides the filesystem driver that backs the server: an
// afero.Fs rooted at a canonical directory on disk, or an in-memory
// filesystem for tests.
package driver

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/powerfooI/rftp/internal/ftpserver"
)

// NewOS returns a ClientDriver serving root from the real filesystem,
// rejecting any access outside it via afero.BasePathFs, grounded on the
// teacher's sample driver (which layers afero.NewBasePathFs over the OS
// filesystem) combined with the Path Guard's own containment check.
func NewOS(root string) (ftpserver.ClientDriver, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("root directory %q: %w", root, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", root)
	}

	return afero.NewBasePathFs(afero.NewOsFs(), root), nil
}

// NewMemory returns an in-memory ClientDriver, used by tests that want a
// fresh, isolated filesystem per run.
func NewMemory() ftpserver.ClientDriver {
	return afero.NewMemMapFs()
}
