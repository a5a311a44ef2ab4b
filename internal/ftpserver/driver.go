package ftpserver

import (
	"os"

	"github.com/spf13/afero"
)

// ClientDriver is the filesystem surface a connection actor operates
// against, grounded on the teacher's ClientDriver (an afero.Fs). Keeping
// this as an interface rather than hard-wiring afero.NewBasePathFs lets
// tests substitute afero.NewMemMapFs() exactly like the teacher's
// driver_test.go does.
type ClientDriver interface {
	afero.Fs
}

// ClientDriverExtensionFileList is an optional extension that lets a driver
// return directory entries more efficiently than Open+Readdir.
type ClientDriverExtensionFileList interface {
	ReadDir(name string) ([]os.FileInfo, error)
}

func readDir(driver ClientDriver, absPath string) ([]os.FileInfo, error) {
	if lister, ok := driver.(ClientDriverExtensionFileList); ok {
		return lister.ReadDir(absPath)
	}

	dir, err := driver.Open(absPath)
	if err != nil {
		return nil, err
	}
	defer dir.Close() //nolint:errcheck

	return dir.Readdir(-1)
}
