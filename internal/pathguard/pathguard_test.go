package pathguard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveRootRelative(t *testing.T) {
	g := New("/srv/ftp")

	abs, err := g.Resolve("/", "report.txt")
	require.NoError(t, err)
	require.Equal(t, "/srv/ftp/report.txt", abs)
}

func TestResolveLeadingSlashIsRootRelative(t *testing.T) {
	g := New("/srv/ftp")

	abs, err := g.Resolve("/sub/dir", "/report.txt")
	require.NoError(t, err)
	require.Equal(t, "/srv/ftp/report.txt", abs, "a leading slash must be relative to Root, not the host fs root")
}

func TestResolveTrailingSlashIgnored(t *testing.T) {
	g := New("/srv/ftp")

	abs, err := g.Resolve("/", "sub/")
	require.NoError(t, err)
	require.Equal(t, "/srv/ftp/sub", abs)
}

func TestResolveEscapeIsRejected(t *testing.T) {
	g := New("/srv/ftp")

	_, err := g.Resolve("/", "../../etc/passwd")
	require.ErrorIs(t, err, ErrOutsideRoot)
}

func TestResolveTransientEscapeIsRejected(t *testing.T) {
	g := New("/srv/ftp")

	// "a/../../etc" joined to root is /srv/ftp/a/../../etc, which cleans to
	// /srv/etc: the second ".." climbs above root, so it is rejected rather
	// than clamped to /srv/ftp/etc.
	abs, err := g.Resolve("/", "a/../../etc")
	require.ErrorIs(t, err, ErrOutsideRoot)
	require.Empty(t, abs)
}

func TestChdirRoot(t *testing.T) {
	g := New("/srv/ftp")

	rel, err := g.Chdir("/sub", "/")
	require.NoError(t, err)
	require.Equal(t, "/", rel)
}

func TestChdirNoop(t *testing.T) {
	g := New("/srv/ftp")

	rel, err := g.Chdir("/sub/dir", ".")
	require.NoError(t, err)
	require.Equal(t, "/sub/dir", rel)
}

func TestChdirRelative(t *testing.T) {
	g := New("/srv/ftp")

	rel, err := g.Chdir("/sub", "dir")
	require.NoError(t, err)
	require.Equal(t, "/sub/dir", rel)
}

func TestChdirParentFromRootStaysAtRoot(t *testing.T) {
	g := New("/srv/ftp")

	// The parent of root lies outside it: Chdir fails, so the caller keeps
	// its working directory at root.
	rel, err := g.Chdir("/", "..")
	require.ErrorIs(t, err, ErrOutsideRoot)
	require.Empty(t, rel)
}

func TestRelativePathOutsideRoot(t *testing.T) {
	g := New("/srv/ftp")

	_, err := g.RelativePath("/srv/other")
	require.ErrorIs(t, err, ErrOutsideRoot)
}
