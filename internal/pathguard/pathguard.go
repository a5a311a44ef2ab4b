// Package pathguard resolves client-supplied FTP paths against a sandboxed
// root directory and rejects anything that escapes it.
package pathguard

import (
	"errors"
	"path"
	"strings"
)

// ErrOutsideRoot is returned when a resolved path would escape the root.
var ErrOutsideRoot = errors.New("pathguard: path escapes root")

// Guard resolves relative FTP paths against an immutable root. It holds no
// working-directory state of its own: callers pass the current working
// directory (relative to Root, "/" denoting the root itself) on every call,
// matching the User entity's ownership of that state.
type Guard struct {
	// Root is the canonical absolute directory outside which no path
	// operation is permitted. It must already be canonicalised by the
	// caller (see cmd/rftpd for startup canonicalisation).
	Root string
}

// New creates a Guard rooted at root, which must already be an absolute,
// canonical path.
func New(root string) Guard {
	return Guard{Root: strings.TrimRight(root, "/")}
}

// Resolve computes the absolute, root-relative filesystem path for target as
// seen from cwd (itself root-relative, "/" meaning the root). A leading "/"
// in target is interpreted as relative to Root, not the host filesystem
// root. Trailing slashes are ignored. The ".." components are evaluated
// only after target is joined to cwd; if at any point they climb above
// Root, Resolve returns ErrOutsideRoot instead of clamping at Root.
func (g Guard) Resolve(cwd, target string) (string, error) {
	var joined string

	switch {
	case target == "":
		joined = cwd
	case strings.HasPrefix(target, "/"):
		joined = target
	default:
		joined = cwd + "/" + target
	}

	// Cleaned as a relative path, a ".." that climbs above the root
	// survives as a leading ".." component.
	if rel := path.Clean(strings.TrimLeft(joined, "/")); rel == ".." || strings.HasPrefix(rel, "../") {
		return "", ErrOutsideRoot
	}

	clean := path.Clean("/" + joined)

	absolute := g.Root + clean
	if clean == "/" {
		if g.Root == "" {
			absolute = "/"
		} else {
			absolute = g.Root
		}
	}

	if absolute != g.Root && absolute != "/" && !strings.HasPrefix(absolute, g.Root+"/") {
		return "", ErrOutsideRoot
	}

	return absolute, nil
}

// RelativePath returns the root-relative form ("/" for the root itself) of
// an absolute path previously produced by Resolve.
func (g Guard) RelativePath(absolute string) (string, error) {
	if absolute == g.Root {
		return "/", nil
	}

	if !strings.HasPrefix(absolute, g.Root+"/") {
		return "", ErrOutsideRoot
	}

	rel := strings.TrimPrefix(absolute, g.Root)
	if rel == "" {
		rel = "/"
	}

	return rel, nil
}

// Chdir resolves target from cwd and, on success, returns the new
// root-relative working directory ("." is a no-op, returning cwd unchanged
// only in value, always re-cleaned).
func (g Guard) Chdir(cwd, target string) (string, error) {
	absolute, err := g.Resolve(cwd, target)
	if err != nil {
		return "", err
	}

	return g.RelativePath(absolute)
}
