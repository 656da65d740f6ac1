// Package pathutil resolves user-supplied relative paths against a session
// workspace and guarantees the result stays inside it.
package pathutil

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/olxver2025/Inline/internal/model"
)

// Normalize cleans a user-supplied relative path: surrounding whitespace is
// trimmed, backslashes become slashes and leading slashes are dropped so the
// path is always interpreted relative to the workspace. The empty path
// normalizes to ".".
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "\\", "/")
	s = strings.TrimLeft(s, "/")
	return path.Clean(s)
}

// Resolve resolves rel against the workspace rooted at root, anchored at the
// workspace-relative working directory cwd. It returns the absolute host
// path of the target and its workspace-relative path.
//
// The target does not need to exist, but every existing ancestor is resolved
// through symlinks before the containment check, so a symlinked directory
// inside the workspace cannot be used to reach files outside it. Targets
// that land outside the workspace return model.ErrPathEscape.
func Resolve(root, cwd, rel string) (absPath, workspaceRel string, err error) {
	rootResolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", "", fmt.Errorf("could not resolve workspace root: %w", err)
	}

	joined := filepath.Join(root, Normalize(cwd), Normalize(rel))
	resolved, err := evalNearest(joined)
	if err != nil {
		return "", "", fmt.Errorf("could not resolve path: %w", err)
	}

	if !within(rootResolved, resolved) {
		return "", "", fmt.Errorf("%q: %w", rel, model.ErrPathEscape)
	}

	wsRel, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", "", fmt.Errorf("could not relativize path: %w", err)
	}

	return resolved, filepath.ToSlash(wsRel), nil
}

// evalNearest resolves symlinks on the longest existing ancestor of p and
// reattaches the non-existing suffix lexically.
func evalNearest(p string) (string, error) {
	suffix := ""
	cur := p
	for {
		resolved, err := filepath.EvalSymlinks(cur)
		if err == nil {
			return filepath.Join(resolved, suffix), nil
		}
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, syscall.ENOTDIR) {
			return "", err
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", err
		}
		suffix = filepath.Join(filepath.Base(cur), suffix)
		cur = parent
	}
}

func within(root, p string) bool {
	if p == root {
		return true
	}
	return strings.HasPrefix(p, root+string(filepath.Separator))
}
