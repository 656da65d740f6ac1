package model

import (
	"path/filepath"
	"time"
)

// Session represents a persistent per-user sandbox workspace.
type Session struct {
	// ID is the session identifier (one session per chat user or CLI name).
	ID string
	// Root is the absolute host path of the session workspace directory.
	Root string
	// Cwd is the current directory relative to Root. "." means the root itself.
	Cwd string
	// CreatedAt is when the session was created.
	CreatedAt time.Time
	// LastUsed is when the session was last touched by any operation.
	LastUsed time.Time
}

// WorkspaceDir returns the absolute host path of the session's current
// directory.
func (s Session) WorkspaceDir() string {
	if s.Cwd == "" || s.Cwd == "." {
		return s.Root
	}
	return filepath.Join(s.Root, s.Cwd)
}

// DirEntry is a single entry of a workspace directory listing.
type DirEntry struct {
	Name      string
	Dir       bool
	SizeBytes int64
}
