package conventions

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// DefaultDataDir is the default inline data directory name (relative to home).
	DefaultDataDir = ".inline"
	// SessionsDir is the subdirectory for session workspaces.
	SessionsDir = "sessions"

	// Session-level files.

	// MetadataFile is the per-session metadata filename inside the workspace.
	MetadataFile = ".inline-session.yaml"
	// SitePackagesDir is the workspace subdirectory pip installs into.
	SitePackagesDir = ".site-packages"

	// Container-side paths.

	// WorkspaceMountPath is where the session workspace is mounted inside
	// containers.
	WorkspaceMountPath = "/workspace"
	// SitePackagesMountPath is the container-side path of the pip target
	// directory, exported as PYTHONPATH on runs.
	SitePackagesMountPath = WorkspaceMountPath + "/" + SitePackagesDir
)

// SessionDir returns the workspace directory for a specific session.
func SessionDir(baseDir, sessionID string) string {
	return filepath.Join(baseDir, sessionID)
}

// MetadataPath returns the path to a session's metadata file.
func MetadataPath(baseDir, sessionID string) string {
	return filepath.Join(SessionDir(baseDir, sessionID), MetadataFile)
}

// RunContainerName returns the container name for a code run.
func RunContainerName(id string) string {
	return fmt.Sprintf("inline-run-%s", strings.ToLower(id))
}

// InstallContainerName returns the container name for a package install.
func InstallContainerName(id string) string {
	return fmt.Sprintf("inline-pip-%s", strings.ToLower(id))
}
