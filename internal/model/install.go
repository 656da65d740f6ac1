package model

import "time"

// InstallRequest contains everything needed to install packages into a
// session workspace.
type InstallRequest struct {
	// Packages are the package specs handed to the installer.
	Packages []string
	// Mount is the workspace mount the packages are installed into.
	Mount WorkspaceMount
	// Timeout is the wall-clock limit for the whole install.
	Timeout time.Duration
	// Limits caps the container resources.
	Limits ResourceLimits
}

// InstallUpdate is a single event from a streaming install. Non-final
// updates carry a chunk of combined output, the final update carries the
// exit status.
type InstallUpdate struct {
	// Chunk is a piece of combined stdout and stderr output.
	Chunk string
	// Done is true on the final update.
	Done bool
	// ExitCode is the installer exit code, only meaningful when Done.
	ExitCode int
	// TimedOut is true when the install hit its deadline, only meaningful
	// when Done.
	TimedOut bool
	// Err carries a setup failure that ended the stream, only meaningful
	// when Done.
	Err error
}
