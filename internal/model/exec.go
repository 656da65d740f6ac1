package model

import "time"

// TimeoutExitCode is the exit code reported for executions that hit their
// deadline, matching the coreutils timeout(1) convention.
const TimeoutExitCode = 124

// ResourceLimits caps the resources a single container may use.
type ResourceLimits struct {
	// CPUs is the number of CPUs the container may use (e.g. 1.0).
	CPUs float64
	// MemoryBytes is the memory limit in bytes.
	MemoryBytes int64
	// PidsLimit is the maximum number of processes inside the container.
	PidsLimit int64
}

// WorkspaceMount describes a host directory mounted as the container
// workspace.
type WorkspaceMount struct {
	// HostDir is the absolute host path mounted at the workspace root.
	HostDir string
	// Subpath is the workspace-relative working directory for the process.
	// Empty or "." means the workspace root.
	Subpath string
}

// ExecRequest contains everything needed to run a piece of code in a
// sandboxed container.
type ExecRequest struct {
	// Code is the source delivered to the interpreter on stdin.
	Code string
	// Mount is the workspace mount, nil when the run needs no persistent
	// files.
	Mount *WorkspaceMount
	// Env contains additional environment variables for this run.
	Env map[string]string
	// Timeout is the wall-clock limit for the run. Expiring it is an
	// execution outcome, not an error.
	Timeout time.Duration
	// Limits caps the container resources.
	Limits ResourceLimits
}

// ExecResult contains the outcome of a sandboxed run. All failure modes of
// the code itself (non-zero exit, timeout, truncated output) are represented
// here; an error is returned only for setup problems such as an unreachable
// runtime.
type ExecResult struct {
	// Stdout is the captured standard output, capped per stream.
	Stdout string
	// Stderr is the captured standard error, capped per stream.
	Stderr string
	// ExitCode is the exit code of the interpreter.
	ExitCode int
	// TimedOut is true when the run hit its deadline and the container was
	// force removed. ExitCode is TimeoutExitCode in that case.
	TimedOut bool
	// Truncated is true when at least one stream hit its byte cap.
	Truncated bool
	// Duration is the wall-clock time the run took.
	Duration time.Duration
}
