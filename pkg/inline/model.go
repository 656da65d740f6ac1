package inline

import (
	"errors"
	"time"

	"github.com/olxver2025/Inline/internal/model"
	"github.com/olxver2025/Inline/internal/printer"
)

// EngineType identifies the sandbox engine implementation.
type EngineType string

const (
	// EngineDocker runs code in hardened one-shot Docker containers.
	// Requires a reachable Docker daemon.
	EngineDocker EngineType = "docker"

	// EngineFake uses an in-memory simulation (no containers).
	// Use this for unit testing without infrastructure dependencies.
	EngineFake EngineType = "fake"
)

// Session represents a user's sandbox session returned by the SDK.
//
// This is a read-only snapshot of the session state at the time of the API
// call.
type Session struct {
	// ID is the session identifier (typically a chat user id or a name).
	ID string
	// Cwd is the current directory relative to the workspace root.
	// "." means the root itself.
	Cwd string
	// CreatedAt is when the session was created.
	CreatedAt time.Time
	// LastUsed is when the session was last touched by any operation.
	LastUsed time.Time
}

// ExecResult is the outcome of a code run.
//
// Non-zero exits, timeouts and truncated output are part of the result, not
// errors: an error from [Client.Run] always means the run could not be set
// up at all.
type ExecResult struct {
	// Stdout is the captured standard output, capped per stream.
	Stdout string
	// Stderr is the captured standard error, capped per stream.
	Stderr string
	// ExitCode is the interpreter exit code. 124 on timeout.
	ExitCode int
	// TimedOut is true when the run hit its wall-clock limit.
	TimedOut bool
	// Truncated is true when at least one stream hit its byte cap.
	Truncated bool
	// Duration is the wall-clock time the run took.
	Duration time.Duration
}

// Text renders the result as plain text: stdout first, a separated stderr
// section, an exit code fallback when both streams are empty, and a
// truncation marker when capped.
func (r ExecResult) Text() string {
	return printer.FormatExecResult(model.ExecResult{
		Stdout:    r.Stdout,
		Stderr:    r.Stderr,
		ExitCode:  r.ExitCode,
		TimedOut:  r.TimedOut,
		Truncated: r.Truncated,
		Duration:  r.Duration,
	})
}

// DirEntry is a single entry of a workspace directory listing.
type DirEntry struct {
	Name      string
	Dir       bool
	SizeBytes int64
}

// Listing is a workspace directory listing.
type Listing struct {
	// Cwd is the session's (possibly just updated) working directory.
	Cwd string
	// Entries are the directory entries, directories first.
	Entries []DirEntry
}

// InstallResult is the outcome of a completed package install.
type InstallResult struct {
	// ExitCode is the installer exit code. 124 on timeout.
	ExitCode int
	// TimedOut is true when the install hit its wall-clock limit.
	TimedOut bool
	// LogTail is the trailing window of the combined install log.
	LogTail string
}

// CheckStatus represents the status of a preflight check.
type CheckStatus string

const (
	// CheckStatusOK indicates the check passed.
	CheckStatusOK CheckStatus = "ok"
	// CheckStatusWarning indicates the check passed with a warning.
	CheckStatusWarning CheckStatus = "warning"
	// CheckStatusError indicates the check failed.
	CheckStatusError CheckStatus = "error"
)

// CheckResult represents the result of a single preflight check.
type CheckResult struct {
	ID      string
	Message string
	Status  CheckStatus
}

// Sentinel errors returned by the SDK. Inspect with [errors.Is].
var (
	// ErrNotFound means the session or path does not exist.
	ErrNotFound = errors.New("not found")
	// ErrExpired means the session aged past the retention window and was
	// reaped on access.
	ErrExpired = errors.New("expired")
	// ErrAlreadyExists means a live session already occupies the id.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid means invalid input or an invalid operation.
	ErrNotValid = errors.New("not valid")
	// ErrPathEscape means a path resolved outside the session workspace.
	ErrPathEscape = errors.New("path escapes workspace")
	// ErrImageUnavailable means the execution image is missing and was not
	// pulled.
	ErrImageUnavailable = errors.New("image unavailable")
	// ErrRuntimeUnavailable means the container runtime cannot be reached.
	ErrRuntimeUnavailable = errors.New("runtime unavailable")
)

// --- Conversion helpers ---

func fromInternalSession(s model.Session) Session {
	return Session{
		ID:        s.ID,
		Cwd:       s.Cwd,
		CreatedAt: s.CreatedAt,
		LastUsed:  s.LastUsed,
	}
}

func fromInternalSessionList(ss []model.Session) []Session {
	result := make([]Session, len(ss))
	for i, s := range ss {
		result[i] = fromInternalSession(s)
	}
	return result
}

func fromInternalExecResult(r model.ExecResult) ExecResult {
	return ExecResult{
		Stdout:    r.Stdout,
		Stderr:    r.Stderr,
		ExitCode:  r.ExitCode,
		TimedOut:  r.TimedOut,
		Truncated: r.Truncated,
		Duration:  r.Duration,
	}
}

func fromInternalDirEntries(es []model.DirEntry) []DirEntry {
	result := make([]DirEntry, len(es))
	for i, e := range es {
		result[i] = DirEntry{Name: e.Name, Dir: e.Dir, SizeBytes: e.SizeBytes}
	}
	return result
}

func fromInternalCheckResults(results []model.CheckResult) []CheckResult {
	out := make([]CheckResult, len(results))
	for i, r := range results {
		out[i] = CheckResult{
			ID:      r.ID,
			Message: r.Message,
			Status:  CheckStatus(r.Status),
		}
	}
	return out
}

// --- Error mapping ---

// mapError maps internal sentinel errors to their public counterparts while
// keeping the original message and chain.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return joinErrors(err, ErrNotFound)
	case errors.Is(err, model.ErrExpired):
		return joinErrors(err, ErrExpired)
	case errors.Is(err, model.ErrAlreadyExists):
		return joinErrors(err, ErrAlreadyExists)
	case errors.Is(err, model.ErrPathEscape):
		return joinErrors(err, ErrPathEscape)
	case errors.Is(err, model.ErrNotValid):
		return joinErrors(err, ErrNotValid)
	case errors.Is(err, model.ErrImageUnavailable):
		return joinErrors(err, ErrImageUnavailable)
	case errors.Is(err, model.ErrRuntimeUnavailable):
		return joinErrors(err, ErrRuntimeUnavailable)
	default:
		return err
	}
}

func joinErrors(original, sentinel error) error {
	return &mappedError{original: original, sentinel: sentinel}
}

type mappedError struct {
	original error
	sentinel error
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool {
	return target == e.sentinel
}

func (e *mappedError) Unwrap() error { return e.original }
