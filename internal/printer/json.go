package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/olxver2025/Inline/internal/model"
)

// JSONPrinter prints session information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// sessionItem represents a session in the list output.
type sessionItem struct {
	ID        string    `json:"id"`
	Cwd       string    `json:"cwd"`
	CreatedAt time.Time `json:"created_at"`
	LastUsed  time.Time `json:"last_used"`
}

// dirListingOutput represents a directory listing output.
type dirListingOutput struct {
	Cwd     string     `json:"cwd"`
	Entries []dirEntry `json:"entries"`
}

type dirEntry struct {
	Name      string `json:"name"`
	Dir       bool   `json:"dir"`
	SizeBytes int64  `json:"size_bytes"`
}

// execResultOutput represents an execution result output.
type execResultOutput struct {
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	ExitCode   int    `json:"exit_code"`
	TimedOut   bool   `json:"timed_out"`
	Truncated  bool   `json:"truncated"`
	DurationMS int64  `json:"duration_ms"`
}

// checkOutput represents a preflight check result output.
type checkOutput struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintSessionList prints sessions in JSON format.
func (j *JSONPrinter) PrintSessionList(sessions []model.Session) error {
	items := make([]sessionItem, len(sessions))
	for i, s := range sessions {
		items[i] = sessionItem{
			ID:        s.ID,
			Cwd:       s.Cwd,
			CreatedAt: s.CreatedAt.UTC(),
			LastUsed:  s.LastUsed.UTC(),
		}
	}

	return j.encode(items)
}

// PrintDirListing prints a workspace directory listing in JSON format.
func (j *JSONPrinter) PrintDirListing(cwd string, entries []model.DirEntry) error {
	out := dirListingOutput{Cwd: cwd, Entries: make([]dirEntry, len(entries))}
	for i, e := range entries {
		out.Entries[i] = dirEntry{Name: e.Name, Dir: e.Dir, SizeBytes: e.SizeBytes}
	}

	return j.encode(out)
}

// PrintExecResult prints an execution result in JSON format.
func (j *JSONPrinter) PrintExecResult(result model.ExecResult) error {
	return j.encode(execResultOutput{
		Stdout:     result.Stdout,
		Stderr:     result.Stderr,
		ExitCode:   result.ExitCode,
		TimedOut:   result.TimedOut,
		Truncated:  result.Truncated,
		DurationMS: result.Duration.Milliseconds(),
	})
}

// PrintChecks prints preflight check results in JSON format.
func (j *JSONPrinter) PrintChecks(results []model.CheckResult) error {
	out := make([]checkOutput, len(results))
	for i, r := range results {
		out[i] = checkOutput{ID: r.ID, Status: string(r.Status), Message: r.Message}
	}

	return j.encode(out)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
