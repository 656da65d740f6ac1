package printer

import "github.com/olxver2025/Inline/internal/model"

// Printer knows how to print session and execution information in
// different formats.
type Printer interface {
	PrintSessionList(sessions []model.Session) error
	PrintDirListing(cwd string, entries []model.DirEntry) error
	PrintExecResult(result model.ExecResult) error
	PrintChecks(results []model.CheckResult) error
	PrintMessage(msg string) error
}
