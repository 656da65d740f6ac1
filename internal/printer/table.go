package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/docker/go-units"

	"github.com/olxver2025/Inline/internal/model"
)

// TablePrinter prints session information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintSessionList prints sessions in a table format.
func (t *TablePrinter) PrintSessionList(sessions []model.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header.
	fmt.Fprintln(tw, "SESSION\tCWD\tCREATED\tLAST USED")

	// Print rows.
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t/%s\t%s\t%s\n",
			s.ID,
			cwdDisplay(s.Cwd),
			TimeAgo(s.CreatedAt),
			TimeAgo(s.LastUsed),
		)
	}

	return nil
}

// PrintDirListing prints a workspace directory listing, directories first
// with a trailing slash, files with their byte size.
func (t *TablePrinter) PrintDirListing(cwd string, entries []model.DirEntry) error {
	fmt.Fprintf(t.writer, "cwd: /%s\n", cwdDisplay(cwd))

	for _, e := range entries {
		if e.Dir {
			fmt.Fprintf(t.writer, "%s/\n", e.Name)
			continue
		}
		fmt.Fprintf(t.writer, "%s (%s)\n", e.Name, units.BytesSize(float64(e.SizeBytes)))
	}

	return nil
}

// PrintExecResult prints the plain text rendering of an execution result.
func (t *TablePrinter) PrintExecResult(result model.ExecResult) error {
	fmt.Fprintln(t.writer, FormatExecResult(result))
	return nil
}

// PrintChecks prints preflight check results with status markers.
func (t *TablePrinter) PrintChecks(results []model.CheckResult) error {
	for _, r := range results {
		marker := "✓"
		switch r.Status {
		case model.CheckStatusWarning:
			marker = "!"
		case model.CheckStatusError:
			marker = "✗"
		}
		fmt.Fprintf(t.writer, "%s %s: %s\n", marker, r.ID, r.Message)
	}

	ok, warnings, errs := model.CountByStatus(results)
	fmt.Fprintf(t.writer, "\n%d ok, %d warnings, %d errors\n", ok, warnings, errs)

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}

func cwdDisplay(cwd string) string {
	if cwd == "." {
		return ""
	}
	return cwd
}
