package printer

import (
	"fmt"
	"strings"

	"github.com/olxver2025/Inline/internal/model"
)

// FormatExecResult renders an execution result as plain text: stdout first,
// then a separated stderr section, a fallback line when both streams are
// empty, and a truncation marker when a stream hit its cap.
func FormatExecResult(res model.ExecResult) string {
	parts := []string{}

	if res.Stdout != "" {
		parts = append(parts, res.Stdout)
	}
	if res.Stderr != "" {
		if res.Stdout != "" {
			parts = append(parts, "\n--- stderr ---\n"+res.Stderr)
		} else {
			parts = append(parts, res.Stderr)
		}
	}
	if res.Stdout == "" && res.Stderr == "" {
		parts = append(parts, fmt.Sprintf("(no output, exit code %d)", res.ExitCode))
	}
	if res.Truncated {
		parts = append(parts, "\n[output truncated]")
	}

	return strings.Join(parts, "")
}
