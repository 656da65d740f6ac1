// Package codeblock strips chat style code markers from raw source
// submissions.
package codeblock

import "strings"

// Extract returns the source inside a submission, removing one level of
// inline single-backtick or triple-backtick fence markers. Fenced blocks may
// carry a "python" or "py" language hint on the first line, which is
// dropped. Unmarked submissions are returned trimmed.
func Extract(raw string) string {
	content := strings.TrimSpace(raw)

	if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") && len(content) >= 6 {
		inner := content[3 : len(content)-3]
		if rest, ok := strings.CutPrefix(inner, "python\n"); ok {
			inner = rest
		} else if rest, ok := strings.CutPrefix(inner, "py\n"); ok {
			inner = rest
		}
		return strings.TrimSpace(inner)
	}

	if strings.HasPrefix(content, "`") && strings.HasSuffix(content, "`") && len(content) >= 2 {
		return strings.TrimSpace(content[1 : len(content)-1])
	}

	return content
}
