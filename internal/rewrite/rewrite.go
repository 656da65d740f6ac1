// Package rewrite makes runs behave like a REPL: when a submission ends in a
// bare expression, it appends a statement printing that expression's repr.
package rewrite

import (
	"fmt"
	"strings"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/parser"
	"github.com/go-python/gpython/py"
)

// EchoLastExpr returns src extended with a print(repr(...)) of its trailing
// expression statement. The source is returned unchanged when it does not
// parse, does not end in an expression, already ends in a print call, or the
// rewritten source would not parse.
func EchoLastExpr(src string) string {
	mod, err := parseModule(src)
	if err != nil || len(mod.Body) == 0 {
		return src
	}

	last, ok := mod.Body[len(mod.Body)-1].(*ast.ExprStmt)
	if !ok {
		return src
	}
	if isPrintCall(last.Value) {
		return src
	}

	seg := sourceSegment(src, last.Lineno, last.ColOffset)
	if seg == "" {
		seg = lastNonBlankLine(src)
	}
	if seg == "" {
		return src
	}

	echoed := fmt.Sprintf("%s\nprint(repr((%s)))", src, seg)

	// Reject rewrites broken by trailing comments or odd offsets.
	if _, err := parseModule(echoed); err != nil {
		return src
	}

	return echoed
}

func parseModule(src string) (*ast.Module, error) {
	node, err := parser.ParseString(src+"\n", py.ExecMode)
	if err != nil {
		return nil, err
	}
	mod, ok := node.(*ast.Module)
	if !ok {
		return nil, fmt.Errorf("not a module")
	}
	return mod, nil
}

func isPrintCall(e ast.Expr) bool {
	call, ok := e.(*ast.Call)
	if !ok {
		return false
	}
	name, ok := call.Func.(*ast.Name)
	return ok && name.Id == "print"
}

// sourceSegment returns the source from the given 1-based line and byte
// column to the end, trimmed. The parser gives no end positions, so for a
// trailing statement running to the end of the source is equivalent.
func sourceSegment(src string, lineno, colOffset int) string {
	lines := strings.Split(src, "\n")
	if lineno < 1 || lineno > len(lines) {
		return ""
	}

	tail := make([]string, len(lines)-lineno+1)
	copy(tail, lines[lineno-1:])
	if colOffset > 0 && colOffset <= len(tail[0]) {
		tail[0] = tail[0][colOffset:]
	}

	return strings.TrimSpace(strings.Join(tail, "\n"))
}

func lastNonBlankLine(src string) string {
	lines := strings.Split(src, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
