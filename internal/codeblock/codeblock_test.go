package codeblock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olxver2025/Inline/internal/codeblock"
)

func TestExtract(t *testing.T) {
	tests := map[string]struct {
		raw      string
		expected string
	}{
		"Plain source should be returned trimmed.": {
			raw:      "  print('hi')  ",
			expected: "print('hi')",
		},
		"Inline single-backtick code should be unwrapped.": {
			raw:      "`1+1`",
			expected: "1+1",
		},
		"A fenced block without a language hint should be unwrapped.": {
			raw:      "```\nx = 1\nprint(x)\n```",
			expected: "x = 1\nprint(x)",
		},
		"A fenced block with a python hint should drop the hint line.": {
			raw:      "```python\nimport os\nprint(os.getcwd())\n```",
			expected: "import os\nprint(os.getcwd())",
		},
		"A fenced block with a py hint should drop the hint line.": {
			raw:      "```py\nprint(42)\n```",
			expected: "print(42)",
		},
		"A first line that merely starts with python should be kept.": {
			raw:      "```pythonic = True\nprint(pythonic)\n```",
			expected: "pythonic = True\nprint(pythonic)",
		},
		"An empty fenced block should extract to nothing.": {
			raw:      "``````",
			expected: "",
		},
		"Backticks inside the source should be untouched.": {
			raw:      "s = \"`quoted`\"",
			expected: "s = \"`quoted`\"",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, codeblock.Extract(test.raw))
		})
	}
}
