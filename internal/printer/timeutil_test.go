package printer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/olxver2025/Inline/internal/printer"
)

func TestTimeAgo(t *testing.T) {
	now := time.Now().UTC()

	tests := map[string]struct {
		time     time.Time
		expected string
	}{
		"A timestamp seconds old should use seconds.": {
			time:     now.Add(-5 * time.Second),
			expected: "5 seconds ago (UTC)",
		},

		"A single unit should not be pluralized.": {
			time:     now.Add(-1 * time.Minute),
			expected: "1 minute ago (UTC)",
		},

		"A timestamp hours old should use hours.": {
			time:     now.Add(-3 * time.Hour),
			expected: "3 hours ago (UTC)",
		},

		"A timestamp days old should use days.": {
			time:     now.Add(-48 * time.Hour),
			expected: "2 days ago (UTC)",
		},

		"A future timestamp should not crash.": {
			time:     now.Add(1 * time.Hour),
			expected: "in the future (UTC)",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, printer.TimeAgo(test.time))
		})
	}
}
