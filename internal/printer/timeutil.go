package printer

import (
	"fmt"
	"time"
)

// TimeAgo renders a timestamp as a relative time ("2 hours ago (UTC)").
func TimeAgo(t time.Time) string {
	diff := time.Now().UTC().Sub(t.UTC())
	if diff < 0 {
		return "in the future (UTC)"
	}

	var n int
	var unit string
	switch {
	case diff >= 24*time.Hour:
		n, unit = int(diff.Hours()/24), "day"
	case diff >= time.Hour:
		n, unit = int(diff.Hours()), "hour"
	case diff >= time.Minute:
		n, unit = int(diff.Minutes()), "minute"
	default:
		n, unit = int(diff.Seconds()), "second"
	}

	if n == 1 {
		return fmt.Sprintf("1 %s ago (UTC)", unit)
	}
	return fmt.Sprintf("%d %ss ago (UTC)", n, unit)
}
