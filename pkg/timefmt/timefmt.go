// Package timefmt formats timestamps for recency display.
package timefmt

import (
	"fmt"
	"time"
)

// Relative buckets the age of t into "Just now", minutes, hours, or days ago,
// falling back to a calendar date past one week.
func Relative(t, now time.Time) string {
	secs := int64(now.Sub(t).Seconds())
	switch {
	case secs < 60:
		return "Just now"
	case secs < 3600:
		return fmt.Sprintf("%dm ago", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%dh ago", secs/3600)
	case secs < 604800:
		return fmt.Sprintf("%dd ago", secs/86400)
	default:
		return t.Format("02/01/2006")
	}
}
