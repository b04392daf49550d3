package utils

import (
	"fmt"
	"time"
)

// TimeToNano converts t to the nanosecond stamps written to logs.
func TimeToNano(t time.Time) int64 {
	return t.UnixNano()
}

// SessionName returns a unique session directory name:
//
//	<prefix>_<motion>_YYYYMMDD_HHMMSS
func SessionName(prefix, motion string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s", prefix, motion, now.Format("20060102_150405"))
}
