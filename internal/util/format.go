package util

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatCount renders a counter the way the dashboard shows it ("124,500").
func FormatCount(n uint64) string {
	return humanize.Comma(int64(n))
}

var isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// FormatISODuration converts an ISO-8601 video duration such as "PT12M45S"
// into "12:45" (or "1:02:03" past the hour). Unparseable input is returned as is.
func FormatISODuration(iso string) string {
	m := isoDurationRe.FindStringSubmatch(iso)
	if m == nil || iso == "P" || iso == "PT" {
		return iso
	}

	atoi := func(s string) int {
		if s == "" {
			return 0
		}
		v, _ := strconv.Atoi(s)
		return v
	}

	hours := atoi(m[1])*24 + atoi(m[2])
	minutes := atoi(m[3])
	seconds := atoi(m[4])

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
