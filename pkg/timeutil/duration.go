// Package timeutil parses the compact time windows used by reports.
package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultWindow is the fallback report window used when none is provided.
	DefaultWindow = "1w"

	day  = 24 * time.Hour
	week = 7 * day
)

var segment = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)

// units maps every accepted spelling to its duration. The first spelling of
// each group is the canonical one used by FormatWindow.
var units = []struct {
	spellings []string
	value     time.Duration
}{
	{[]string{"w", "wk", "wks", "week", "weeks"}, week},
	{[]string{"d", "day", "days"}, day},
	{[]string{"h", "hr", "hrs", "hour", "hours"}, time.Hour},
	{[]string{"m", "min", "mins", "minute", "minutes"}, time.Minute},
}

func unitFor(s string) (time.Duration, bool) {
	for _, u := range units {
		for _, sp := range u.spellings {
			if sp == s {
				return u.value, true
			}
		}
	}
	return 0, false
}

// ParseWindow turns "1w", "3d" or "1w2d6h" into a duration plus its compact
// form. Empty input means DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		remaining = DefaultWindow
	}

	var total time.Duration
	for strings.TrimSpace(remaining) != "" {
		m := segment.FindStringSubmatch(remaining)
		if m == nil {
			return 0, "", fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid window value %q: %w", m[1], err)
		}
		unit, ok := unitFor(m[2])
		if !ok {
			return 0, "", fmt.Errorf("unsupported window unit %q", m[2])
		}
		if n > int64(math.MaxInt64/unit) || time.Duration(n)*unit > math.MaxInt64-total {
			return 0, "", fmt.Errorf("window %q is too large", strings.TrimSpace(input))
		}
		total += time.Duration(n) * unit
		remaining = remaining[len(m[0]):]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("window must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders d with the largest units first, dropping seconds.
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range units {
		if d < u.value {
			continue
		}
		n := d / u.value
		d -= n * u.value
		fmt.Fprintf(&b, "%d%s", n, u.spellings[0])
	}
	if b.Len() == 0 {
		return "0m"
	}
	return b.String()
}
