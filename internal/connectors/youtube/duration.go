package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

// isoDuration matches the subset of ISO-8601 durations YouTube emits,
// e.g. "PT1H2M10S", "PT45S" or "P1DT2H".
var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseDuration converts an ISO-8601 video duration into seconds.
// Live streams report "P0D", which parses to zero.
func ParseDuration(s string) (int, error) {
	m := isoDuration.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "PT" {
		return 0, fmt.Errorf("invalid ISO-8601 duration %q", s)
	}

	units := [...]int{86400, 3600, 60, 1}
	total := 0
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, fmt.Errorf("invalid ISO-8601 duration %q: %w", s, err)
		}
		total += n * unit
	}
	return total, nil
}
