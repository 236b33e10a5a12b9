package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

// FormatDuration renders seconds as "1h 05m", "12m 30s" or "45s".
// Non-positive durations render as "".
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatCount abbreviates a count with K/M/B suffixes: 950, 1.2K, 3.4M, 1.1B.
func FormatCount(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return abbreviate(n, 1_000_000_000, "B")
	case n >= 1_000_000:
		return abbreviate(n, 1_000_000, "M")
	case n >= 1_000:
		return abbreviate(n, 1_000, "K")
	default:
		return strconv.FormatInt(n, 10)
	}
}

// abbreviate truncates to one decimal so 999_999 never rounds up to "1000.0K".
func abbreviate(n, unit int64, suffix string) string {
	tenths := n * 10 / unit
	if tenths%10 == 0 {
		return strconv.FormatInt(tenths/10, 10) + suffix
	}
	return fmt.Sprintf("%d.%d%s", tenths/10, tenths%10, suffix)
}

// QualityLabel maps a composite score to a coarse label.
func QualityLabel(composite float64, thresholds domain.LabelThresholds) string {
	switch {
	case composite >= thresholds.HighlyRecommended:
		return domain.LabelHighlyRecommended
	case composite >= thresholds.Recommended:
		return domain.LabelRecommended
	default:
		return domain.LabelGoodResource
	}
}

// Present fills the display-only fields of ranked resources in place.
func Present(resources []domain.Resource, thresholds domain.LabelThresholds) {
	for i := range resources {
		r := &resources[i]
		if r.DurationSeconds != nil {
			r.DurationText = FormatDuration(*r.DurationSeconds)
		}
		if r.Views != nil {
			r.ViewsText = FormatCount(*r.Views)
		}
		r.QualityLabel = QualityLabel(r.CompositeScore, thresholds)
	}
}
