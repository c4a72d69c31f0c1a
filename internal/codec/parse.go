package codec

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePace parses a pace string ("5:00" or "4:30-5:00") into COROS
// intensity values, seconds per km multiplied by 1000. A single value sets
// low == high. Bounds are kept in the order given; no low <= high check is
// made because the upstream service accepts either order.
func ParsePace(s string) (low, high int, err error) {
	parts := strings.Split(s, "-")
	if len(parts) > 2 {
		return 0, 0, fmt.Errorf("%w: pace %q, use \"M:SS\" or \"M:SS-M:SS\"", ErrMalformedRange, s)
	}
	values := make([]int, 0, 2)
	for _, part := range parts {
		v, err := paceToMillis(strings.TrimSpace(part))
		if err != nil {
			return 0, 0, err
		}
		values = append(values, v)
	}
	if len(values) == 1 {
		return values[0], values[0], nil
	}
	return values[0], values[1], nil
}

// ParseHeartRate parses a heart rate string ("150" or "150-160") into BPM
// values. A single value sets low == high. As with ParsePace, bound order
// is preserved as given.
func ParseHeartRate(s string) (low, high int, err error) {
	parts := strings.Split(s, "-")
	if len(parts) > 2 {
		return 0, 0, fmt.Errorf("%w: heart rate %q, use \"BPM\" or \"BPM-BPM\"", ErrMalformedRange, s)
	}
	values := make([]int, 0, 2)
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: heart rate %q, must be an integer BPM", ErrMalformedRange, strings.TrimSpace(part))
		}
		values = append(values, v)
	}
	if len(values) == 1 {
		return values[0], values[0], nil
	}
	return values[0], values[1], nil
}

// paceToMillis converts "M:SS" to sec/km x 1000.
func paceToMillis(s string) (int, error) {
	mins, secs, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("%w: pace %q, use \"M:SS\"", ErrMalformedRange, s)
	}
	m, err := strconv.Atoi(mins)
	if err != nil {
		return 0, fmt.Errorf("%w: pace %q, use \"M:SS\"", ErrMalformedRange, s)
	}
	sec, err := strconv.Atoi(secs)
	if err != nil {
		return 0, fmt.Errorf("%w: pace %q, use \"M:SS\"", ErrMalformedRange, s)
	}
	return (m*60 + sec) * 1000, nil
}

// FormatPace renders seconds per km as "M:SS".
func FormatPace(secPerKM float64) string {
	sec := int(secPerKM)
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}

// FormatDuration renders seconds as a compact human-readable duration,
// e.g. "1h01m01s", "25m30s", "45s".
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "0s"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
