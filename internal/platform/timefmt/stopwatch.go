package timefmt

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "vclock/internal/platform/errors"
)

// FormatStopwatch renders elapsed milliseconds as H:MM:SS when an hour has
// passed and MM:SS otherwise, followed by 0-3 fractional digits.
func FormatStopwatch(ms int64, precision int) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3_600_000
	minutes := (ms % 3_600_000) / 60_000
	seconds := (ms % 60_000) / 1000
	millis := ms % 1000

	var out string
	if hours > 0 {
		out = fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	} else {
		out = fmt.Sprintf("%02d:%02d", minutes, seconds)
	}
	switch clampPrecision(precision) {
	case 3:
		out += fmt.Sprintf(".%03d", millis)
	case 2:
		out += fmt.Sprintf(".%02d", millis/10)
	case 1:
		out += fmt.Sprintf(".%d", millis/100)
	}
	return out
}

// ParseLapTime is the inverse of FormatStopwatch. It accepts SS, MM:SS and
// H:MM:SS with an optional 1-3 digit fraction. Only the leading field may
// exceed 59.
func ParseLapTime(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("lap time is empty: %w", apperrors.ErrInvalidInput)
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("lap time %q: %w", s, apperrors.ErrInvalidInput)
	}
	last := parts[len(parts)-1]
	secPart, fracPart, hasFrac := strings.Cut(last, ".")
	parts[len(parts)-1] = secPart

	weights := []int64{1000, 60_000, 3_600_000}
	var ms int64
	for i := len(parts) - 1; i >= 0; i-- {
		n, err := parseDigits(parts[i])
		if err != nil || (i > 0 && n >= 60) {
			return 0, fmt.Errorf("lap time %q: %w", s, apperrors.ErrInvalidInput)
		}
		ms += n * weights[len(parts)-1-i]
	}
	if hasFrac {
		if len(fracPart) == 0 || len(fracPart) > 3 {
			return 0, fmt.Errorf("lap time %q: %w", s, apperrors.ErrInvalidInput)
		}
		n, err := parseDigits(fracPart)
		if err != nil {
			return 0, fmt.Errorf("lap time %q: %w", s, apperrors.ErrInvalidInput)
		}
		for i := len(fracPart); i < 3; i++ {
			n *= 10
		}
		ms += n
	}
	return ms, nil
}

// parseDigits is strconv.ParseInt without the sign prefixes.
func parseDigits(field string) (int64, error) {
	if field == "" || strings.TrimLeft(field, "0123456789") != "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(field, 10, 64)
}

// FormatLapDifference renders lapTime-comparison with a sign and
// centisecond precision, e.g. "+00:01.25" or "-00:00.50".
func FormatLapDifference(lapTime, comparison int64) string {
	diff := lapTime - comparison
	sign := "+"
	if diff < 0 {
		sign = "-"
		diff = -diff
	}
	return sign + FormatStopwatch(diff, 2)
}
