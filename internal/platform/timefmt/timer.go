package timefmt

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "vclock/internal/platform/errors"
)

// FormatTimerDisplay renders remaining milliseconds as HH:MM:SS, or MM:SS
// under an hour.
func FormatTimerDisplay(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

type HMS struct {
	Hours   int
	Minutes int
	Seconds int
}

// ParseTimerInput reads "90" as seconds, "5:30" as minutes and seconds and
// "1:30:00" as hours, minutes and seconds.
func ParseTimerInput(input string) (HMS, error) {
	fields := strings.Split(strings.TrimSpace(input), ":")
	nums := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 0 {
			return HMS{}, fmt.Errorf("timer input %q: %w", input, apperrors.ErrInvalidInput)
		}
		nums[i] = n
	}
	switch len(nums) {
	case 1:
		return HMS{Seconds: nums[0]}, nil
	case 2:
		return HMS{Minutes: nums[0], Seconds: nums[1]}, nil
	case 3:
		return HMS{Hours: nums[0], Minutes: nums[1], Seconds: nums[2]}, nil
	}
	return HMS{}, fmt.Errorf("timer input %q: %w", input, apperrors.ErrInvalidInput)
}
