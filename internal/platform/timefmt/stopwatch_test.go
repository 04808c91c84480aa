package timefmt

import (
	"errors"
	"testing"

	apperrors "vclock/internal/platform/errors"
)

func TestFormatStopwatch(t *testing.T) {
	t.Parallel()
	cases := []struct {
		ms        int64
		precision int
		want      string
	}{
		{3661000, 0, "1:01:01"},
		{3661234, 3, "1:01:01.234"},
		{61234, 3, "01:01.234"},
		{61234, 2, "01:01.23"},
		{61234, 1, "01:01.2"},
		{0, 2, "00:00.00"},
		{36000000, 0, "10:00:00"},
	}
	for _, tc := range cases {
		if got := FormatStopwatch(tc.ms, tc.precision); got != tc.want {
			t.Fatalf("FormatStopwatch(%d, %d) = %q, want %q", tc.ms, tc.precision, got, tc.want)
		}
	}
}

func TestParseLapTimeRoundTrip(t *testing.T) {
	t.Parallel()
	for _, ms := range []int64{0, 1, 999, 59_999, 60_000, 3_599_999, 3_600_000, 3_661_001, 123_456_789} {
		formatted := FormatStopwatch(ms, 3)
		got, err := ParseLapTime(formatted)
		if err != nil {
			t.Fatalf("ParseLapTime(%q): %v", formatted, err)
		}
		if got != ms {
			t.Fatalf("round trip %d -> %q -> %d", ms, formatted, got)
		}
	}
}

func TestParseLapTimeShortForms(t *testing.T) {
	t.Parallel()
	cases := map[string]int64{
		"1:23.45": 83_450,
		"42":      42_000,
		"00:01.5": 1_500,
		"75:00":   4_500_000,
		"90":      90_000,
	}
	for in, want := range cases {
		got, err := ParseLapTime(in)
		if err != nil || got != want {
			t.Fatalf("ParseLapTime(%q) = %d, %v; want %d", in, got, err, want)
		}
	}
	for _, bad := range []string{"", "a:b", "1:2:3:4", "00:01.", "00:01.1234", "+5", "-5", "1.+5", "1:-05", " 1: 05", "1:75:00", "1:00:60", "00:60", "1::00"} {
		if _, err := ParseLapTime(bad); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("ParseLapTime(%q) expected ErrInvalidInput, got %v", bad, err)
		}
	}
}

func TestFormatLapDifference(t *testing.T) {
	t.Parallel()
	if got := FormatLapDifference(1500, 1000); got != "+00:00.50" {
		t.Fatalf("slower lap: %q", got)
	}
	if got := FormatLapDifference(1000, 1500); got != "-00:00.50" {
		t.Fatalf("faster lap: %q", got)
	}
	if got := FormatLapDifference(1000, 1000); got != "+00:00.00" {
		t.Fatalf("equal lap: %q", got)
	}
}
