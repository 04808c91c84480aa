package timefmt

import (
	"errors"
	"testing"
	"time"

	apperrors "vclock/internal/platform/errors"
)

func TestConvertTo24Hour(t *testing.T) {
	t.Parallel()
	cases := []struct {
		hour int
		m    Meridian
		want int
	}{
		{12, AM, 0},
		{12, PM, 12},
		{1, AM, 1},
		{1, PM, 13},
		{11, PM, 23},
	}
	for _, tc := range cases {
		if got := ConvertTo24Hour(tc.hour, tc.m); got != tc.want {
			t.Fatalf("ConvertTo24Hour(%d, %s) = %d, want %d", tc.hour, tc.m, got, tc.want)
		}
	}
}

func TestConvertTo12Hour(t *testing.T) {
	t.Parallel()
	cases := map[int]Hour12{
		0:  {12, AM},
		7:  {7, AM},
		12: {12, PM},
		13: {1, PM},
		23: {11, PM},
	}
	for in, want := range cases {
		if got := ConvertTo12Hour(in); got != want {
			t.Fatalf("ConvertTo12Hour(%d) = %+v, want %+v", in, got, want)
		}
	}
	for h := 0; h < 24; h++ {
		r := ConvertTo12Hour(h)
		if back := ConvertTo24Hour(r.Hour, r.Meridian); back != h {
			t.Fatalf("round trip %d -> %+v -> %d", h, r, back)
		}
	}
}

func TestParseMeridian(t *testing.T) {
	t.Parallel()
	if m, err := ParseMeridian(" pm "); err != nil || m != PM {
		t.Fatalf("ParseMeridian(pm) = %q, %v", m, err)
	}
	if _, err := ParseMeridian("noon"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFormatClock(t *testing.T) {
	t.Parallel()
	if got := FormatClock(0, 5, 9, false); got != "12:05:09 AM" {
		t.Fatalf("12h midnight: %q", got)
	}
	if got := FormatClock(13, 0, 0, true); got != "13:00:00" {
		t.Fatalf("24h: %q", got)
	}
	ts := time.Date(2026, 3, 1, 15, 4, 5, 0, time.UTC)
	if got := FormatZoneTime(ts, false); got != "3:04:05 PM" {
		t.Fatalf("zone 12h: %q", got)
	}
	if got := FormatDate(ts); got != "Sunday, March 1, 2026" {
		t.Fatalf("date: %q", got)
	}
}

func TestFormatMilliseconds(t *testing.T) {
	t.Parallel()
	cases := []struct {
		ms        int64
		precision int
		want      string
	}{
		{3723004, 3, "01:02:03.004"},
		{1500, 1, "00:01.5"},
		{1500, 0, "00:01"},
		{-5, 2, "00:00.00"},
	}
	for _, tc := range cases {
		if got := FormatMilliseconds(tc.ms, tc.precision); got != tc.want {
			t.Fatalf("FormatMilliseconds(%d, %d) = %q, want %q", tc.ms, tc.precision, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	cases := map[int64]string{
		0:     "0s",
		59:    "59s",
		3600:  "1h",
		93784: "1d 2h 3m 4s",
	}
	for in, want := range cases {
		if got := FormatDuration(in); got != want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestTimeUntil(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := TimeUntil(now.Add(-time.Minute), now); got != (Breakdown{}) {
		t.Fatalf("past target must clamp to zero, got %+v", got)
	}
	got := TimeUntil(now.Add(90061*time.Second+500*time.Millisecond), now)
	want := Breakdown{Days: 1, Hours: 1, Minutes: 1, Seconds: 1, TotalSeconds: 90061}
	if got != want {
		t.Fatalf("TimeUntil = %+v, want %+v", got, want)
	}
}
