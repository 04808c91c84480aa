package timefmt

import (
	"testing"
	"time"
)

func TestUTCOffsetAndRelativeOffset(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	kolkata := time.FixedZone("IST", 5*3600+30*60)
	la := time.FixedZone("PST", -8*3600)

	if got := UTCOffset(kolkata, at); got != "UTC+05:30" {
		t.Fatalf("UTCOffset(IST) = %q", got)
	}
	if got := UTCOffset(la, at); got != "UTC-08:00" {
		t.Fatalf("UTCOffset(PST) = %q", got)
	}
	if got := UTCOffset(time.UTC, at); got != "UTC+00:00" {
		t.Fatalf("UTCOffset(UTC) = %q", got)
	}
	if got := RelativeOffset(kolkata, time.UTC, at); got != "+5:30h" {
		t.Fatalf("RelativeOffset(IST, UTC) = %q", got)
	}
	if got := RelativeOffset(la, time.UTC, at); got != "-8h" {
		t.Fatalf("RelativeOffset(PST, UTC) = %q", got)
	}
	if got := RelativeOffset(la, la, at); got != "+0h" {
		t.Fatalf("RelativeOffset(PST, PST) = %q", got)
	}
	if got := OffsetBetween(kolkata, la, at); got != 13*time.Hour+30*time.Minute {
		t.Fatalf("OffsetBetween = %v", got)
	}
}

func TestFormatOffset(t *testing.T) {
	t.Parallel()
	for d, want := range map[time.Duration]string{
		14 * time.Hour:                  "+14h",
		-(3*time.Hour + 30*time.Minute): "-3:30h",
		5*time.Hour + 45*time.Minute:    "+5:45h",
		0:                               "+0h",
	} {
		if got := FormatOffset(d); got != want {
			t.Fatalf("FormatOffset(%v) = %q, want %q", d, got, want)
		}
	}
}
