package timefmt

import (
	"fmt"
	"time"
)

// UTCOffset renders the offset of loc at the given instant as "UTC+05:30".
func UTCOffset(loc *time.Location, at time.Time) string {
	_, offset := at.In(loc).Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, offset/3600, (offset%3600)/60)
}

// RelativeOffset renders how far loc is ahead of ref, e.g. "+5:30h", "-8h"
// or "+0h".
func RelativeOffset(loc, ref *time.Location, at time.Time) string {
	return FormatOffset(OffsetBetween(loc, ref, at))
}

// FormatOffset renders a zone difference in hours, with minutes when the
// difference is not whole: "+14h", "-3:30h".
func FormatOffset(diff time.Duration) string {
	minutes := int(diff / time.Minute)
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%s%dh", sign, minutes/60)
	}
	return fmt.Sprintf("%s%d:%02dh", sign, minutes/60, minutes%60)
}

// OffsetBetween is the wall-clock difference between loc and ref at the
// given instant.
func OffsetBetween(loc, ref *time.Location, at time.Time) time.Duration {
	_, a := at.In(loc).Zone()
	_, b := at.In(ref).Zone()
	return time.Duration(a-b) * time.Second
}
