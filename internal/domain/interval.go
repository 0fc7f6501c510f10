package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateTime is returned for unparseable date or date-time input
var ErrInvalidDateTime = errors.New("domain: invalid date-time")

// Interval is a [Start, End) time range
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two ranges conflict.
// Touching ranges ([0,10) and [10,20)) do not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Overlaps reports whether i conflicts with other
func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i.Start, i.End, other.Start, other.End)
}

// IsValid requires Start strictly before End
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

var dateTimeLayouts = []string{
	DateTimeFormat,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DateFormat,
}

// ParseDateTime parses an ISO-like date or date-time in loc.
// Inputs carrying an offset (RFC 3339) are converted to loc.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDateTime)
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
}

// ParseDate parses YYYY-MM-DD as midnight in loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
	}
	return t, nil
}

// FormatDateTime renders t as a naive local timestamp
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeFormat)
}

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextDay returns midnight of the following calendar day
func NextDay(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, day.Location())
}

// DateBefore reports whether a's calendar date is before b's
func DateBefore(a, b time.Time) bool {
	return dateKey(a) < dateKey(b)
}

func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// WallDuration is the distance between two timestamps read as wall clock values,
// so a DST switch between them does not add or drop an hour.
func WallDuration(start, end time.Time) time.Duration {
	return wallUTC(end).Sub(wallUTC(start))
}

func wallUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// EachDay yields midnight of every calendar day from from's date to to's date, both inclusive
func EachDay(from, to time.Time, yield func(day time.Time) bool) {
	to = to.In(from.Location())
	for day := StartOfDay(from); !DateBefore(to, day); day = NextDay(day) {
		if !yield(day) {
			return
		}
	}
}

// WallClockIn reinterprets t's wall clock reading in loc.
// Used for naive timestamps read back from storage.
func WallClockIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
