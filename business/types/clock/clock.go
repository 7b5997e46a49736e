// Package clock provides the calendar date and time of day value types used
// to describe a reservation slot.
package clock

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is returned when a range does not start strictly before
// it ends.
var ErrInvalidRange = errors.New("start time must be before end time")

const (
	dateLayout = "2006-01-02"

	minutesPerDay = 24 * 60
	endOfDay      = "24:00"
)

// Date represents a calendar date without a time of day or location.
type Date struct {
	t time.Time
}

// ParseDate parses an ISO YYYY-MM-DD value.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", value)
	}

	return Date{t}, nil
}

// MustParseDate parses the value and panics if it is not a date.
func MustParseDate(value string) Date {
	d, err := ParseDate(value)
	if err != nil {
		panic(err)
	}

	return d
}

// DateOf returns the calendar date of t in its own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return d.t
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before reports whether d comes before d2.
func (d Date) Before(d2 Date) bool {
	return d.t.Before(d2.t)
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return Date{d.t.AddDate(0, 0, n)}
}

// String returns the ISO form of the date.
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// Equal provides support for the go-cmp package and testing.
func (d Date) Equal(d2 Date) bool {
	return d.t.Equal(d2.t)
}

// MarshalText provides support for logging and any marshal needs.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// =============================================================================

// Time represents a time of day with minute resolution.
type Time struct {
	minutes int
}

// ParseTime parses an ISO HH:MM or HH:MM:SS value. Seconds are accepted
// only when zero. 24:00 is the end of the day; a range rejects it as a start
// because nothing comes after it.
func ParseTime(value string) (Time, error) {
	if value == endOfDay || value == endOfDay+":00" {
		return Time{minutesPerDay}, nil
	}

	var t time.Time
	var err error

	switch len(value) {
	case len("15:04"):
		t, err = time.Parse("15:04", value)
	case len("15:04:05"):
		t, err = time.Parse("15:04:05", value)
	default:
		return Time{}, fmt.Errorf("invalid time %q", value)
	}

	if err != nil {
		return Time{}, fmt.Errorf("invalid time %q", value)
	}

	if t.Second() != 0 {
		return Time{}, fmt.Errorf("invalid time %q: seconds are not supported", value)
	}

	return Time{t.Hour()*60 + t.Minute()}, nil
}

// MustParseTime parses the value and panics if it is not a time of day.
func MustParseTime(value string) Time {
	t, err := ParseTime(value)
	if err != nil {
		panic(err)
	}

	return t
}

// FromMinutes builds a Time from the number of minutes since midnight, up to
// and including 24:00.
func FromMinutes(minutes int) (Time, error) {
	if minutes < 0 || minutes > minutesPerDay {
		return Time{}, fmt.Errorf("invalid minutes %d", minutes)
	}

	return Time{minutes}, nil
}

// Minutes returns the number of minutes since midnight.
func (t Time) Minutes() int {
	return t.minutes
}

// Before reports whether t comes before t2.
func (t Time) Before(t2 Time) bool {
	return t.minutes < t2.minutes
}

// String returns the HH:MM form of the time.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// Equal provides support for the go-cmp package and testing.
func (t Time) Equal(t2 Time) bool {
	return t.minutes == t2.minutes
}

// MarshalText provides support for logging and any marshal needs.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// =============================================================================

// Range is a half-open [Start, End) interval within a single day.
type Range struct {
	Start Time
	End   Time
}

// NewRange constructs a range, requiring start to be strictly before end.
func NewRange(start Time, end Time) (Range, error) {
	if !start.Before(end) {
		return Range{}, fmt.Errorf("%s-%s: %w", start, end, ErrInvalidRange)
	}

	return Range{Start: start, End: end}, nil
}

// MustNewRange constructs a range and panics if it is invalid.
func MustNewRange(start string, end string) Range {
	r, err := NewRange(MustParseTime(start), MustParseTime(end))
	if err != nil {
		panic(err)
	}

	return r
}

// Overlaps reports whether the two ranges share any instant. Ranges that
// only touch at an endpoint do not overlap.
func (r Range) Overlaps(o Range) bool {
	return r.Start.minutes < o.End.minutes && o.Start.minutes < r.End.minutes
}

// Duration returns the length of the range.
func (r Range) Duration() time.Duration {
	return time.Duration(r.End.minutes-r.Start.minutes) * time.Minute
}

// String returns the range as HH:MM-HH:MM.
func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}
