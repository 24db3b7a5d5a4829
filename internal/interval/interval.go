// Package interval provides the validated [start, end) time span shared
// by tasks and subtasks, with the YYYY-MM-DDTHH:MM wire format.
package interval

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/crewtide/crewplan/internal/clierr"
	"github.com/crewtide/crewplan/internal/date"
)

// Format is the wire format for interval endpoints. All values are naive
// local wall-clock times; no timezone conversion is ever applied.
const Format = "2006-01-02T15:04"

// DisplayFormat is the human-readable form used in tables and detail views.
const DisplayFormat = "2006-01-02 15:04"

// Time is a minute-resolution wall-clock time that marshals as
// YYYY-MM-DDTHH:MM.
type Time struct {
	time.Time
}

// ParseTime parses a YYYY-MM-DDTHH:MM string.
func ParseTime(s string) (Time, error) {
	t, err := time.Parse(Format, s)
	if err != nil {
		return Time{}, fmt.Errorf("invalid time %q: expected YYYY-MM-DDTHH:MM", s)
	}
	return Time{t}, nil
}

// At builds a Time from calendar and clock components.
func At(year int, month time.Month, day, hour, minute int) Time {
	return Time{time.Date(year, month, day, hour, minute, 0, 0, time.UTC)}
}

// String returns the time in wire format.
func (t Time) String() string {
	return t.Format(Format)
}

// Display returns the time in human-readable form.
func (t Time) Display() string {
	return t.Format(DisplayFormat)
}

// Date returns the calendar date the time falls on.
func (t Time) Date() date.Date {
	return date.Of(t.Time)
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Interval is a half-open [start, end) span. A zero Interval is invalid;
// construct through New or validate with Validate after decoding.
type Interval struct {
	Start Time `json:"start"`
	End   Time `json:"end"`
}

// New creates an Interval, rejecting zero-length or inverted spans.
func New(start, end Time) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// Parse builds an Interval from two wire-format strings.
func Parse(start, end string) (Interval, error) {
	s, err := ParseTime(start)
	if err != nil {
		return Interval{}, clierr.Newf(clierr.InvalidDate, "invalid start: %v", err).
			WithDetails(map[string]any{"field": "start", "input": start})
	}
	e, err := ParseTime(end)
	if err != nil {
		return Interval{}, clierr.Newf(clierr.InvalidDate, "invalid end: %v", err).
			WithDetails(map[string]any{"field": "end", "input": end})
	}
	return New(s, e)
}

// Validate checks the start < end invariant.
func (iv Interval) Validate() error {
	if !iv.Start.Before(iv.End.Time) {
		return clierr.Newf(clierr.InvalidInterval,
			"interval start %s must be before end %s", iv.Start, iv.End).
			WithDetails(map[string]any{
				"start": iv.Start.String(),
				"end":   iv.End.String(),
			})
	}
	return nil
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching endpoints (a.End == b.Start) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End.Time) && other.Start.Before(iv.End.Time)
}

// Contains reports whether other lies fully within iv.
func (iv Interval) Contains(other Interval) bool {
	return !other.Start.Before(iv.Start.Time) && !other.End.After(iv.End.Time)
}

// OverlapsDate reports whether the interval touches any portion of the
// given calendar day's 24-hour window.
func (iv Interval) OverlapsDate(d date.Date) bool {
	dayStart := d.Time
	dayEnd := d.Next().Time
	return iv.Start.Before(dayEnd) && dayStart.Before(iv.End.Time)
}

// Days returns every calendar date the interval touches, in order.
// An interval ending exactly at midnight does not touch the ending day.
func (iv Interval) Days() []date.Date {
	var days []date.Date
	for d := iv.Start.Date(); d.Time.Before(iv.End.Time); d = d.Next() {
		days = append(days, d)
	}
	return days
}

// String returns the interval as "start – end" in display form.
func (iv Interval) String() string {
	return iv.Start.Display() + " – " + iv.End.Display()
}
