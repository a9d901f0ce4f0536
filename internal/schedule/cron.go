package schedule

import (
	"fmt"
	"strings"
	"time"

	robcron "github.com/robfig/cron/v3"
)

// DefaultTimezone is used when no zone is given.
const DefaultTimezone = "UTC"

// RunTimeLayout renders run times en-US style, e.g. "3/16/2026, 9:00:00 AM".
const RunTimeLayout = "1/2/2006, 3:04:05 PM"

var parser = robcron.NewParser(
	robcron.SecondOptional | robcron.Minute | robcron.Hour | robcron.Dom | robcron.Month | robcron.Dow | robcron.Descriptor,
)

// LoadLocation resolves an IANA zone name; blank means UTC.
func LoadLocation(raw string) (*time.Location, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		name = DefaultTimezone
	}
	if strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &TimezoneError{Name: name, Cause: err}
	}
	return loc, nil
}

// Parse parses a five-field expression, a six-field one with leading
// seconds, or an @descriptor.
func Parse(expr string) (sched robcron.Schedule, err error) {
	text := strings.TrimSpace(expr)
	if text == "" {
		return nil, fmt.Errorf("cron expression is empty")
	}
	defer func() {
		if r := recover(); r != nil {
			sched = nil
			err = fmt.Errorf("parse cron expr %q: %v", text, r)
		}
	}()
	sched, err = parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse cron expr: %w", err)
	}
	return sched, nil
}

// Validate reports whether expr parses and has an upcoming occurrence in tz.
func Validate(expr string, tz string) bool {
	return validateAt(expr, tz, time.Now())
}

func validateAt(expr string, tz string, now time.Time) bool {
	loc, err := LoadLocation(tz)
	if err != nil {
		return false
	}
	sched, err := Parse(expr)
	if err != nil {
		return false
	}
	return !sched.Next(now.In(loc)).IsZero()
}

// NextRuns returns up to count occurrences strictly after now, ascending,
// in the zone tz. Any failure yields an empty slice.
func NextRuns(expr string, count int, tz string, now time.Time) []time.Time {
	if count <= 0 {
		return []time.Time{}
	}
	loc, err := LoadLocation(tz)
	if err != nil {
		return []time.Time{}
	}
	sched, err := Parse(expr)
	if err != nil {
		return []time.Time{}
	}
	out := make([]time.Time, 0, count)
	cursor := now.In(loc)
	for len(out) < count {
		next := sched.Next(cursor)
		if next.IsZero() || !next.After(cursor) {
			break
		}
		out = append(out, next.In(loc))
		cursor = next
	}
	return out
}

// FormatRunTime renders t in its own location using RunTimeLayout.
func FormatRunTime(t time.Time) string {
	return t.Format(RunTimeLayout)
}

// FormatRunTimes formats each time with FormatRunTime.
func FormatRunTimes(times []time.Time) []string {
	out := make([]string, 0, len(times))
	for _, t := range times {
		out = append(out, FormatRunTime(t))
	}
	return out
}
