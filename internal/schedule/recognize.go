package schedule

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	intervalRe = regexp.MustCompile(`^every\s+(\d+)\s*(minute|hour|day)s?(?:\s*at\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)?)?$`)
	weekdayRe  = regexp.MustCompile(`^every\s*(monday|tuesday|wednesday|thursday|friday|saturday|sunday)(?:\s*at\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)?)?$`)
	dailyRe    = regexp.MustCompile(`^every\s+day(?:\s*at\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)?)?$`)
	spaceRe    = regexp.MustCompile(`\s+`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var (
	errTwelveHour = errors.New("Invalid hour: Must be 1-12 with AM/PM")
	errMinute     = errors.New("Invalid minute: Must be 0-59")
	errPhrase     = errors.New(UnsupportedPhrase)
)

// matcher returns ok=false when the phrase is not its shape; an error means
// the shape matched but a field is out of range.
type matcher func(phrase string) (Descriptor, bool, error)

// matchers run in priority order, first hit wins.
var matchers = []matcher{
	matchEveryMinute,
	matchInterval,
	matchWeekday,
	matchDaily,
}

// Normalize trims, lower-cases and collapses whitespace.
func Normalize(phrase string) string {
	return spaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(phrase)), " ")
}

// Recognize maps a free-text schedule phrase to a Descriptor.
func Recognize(phrase string) (Descriptor, error) {
	clean := Normalize(phrase)
	if clean == "" {
		return Descriptor{}, ErrEmptyPhrase
	}
	if strings.HasPrefix(clean, "every") {
		for _, m := range matchers {
			d, ok, err := m(clean)
			if err != nil {
				return Descriptor{}, recognitionErr(phrase, err)
			}
			if ok {
				if err := d.Validate(); err != nil {
					return Descriptor{}, recognitionErr(phrase, err)
				}
				return d, nil
			}
		}
	}
	return Descriptor{}, recognitionErr(phrase, errPhrase)
}

func matchEveryMinute(phrase string) (Descriptor, bool, error) {
	if phrase != "every minute" {
		return Descriptor{}, false, nil
	}
	return Descriptor{Kind: KindIntervalMinutes, Value: 1}, true, nil
}

func matchInterval(phrase string) (Descriptor, bool, error) {
	m := intervalRe.FindStringSubmatch(phrase)
	if m == nil {
		return Descriptor{}, false, nil
	}
	value, err := strconv.Atoi(m[1])
	if err != nil {
		// only overflow gets here; treat it as out of bound for the unit
		value = -1
	}

	hasTime := m[3] != ""
	hour, minute := 0, 0
	if hasTime {
		hour, _ = strconv.Atoi(m[3])
		if m[4] != "" {
			minute, _ = strconv.Atoi(m[4])
		}
		hour = applyPeriod(hour, m[5])
		if err := validTimeOfDay(hour, minute); err != nil {
			return Descriptor{}, true, err
		}
	}

	switch m[2] {
	case "minute":
		// a time clause is accepted but has no effect on minute intervals
		return Descriptor{Kind: KindIntervalMinutes, Value: value}, true, nil
	case "hour":
		return Descriptor{Kind: KindIntervalHours, Value: value}, true, nil
	default:
		if hasTime {
			return Descriptor{Kind: KindIntervalDaysAtTime, Value: value, Hour: hour, Minute: minute}, true, nil
		}
		return Descriptor{Kind: KindIntervalDays, Value: value}, true, nil
	}
}

func matchWeekday(phrase string) (Descriptor, bool, error) {
	m := weekdayRe.FindStringSubmatch(phrase)
	if m == nil {
		return Descriptor{}, false, nil
	}
	hour, minute, err := twelveHourClock(m[2], m[3], m[4])
	if err != nil {
		return Descriptor{}, true, err
	}
	return Descriptor{Kind: KindWeeklyOnDay, DayOfWeek: weekdays[m[1]], Hour: hour, Minute: minute}, true, nil
}

func matchDaily(phrase string) (Descriptor, bool, error) {
	m := dailyRe.FindStringSubmatch(phrase)
	if m == nil {
		return Descriptor{}, false, nil
	}
	hour, minute, err := twelveHourClock(m[1], m[2], m[3])
	if err != nil {
		return Descriptor{}, true, err
	}
	return Descriptor{Kind: KindDailyAtTime, Hour: hour, Minute: minute}, true, nil
}

// twelveHourClock reads an optional "H[:MM] [am|pm]" clause. Without a clause
// the time is midnight; with one the hour must be written on a 12-hour dial.
func twelveHourClock(rawHour, rawMinute, period string) (int, int, error) {
	hour, minute := 0, 0
	if rawMinute != "" {
		minute, _ = strconv.Atoi(rawMinute)
	}
	if rawHour != "" {
		hour, _ = strconv.Atoi(rawHour)
		if hour < 1 || hour > 12 {
			return 0, 0, errTwelveHour
		}
	}
	if minute > 59 {
		return 0, 0, errMinute
	}
	return applyPeriod(hour, period), minute, nil
}

func applyPeriod(hour int, period string) int {
	switch period {
	case "pm":
		if hour < 12 {
			return hour + 12
		}
	case "am":
		if hour == 12 {
			return 0
		}
	}
	return hour
}
