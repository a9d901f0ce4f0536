package schedule

import (
	"errors"
	"fmt"
	"time"
)

// Kind identifies what a recognised phrase asks for.
type Kind int

const (
	KindIntervalMinutes Kind = iota + 1
	KindIntervalHours
	KindIntervalDays
	KindIntervalDaysAtTime
	KindWeeklyOnDay
	KindDailyAtTime
)

func (k Kind) String() string {
	switch k {
	case KindIntervalMinutes:
		return "interval-minutes"
	case KindIntervalHours:
		return "interval-hours"
	case KindIntervalDays:
		return "interval-days"
	case KindIntervalDaysAtTime:
		return "interval-days-at-time"
	case KindWeeklyOnDay:
		return "weekly-on-day"
	case KindDailyAtTime:
		return "daily-at-time"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Descriptor is the intermediate form between a phrase and a cron expression.
// Value is only meaningful for interval kinds; Hour and Minute for kinds
// that carry a time of day; DayOfWeek for KindWeeklyOnDay.
type Descriptor struct {
	Kind      Kind         `json:"kind"`
	Value     int          `json:"value,omitempty"`
	Hour      int          `json:"hour"`
	Minute    int          `json:"minute"`
	DayOfWeek time.Weekday `json:"day_of_week,omitempty"`
}

// Interval bounds per unit.
const (
	MaxMinuteInterval = 59
	MaxHourInterval   = 23
	MaxDayInterval    = 31
)

var (
	errMinuteInterval = errors.New("Minute interval must be 1-59")
	errHourInterval   = errors.New("Hour interval must be 1-23")
	errDayInterval    = errors.New("Day interval must be 1-31")
	errTimeOfDay      = errors.New("Invalid time: Hour must be 0-23 and minute 0-59")
)

// Validate reports the first bound a descriptor violates.
func (d Descriptor) Validate() error {
	switch d.Kind {
	case KindIntervalMinutes:
		if d.Value < 1 || d.Value > MaxMinuteInterval {
			return errMinuteInterval
		}
	case KindIntervalHours:
		if d.Value < 1 || d.Value > MaxHourInterval {
			return errHourInterval
		}
	case KindIntervalDays:
		if d.Value < 1 || d.Value > MaxDayInterval {
			return errDayInterval
		}
	case KindIntervalDaysAtTime:
		if d.Value < 1 || d.Value > MaxDayInterval {
			return errDayInterval
		}
		return validTimeOfDay(d.Hour, d.Minute)
	case KindWeeklyOnDay:
		if d.DayOfWeek < time.Sunday || d.DayOfWeek > time.Saturday {
			return fmt.Errorf("invalid day of week: %d", int(d.DayOfWeek))
		}
		return validTimeOfDay(d.Hour, d.Minute)
	case KindDailyAtTime:
		return validTimeOfDay(d.Hour, d.Minute)
	default:
		return fmt.Errorf("unknown schedule kind: %s", d.Kind)
	}
	return nil
}

func validTimeOfDay(hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return errTimeOfDay
	}
	return nil
}
