package schedule

import (
	"fmt"
)

// Build renders a Descriptor as a five-field cron expression
// (minute hour day-of-month month day-of-week).
func Build(d Descriptor) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	switch d.Kind {
	case KindIntervalMinutes:
		return fmt.Sprintf("*/%d * * * *", d.Value), nil
	case KindIntervalHours:
		return fmt.Sprintf("0 */%d * * *", d.Value), nil
	case KindIntervalDays:
		return fmt.Sprintf("0 0 */%d * *", d.Value), nil
	case KindIntervalDaysAtTime:
		return fmt.Sprintf("%d %d */%d * *", d.Minute, d.Hour, d.Value), nil
	case KindWeeklyOnDay:
		return fmt.Sprintf("%d %d * * %d", d.Minute, d.Hour, int(d.DayOfWeek)), nil
	case KindDailyAtTime:
		return fmt.Sprintf("%d %d * * *", d.Minute, d.Hour), nil
	default:
		return "", fmt.Errorf("unknown schedule kind: %s", d.Kind)
	}
}
