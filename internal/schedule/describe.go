package schedule

import (
	"strings"
	"sync"

	lncron "github.com/lnquy/cron"
)

// InvalidDescription is returned by Describe when no prose can be produced.
const InvalidDescription = "Invalid cron expression"

var (
	describerOnce sync.Once
	describer     *lncron.ExpressionDescriptor
	describerErr  error
)

func getDescriber() (*lncron.ExpressionDescriptor, error) {
	describerOnce.Do(func() {
		describer, describerErr = lncron.NewDescriptor(
			lncron.Use24HourTimeFormat(false),
			lncron.DayOfWeekStartsAtOne(false),
		)
	})
	return describer, describerErr
}

var macroDescriptions = map[string]string{
	"@yearly":   "At 12:00 AM, on day 1 of the month, only in January",
	"@annually": "At 12:00 AM, on day 1 of the month, only in January",
	"@monthly":  "At 12:00 AM, on day 1 of the month",
	"@weekly":   "At 12:00 AM, only on Sunday",
	"@daily":    "At 12:00 AM",
	"@midnight": "At 12:00 AM",
	"@hourly":   "Every hour",
}

// Describe renders expr as English prose, e.g. "At 09:00 AM, only on Monday".
func Describe(expr string) (desc string) {
	text := strings.TrimSpace(expr)
	if text == "" {
		return InvalidDescription
	}
	if strings.HasPrefix(text, "@") {
		return describeMacro(text)
	}
	d, err := getDescriber()
	if err != nil {
		return InvalidDescription
	}
	defer func() {
		if r := recover(); r != nil {
			desc = InvalidDescription
		}
	}()
	out, err := d.ToDescription(text, lncron.Locale_en)
	if err != nil || strings.TrimSpace(out) == "" {
		return InvalidDescription
	}
	return out
}

func describeMacro(text string) string {
	lower := strings.ToLower(text)
	if desc, ok := macroDescriptions[lower]; ok {
		return desc
	}
	if rest, ok := strings.CutPrefix(lower, "@every "); ok {
		if _, err := Parse(text); err == nil {
			return "Every " + strings.TrimSpace(rest)
		}
	}
	return InvalidDescription
}
