package schedule

import (
	"strings"
	"time"
)

// DefaultRunCount is how many upcoming runs Convert projects.
const DefaultRunCount = 5

// Result is everything the phrase pipeline produces for one input.
type Result struct {
	Phrase      string      `json:"phrase"`
	Descriptor  Descriptor  `json:"descriptor"`
	Expression  string      `json:"expression"`
	Description string      `json:"description"`
	Timezone    string      `json:"timezone"`
	NextRuns    []time.Time `json:"next_runs"`
}

// FormattedRuns renders NextRuns for display.
func (r Result) FormattedRuns() []string {
	return FormatRunTimes(r.NextRuns)
}

// Converter runs phrase -> descriptor -> expression -> validate -> describe
// -> next runs. The zero value is ready to use.
type Converter struct {
	// Now defaults to time.Now.
	Now func() time.Time
	// RunCount defaults to DefaultRunCount; negative disables projection.
	RunCount int
}

func (c Converter) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c Converter) runCount() int {
	if c.RunCount == 0 {
		return DefaultRunCount
	}
	return c.RunCount
}

// Convert turns a phrase into a validated, described expression. Errors are
// ErrEmptyPhrase, *RecognitionError, *ValidationError or *TimezoneError.
func (c Converter) Convert(phrase string, tz string) (Result, error) {
	zone := strings.TrimSpace(tz)
	if zone == "" {
		zone = DefaultTimezone
	}
	if _, err := LoadLocation(zone); err != nil {
		return Result{}, err
	}

	d, err := Recognize(phrase)
	if err != nil {
		return Result{}, err
	}
	expr, err := Build(d)
	if err != nil {
		return Result{}, recognitionErr(phrase, err)
	}

	now := c.now()
	if !validateAt(expr, zone, now) {
		return Result{}, &ValidationError{Expression: expr, Timezone: zone}
	}

	return Result{
		Phrase:      strings.TrimSpace(phrase),
		Descriptor:  d,
		Expression:  expr,
		Description: Describe(expr),
		Timezone:    zone,
		NextRuns:    NextRuns(expr, c.runCount(), zone, now),
	}, nil
}
