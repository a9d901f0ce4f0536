package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 10, 7, 30, 0, time.UTC)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	assert.True(t, Validate("*/15 * * * *", "UTC"))
	assert.True(t, Validate("0 9 * * 1", "America/New_York"))
	assert.True(t, Validate("0 */5 * * * *", "UTC"), "six fields with leading seconds")
	assert.True(t, Validate("@daily", "Asia/Kolkata"))
	assert.True(t, Validate("0 9 * * 1", ""), "blank zone means UTC")

	assert.False(t, Validate("", "UTC"))
	assert.False(t, Validate("61 * * * *", "UTC"))
	assert.False(t, Validate("* * *", "UTC"))
	assert.False(t, Validate("0 0 30 2 *", "UTC"), "february 30th never happens")
	assert.False(t, Validate("0 9 * * 1", "Mars/Olympus_Mons"))
}

func TestNextRunsFifteenMinutes(t *testing.T) {
	t.Parallel()

	now := fixedNow()
	runs := NextRuns("*/15 * * * *", 5, "UTC", now)
	require.Len(t, runs, 5)

	assert.Equal(t, time.Date(2026, 3, 10, 10, 15, 0, 0, time.UTC), runs[0].UTC())
	assert.True(t, runs[0].After(now))
	for i := 1; i < len(runs); i++ {
		assert.Equal(t, 15*time.Minute, runs[i].Sub(runs[i-1]))
	}
}

func TestNextRunsUseTargetZone(t *testing.T) {
	t.Parallel()

	runs := NextRuns("0 9 * * 1", 3, "America/New_York", fixedNow())
	require.Len(t, runs, 3)
	for i, run := range runs {
		assert.Equal(t, "America/New_York", run.Location().String())
		assert.Equal(t, time.Monday, run.Weekday())
		assert.Equal(t, 9, run.Hour())
		if i > 0 {
			assert.True(t, run.After(runs[i-1]))
		}
	}
	assert.Equal(t, "3/16/2026, 9:00:00 AM", FormatRunTime(runs[0]))
}

func TestNextRunsDegradeToEmpty(t *testing.T) {
	t.Parallel()

	now := fixedNow()
	assert.Empty(t, NextRuns("*/15 * * * *", 0, "UTC", now))
	assert.Empty(t, NextRuns("*/15 * * * *", -3, "UTC", now))
	assert.Empty(t, NextRuns("not a cron", 5, "UTC", now))
	assert.Empty(t, NextRuns("*/15 * * * *", 5, "Nowhere/City", now))
	assert.Empty(t, NextRuns("0 0 30 2 *", 5, "UTC", now))
	assert.NotNil(t, NextRuns("bad", 5, "UTC", now))
}

func TestNextRunsFreshCursorPerCall(t *testing.T) {
	t.Parallel()

	now := fixedNow()
	first := NextRuns("0 */2 * * *", 4, "UTC", now)
	second := NextRuns("0 */2 * * *", 4, "UTC", now)
	assert.Equal(t, first, second)
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	desc := Describe("0 9 * * 1")
	assert.Contains(t, desc, "Monday")
	assert.Contains(t, desc, "09")

	assert.Contains(t, Describe("*/15 * * * *"), "15")
	assert.Equal(t, "Every hour", Describe("@hourly"))
	assert.Equal(t, "Every 5m", Describe("@every 5m"))

	assert.Equal(t, InvalidDescription, Describe(""))
	assert.Equal(t, InvalidDescription, Describe("@sometimes"))
	assert.Equal(t, InvalidDescription, Describe("this is not cron"))
}

func TestConverterConvert(t *testing.T) {
	t.Parallel()

	c := Converter{Now: fixedNow}
	res, err := c.Convert("Every Monday at 9 AM", "UTC")
	require.NoError(t, err)
	assert.Equal(t, "0 9 * * 1", res.Expression)
	assert.Equal(t, "UTC", res.Timezone)
	assert.Contains(t, res.Description, "Monday")
	require.Len(t, res.NextRuns, DefaultRunCount)
	assert.Equal(t, "3/16/2026, 9:00:00 AM", res.FormattedRuns()[0])

	res, err = Converter{Now: fixedNow, RunCount: 2}.Convert("every 15 minutes", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTimezone, res.Timezone)
	assert.Len(t, res.NextRuns, 2)

	res, err = Converter{Now: fixedNow, RunCount: -1}.Convert("every 15 minutes", "UTC")
	require.NoError(t, err)
	assert.Empty(t, res.NextRuns)
}

func TestConverterErrors(t *testing.T) {
	t.Parallel()

	c := Converter{Now: fixedNow}

	_, err := c.Convert("every 61 minutes", "UTC")
	var recErr *RecognitionError
	require.True(t, errors.As(err, &recErr))

	_, err = c.Convert("", "UTC")
	assert.ErrorIs(t, err, ErrEmptyPhrase)

	_, err = c.Convert("every 15 minutes", "Nowhere/City")
	var tzErr *TimezoneError
	require.True(t, errors.As(err, &tzErr))
	assert.Equal(t, "Nowhere/City", tzErr.Name)
	assert.Equal(t, `Unknown timezone "Nowhere/City". Use an IANA name such as 'America/New_York', 'Europe/London' or 'UTC'.`, err.Error())
	assert.NotContains(t, err.Error(), "load location")
	assert.Error(t, errors.Unwrap(err))
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Expression: "0 0 30 2 *", Timezone: "UTC"}
	assert.Equal(t, InvalidExpressionGuidance, err.Error())
	assert.Contains(t, err.Detail(), "0 0 30 2 *")
}
