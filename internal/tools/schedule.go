package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"devkit/internal/history"
	"devkit/internal/schedule"

	"github.com/charmbracelet/log"
)

// MaxRunCount caps next-run projections requested through tools.
const MaxRunCount = 50

type CronFromPhraseTool struct {
	Timezone string
	RunCount int
	Now      func() time.Time
	// History, when set, records each successful conversion.
	History history.Store
	Logger  *log.Logger
}

type cronFromPhraseArgs struct {
	Phrase   string `json:"phrase"`
	Timezone string `json:"timezone"`
	Count    int    `json:"count"`
}

func (t *CronFromPhraseTool) Definition() Definition {
	return Definition{
		Name:        "cron_from_phrase",
		Description: "Convert an English schedule such as 'every monday at 9 am' into a cron expression with a description and upcoming runs.",
		Parameters: object(map[string]any{
			"phrase":   str("Schedule phrase starting with 'every'."),
			"timezone": str("IANA zone for next runs, e.g. America/New_York."),
			"count":    integer("How many upcoming runs to list (default 5)."),
		}, "phrase"),
	}
}

func (t *CronFromPhraseTool) Call(ctx context.Context, args json.RawMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var in cronFromPhraseArgs
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	tz := strings.TrimSpace(in.Timezone)
	if tz == "" {
		tz = t.Timezone
	}
	count := clampCount(in.Count, t.RunCount)

	conv := schedule.Converter{Now: t.Now, RunCount: count}
	res, err := conv.Convert(in.Phrase, tz)
	if err != nil {
		var verr *schedule.ValidationError
		if errors.As(err, &verr) && t.Logger != nil {
			t.Logger.Warn("built expression failed validation", "detail", verr.Detail())
		}
		return "", err
	}

	if t.History != nil {
		now := time.Now()
		if t.Now != nil {
			now = t.Now()
		}
		entry := history.NewEntry(res.Expression, res.Description, now)
		if _, err := t.History.Append(ctx, entry); err != nil && t.Logger != nil {
			t.Logger.Warn("record history", "err", err)
		}
	}

	return prettyJSON(map[string]any{
		"phrase":      res.Phrase,
		"kind":        res.Descriptor.Kind.String(),
		"expression":  res.Expression,
		"description": res.Description,
		"timezone":    res.Timezone,
		"next_runs":   res.FormattedRuns(),
	})
}

type CronDescribeTool struct{}

type cronExpressionArgs struct {
	Expression string `json:"expression"`
	Timezone   string `json:"timezone"`
	Count      int    `json:"count"`
}

func (t *CronDescribeTool) Definition() Definition {
	return Definition{
		Name:        "cron_describe",
		Description: "Explain a cron expression in plain English and report whether it is valid.",
		Parameters: object(map[string]any{
			"expression": str("Five-field cron expression, six with leading seconds, or an @descriptor."),
		}, "expression"),
	}
}

func (t *CronDescribeTool) Call(ctx context.Context, args json.RawMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var in cronExpressionArgs
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	expr := strings.TrimSpace(in.Expression)
	if expr == "" {
		return "", errors.New("expression is required")
	}
	return prettyJSON(map[string]any{
		"expression":  expr,
		"valid":       schedule.Validate(expr, schedule.DefaultTimezone),
		"description": schedule.Describe(expr),
	})
}

type CronNextRunsTool struct {
	Timezone string
	RunCount int
	Now      func() time.Time
}

func (t *CronNextRunsTool) Definition() Definition {
	return Definition{
		Name:        "cron_next_runs",
		Description: "List the next run times of a cron expression in a timezone.",
		Parameters: object(map[string]any{
			"expression": str("Cron expression to project."),
			"timezone":   str("IANA zone, default UTC."),
			"count":      integer("How many runs (default 5, max 50)."),
		}, "expression"),
	}
}

func (t *CronNextRunsTool) Call(ctx context.Context, args json.RawMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var in cronExpressionArgs
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	expr := strings.TrimSpace(in.Expression)
	if expr == "" {
		return "", errors.New("expression is required")
	}
	tz := strings.TrimSpace(in.Timezone)
	if tz == "" {
		tz = t.Timezone
	}
	if _, err := schedule.LoadLocation(tz); err != nil {
		return "", err
	}
	if !schedule.Validate(expr, tz) {
		return "", &schedule.ValidationError{Expression: expr, Timezone: tz}
	}
	now := time.Now()
	if t.Now != nil {
		now = t.Now()
	}
	runs := schedule.NextRuns(expr, clampCount(in.Count, t.RunCount), tz, now)
	return prettyJSON(map[string]any{
		"expression": expr,
		"timezone":   tz,
		"next_runs":  schedule.FormatRunTimes(runs),
	})
}

func clampCount(requested, fallback int) int {
	n := requested
	if n <= 0 {
		n = fallback
	}
	if n <= 0 {
		n = schedule.DefaultRunCount
	}
	if n > MaxRunCount {
		n = MaxRunCount
	}
	return n
}
