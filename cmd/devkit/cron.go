package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"devkit/internal/history"
	"devkit/internal/schedule"
	"devkit/internal/tui"

	"github.com/spf13/cobra"
)

func newCronCmd(a *app) *cobra.Command {
	var (
		tz        string
		count     int
		asJSON    bool
		noHistory bool
	)
	cmd := &cobra.Command{
		Use:   "cron <phrase...>",
		Short: "Convert an English schedule into a cron expression",
		Long: `Convert phrases such as "every monday at 9 am", "every 15 minutes" or
"every 3 days at 6:30 pm" into a five-field cron expression, describe it and
list its next run times. Successful conversions are kept in the history.`,
		Example: `  devkit cron every monday at 9 am
  devkit cron every 2 hours --tz America/New_York --count 3`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			conv := schedule.Converter{Now: a.now, RunCount: a.runCount(count)}
			res, err := conv.Convert(strings.Join(args, " "), a.timezone(tz))
			if err != nil {
				var verr *schedule.ValidationError
				if errors.As(err, &verr) {
					a.logger.Warn("built expression failed validation", "detail", verr.Detail())
				}
				return err
			}

			store := a.openHistory(noHistory)
			defer store.Close()
			if _, err := store.Append(cmd.Context(), history.NewEntry(res.Expression, res.Description, a.now())); err != nil {
				a.logger.Warn("record history", "err", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, map[string]any{
					"phrase":      res.Phrase,
					"kind":        res.Descriptor.Kind,
					"expression":  res.Expression,
					"description": res.Description,
					"timezone":    res.Timezone,
					"next_runs":   res.FormattedRuns(),
				})
			}
			st := newStyles(out)
			writeRows(out, []row{
				{"expression", st.value.Render(res.Expression)},
				{"description", res.Description},
				{"timezone", res.Timezone},
			})
			if runs := res.FormattedRuns(); len(runs) > 0 {
				fmt.Fprintln(out)
				writeList(out, "next runs", runs)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&tz, "tz", "", "IANA timezone for next runs (default from config, UTC)")
	f.IntVar(&count, "count", 0, "number of next runs to list (default from config, 5)")
	f.BoolVar(&asJSON, "json", false, "print the result as JSON")
	f.BoolVar(&noHistory, "no-history", false, "do not record the conversion")

	cmd.AddCommand(
		newCronDescribeCmd(),
		newCronValidateCmd(a),
		newCronNextCmd(a),
		newCronHistoryCmd(a),
		newCronInteractiveCmd(a),
	)
	return cmd
}

func newCronDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <expression>",
		Short: "Explain a cron expression in plain English",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := strings.Join(args, " ")
			desc := schedule.Describe(expr)
			if desc == schedule.InvalidDescription {
				return fmt.Errorf("%s: %q", schedule.InvalidDescription, expr)
			}
			fmt.Fprintln(cmd.OutOrStdout(), desc)
			return nil
		},
	}
}

func newCronValidateCmd(a *app) *cobra.Command {
	var tz string
	cmd := &cobra.Command{
		Use:   "validate <expression>",
		Short: "Check that a cron expression parses and has an upcoming run",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := strings.Join(args, " ")
			zone := a.timezone(tz)
			if _, err := schedule.LoadLocation(zone); err != nil {
				return err
			}
			if !schedule.Validate(expr, zone) {
				return fmt.Errorf("invalid cron expression %q", expr)
			}
			st := newStyles(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), st.ok.Render("valid"))
			return nil
		},
	}
	cmd.Flags().StringVar(&tz, "tz", "", "IANA timezone")
	return cmd
}

func newCronNextCmd(a *app) *cobra.Command {
	var (
		tz    string
		count int
	)
	cmd := &cobra.Command{
		Use:   "next <expression>",
		Short: "List the next run times of a cron expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := strings.Join(args, " ")
			zone := a.timezone(tz)
			if _, err := schedule.LoadLocation(zone); err != nil {
				return err
			}
			if !schedule.Validate(expr, zone) {
				return fmt.Errorf("invalid cron expression %q", expr)
			}
			runs := schedule.NextRuns(expr, a.runCount(count), zone, a.now())
			writeList(cmd.OutOrStdout(), "next runs ("+zone+")", schedule.FormatRunTimes(runs))
			return nil
		},
	}
	cmd.Flags().StringVar(&tz, "tz", "", "IANA timezone")
	cmd.Flags().IntVar(&count, "count", 0, "number of runs to list")
	return cmd
}

func newCronHistoryCmd(a *app) *cobra.Command {
	var (
		clearAll bool
		deleteID string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent expressions, or remove them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.requireHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			switch {
			case clearAll:
				if err := store.Clear(ctx); err != nil {
					return fmt.Errorf("clear history: %w", err)
				}
				fmt.Fprintln(out, "history cleared")
				return nil
			case strings.TrimSpace(deleteID) != "":
				if err := store.Delete(ctx, strings.TrimSpace(deleteID)); err != nil {
					return fmt.Errorf("delete history entry: %w", err)
				}
				fmt.Fprintln(out, "deleted", strings.TrimSpace(deleteID))
				return nil
			}

			entries, err := store.Load(ctx)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			if asJSON {
				return writeJSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, newStyles(out).dim.Render("no history yet"))
				return nil
			}
			st := newStyles(out)
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %s\n", st.value.Render(e.Expression), e.Description)
				fmt.Fprintf(out, "  %s\n", st.dim.Render(e.ID+"  "+e.Timestamp.Format(schedule.RunTimeLayout)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "remove every entry")
	cmd.Flags().StringVar(&deleteID, "delete", "", "remove the entry with this id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print entries as JSON")
	cmd.MarkFlagsMutuallyExclusive("clear", "delete")
	return cmd
}

func newCronInteractiveCmd(a *app) *cobra.Command {
	var noHistory bool
	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Build a schedule with a live preview",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.openHistory(noHistory)
			defer store.Close()

			zones := append([]string{}, tui.DefaultTimezones...)
			if tz := a.cfg.Timezone; !slices.Contains(zones, tz) {
				zones = append([]string{tz}, zones...)
			}
			return tui.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), tui.Options{
				Timezones: zones,
				RunCount:  a.cfg.RunCount,
				History:   store,
			})
		},
	}
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record saved expressions")
	return cmd
}
