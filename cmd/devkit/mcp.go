package main

import (
	"devkit/internal/mcpserver"
	"devkit/internal/tools"

	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	var noHistory bool
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the devkit tools over MCP on stdin/stdout",
		Long: `Run a Model Context Protocol server on stdio exposing cron_from_phrase,
cron_describe, cron_next_runs, tailwind_migrate_colors, tailwind_theme,
palette_shades, env_validate, env_export and secret_key_generate. Logs go to
stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.openHistory(noHistory)
			defer store.Close()

			reg := tools.NewDefaultRegistry(tools.Options{
				Timezone:  a.cfg.Timezone,
				RunCount:  a.cfg.RunCount,
				KeyLength: a.cfg.Keygen.Length,
				History:   store,
				Logger:    a.logger,
				Now:       a.now,
			})
			srv, err := mcpserver.New(reg, a.logger)
			if err != nil {
				return err
			}
			return srv.ServeStdio(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record conversions made by clients")
	return cmd
}
