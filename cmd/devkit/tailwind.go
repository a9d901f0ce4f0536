package main

import (
	"fmt"
	"strings"

	"devkit/internal/migrate"
	"devkit/internal/palette"
	"devkit/internal/tools"

	"github.com/spf13/cobra"
)

func newTailwindCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tailwind",
		Short: "Tailwind CSS v3 to v4 colour tools",
	}
	cmd.AddCommand(newTailwindMigrateCmd(a), newTailwindThemeCmd())
	return cmd
}

func newTailwindMigrateCmd(a *app) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "migrate [file|-]",
		Short: "Convert the colors block of a tailwind.config.js into v4 @theme CSS",
		Long: `Read a Tailwind v3 config (a file, or stdin when omitted or "-"), extract
its colors: { ... } object, flatten nested keys with dashes and write
@theme inline, :root and .dark blocks with hex values converted to oklch().`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, firstArg(args))
			if err != nil {
				return err
			}
			res, err := migrate.Run(text)
			if err != nil {
				// Keep the comment form on stdout so piped output stays valid CSS.
				fmt.Fprintln(cmd.OutOrStdout(), migrate.FailureComment(err))
				return err
			}
			a.logger.Debug("migrated colors", "variables", len(res.Variables))
			return writeOutput(cmd, outPath, res.CSS)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write CSS to this file instead of stdout")
	return cmd
}

func newTailwindThemeCmd() *cobra.Command {
	var (
		advanced bool
		sets     []string
		format   string
		outPath  string
	)
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Generate a shadcn-style globals.css with oklch() tokens",
		Example: `  devkit tailwind theme --set light.primary=#3b82f6 --set dark.primary=#60a5fa
  devkit tailwind theme --advanced --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := palette.BasicTheme()
			if advanced {
				cfg = palette.AdvancedTheme()
			}
			for _, s := range sets {
				target, hex, ok := strings.Cut(s, "=")
				if !ok {
					return fmt.Errorf("--set %q: want mode.key=#hex", s)
				}
				if err := tools.ApplyThemeOverride(&cfg, target, hex); err != nil {
					return err
				}
			}
			switch strings.ToLower(format) {
			case "css":
				return writeOutput(cmd, outPath, palette.GenerateThemeCSS(cfg))
			case "json":
				data, err := palette.GenerateThemeJSON(cfg)
				if err != nil {
					return err
				}
				return writeOutput(cmd, outPath, string(data))
			default:
				return fmt.Errorf("unknown format %q (want css or json)", format)
			}
		},
	}
	f := cmd.Flags()
	f.BoolVar(&advanced, "advanced", false, "include card, popover, chart and sidebar tokens")
	f.StringArrayVar(&sets, "set", nil, "override a token, e.g. light.primary=#3b82f6 (repeatable)")
	f.StringVar(&format, "format", "css", "output format: css or json")
	f.StringVarP(&outPath, "out", "o", "", "write to this file instead of stdout")
	return cmd
}
