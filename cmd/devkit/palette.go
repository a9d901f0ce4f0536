package main

import (
	"fmt"
	"strings"

	"devkit/internal/palette"

	"github.com/spf13/cobra"
)

func newPaletteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Generate colour shades",
	}
	cmd.AddCommand(newPaletteShadesCmd(), newPaletteUnfoldCmd(a))
	return cmd
}

func newPaletteShadesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "shades <color>",
		Short: "Generate 50-950 shades from a base colour",
		Long: `Generate eleven shades that keep the hue and saturation of the base colour
and step lightness from 95% down to 5%. The colour may be #rrggbb or "R G B".`,
		Example: `  devkit palette shades "#3b82f6"
  devkit palette shades 40 110 180`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base := strings.Join(args, " ")
			set, err := palette.Shades(base)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, set)
			}
			rows := make([]row, 0, len(set))
			for _, sh := range set {
				rows = append(rows, row{sh.Key, sh.RGB})
			}
			writeRows(out, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print shades as JSON")
	return cmd
}

func newPaletteUnfoldCmd(a *app) *cobra.Command {
	bases := make(map[string]*string, len(palette.UnfoldCategories))
	var font palette.FontColors
	cmd := &cobra.Command{
		Use:   "unfold",
		Short: "Print a django-unfold COLORS setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make(map[string]string, len(bases))
			for name, v := range bases {
				values[name] = *v
			}
			colors, err := palette.NewUnfoldColors(values, font)
			if err != nil {
				return err
			}
			a.logger.Debug("unfold palette", "categories", len(colors.Shades))
			_, err = fmt.Fprint(cmd.OutOrStdout(), colors.PythonDict())
			return err
		},
	}
	fl := cmd.Flags()
	for _, name := range palette.UnfoldCategories {
		v := new(string)
		bases[name] = v
		fl.StringVar(v, name, palette.DefaultUnfoldBases[name], name+" base colour (#hex or \"R G B\")")
	}
	fl.StringVar(&font.Subtle, "font-subtle", "", "font subtle-light colour")
	fl.StringVar(&font.Default, "font-default", "", "font default-light colour")
	fl.StringVar(&font.Important, "font-important", "", "font important-light colour")
	return cmd
}
