package main

import (
	"fmt"
	"sort"

	"devkit/internal/envfile"
	"devkit/internal/tools"

	"github.com/spf13/cobra"
)

func newEnvCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Check and re-export .env files",
	}
	cmd.AddCommand(newEnvCheckCmd(a), newEnvExportCmd())
	return cmd
}

func newEnvCheckCmd(a *app) *cobra.Command {
	var (
		optional []string
		resolve  bool
		reveal   bool
	)
	cmd := &cobra.Command{
		Use:   "check [file|-]",
		Short: "Report duplicate keys and empty required values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(cmd, firstArg(args))
			if err != nil {
				return err
			}
			vars := tools.MarkOptional(envfile.Parse(content), optional)
			errs := envfile.Validate(vars)

			out := cmd.OutOrStdout()
			st := newStyles(out)
			rows := make([]row, 0, len(vars))
			for _, v := range vars {
				value := v.Value
				if v.Secret && !reveal {
					value = v.Masked()
				}
				status := st.ok.Render("ok")
				if msg, bad := errs[v.ID]; bad {
					status = st.bad.Render(msg)
				}
				rows = append(rows, row{v.Key, status + "  " + st.dim.Render(value)})
			}
			writeRows(out, rows)

			if resolve {
				resolved, err := envfile.Resolve(vars)
				if err != nil {
					return err
				}
				keys := make([]string, 0, len(resolved))
				for k := range resolved {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				fmt.Fprintln(out)
				fmt.Fprintln(out, st.dim.Render("resolved"))
				for _, k := range keys {
					v := envfile.Variable{Key: k, Value: resolved[k], Secret: envfile.IsSecretKey(k)}
					value := v.Value
					if v.Secret && !reveal {
						value = v.Masked()
					}
					fmt.Fprintf(out, "  %s=%s\n", k, value)
				}
			}

			a.logger.Debug("env check", "variables", len(vars), "problems", len(errs))
			if len(errs) > 0 {
				return fmt.Errorf("%d of %d variables have problems", len(errs), len(vars))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&optional, "optional", nil, "keys allowed to be empty (repeatable or comma separated)")
	f.BoolVar(&resolve, "resolve", false, "also show values after ${VAR} expansion")
	f.BoolVar(&reveal, "reveal", false, "show secret values instead of masking them")
	return cmd
}

func newEnvExportCmd() *cobra.Command {
	var (
		format   string
		optional []string
		outPath  string
	)
	cmd := &cobra.Command{
		Use:   "export [file|-]",
		Short: "Re-export a .env file as env, example, json or dotenv",
		Example: `  devkit env export .env --format example --optional DEBUG -o .env.example
  cat .env | devkit env export --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(cmd, firstArg(args))
			if err != nil {
				return err
			}
			vars := tools.MarkOptional(envfile.Parse(content), optional)
			text, err := tools.ExportEnv(vars, format)
			if err != nil {
				return err
			}
			return writeOutput(cmd, outPath, text)
		},
	}
	f := cmd.Flags()
	f.StringVar(&format, "format", "env", "output format: env, example, json or dotenv")
	f.StringSliceVar(&optional, "optional", nil, "keys to comment out in the example format")
	f.StringVarP(&outPath, "out", "o", "", "write to this file instead of stdout")
	return cmd
}
