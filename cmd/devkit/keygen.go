package main

import (
	"fmt"

	"devkit/internal/keygen"

	"github.com/spf13/cobra"
)

type generatedKey struct {
	Key      string        `json:"key"`
	Strength keygen.Report `json:"strength"`
	Label    string        `json:"label"`
}

func newKeygenCmd(a *app) *cobra.Command {
	var (
		length    int
		noSpecial bool
		diverse   bool
		count     int
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:     "keygen",
		Aliases: []string{"secret-key"},
		Short:   "Generate a Django SECRET_KEY",
		Long: `Generate secret keys from a cryptographic random source using Django's
character set. The key goes to stdout and its strength to stderr, so the
output can be redirected straight into a settings file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be positive")
			}
			if length <= 0 {
				length = a.cfg.Keygen.Length
			}
			keys := make([]generatedKey, 0, count)
			for range count {
				key, err := keygen.Generate(keygen.Options{
					Length:          length,
					NoSpecial:       noSpecial,
					EnsureDiversity: diverse,
				})
				if err != nil {
					return err
				}
				rep := keygen.Strength(key)
				keys = append(keys, generatedKey{Key: key, Strength: rep, Label: rep.Label()})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, keys)
			}
			errOut := cmd.ErrOrStderr()
			st := newStyles(errOut)
			for _, k := range keys {
				fmt.Fprintln(out, k.Key)
				fmt.Fprintln(errOut, st.dim.Render(fmt.Sprintf("strength: %s (%d/100)", k.Label, k.Strength.Score)))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVarP(&length, "length", "l", 0, "key length (default from config, 50)")
	f.BoolVar(&noSpecial, "no-special", false, "use only lowercase letters and digits")
	f.BoolVar(&diverse, "diverse", false, "guarantee at least one letter, digit and symbol")
	f.IntVarP(&count, "count", "n", 1, "number of keys to generate")
	f.BoolVar(&asJSON, "json", false, "print keys with their strength report as JSON")
	return cmd
}
