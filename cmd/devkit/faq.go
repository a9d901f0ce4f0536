package main

import (
	"fmt"

	"devkit/internal/faq"

	"github.com/spf13/cobra"
)

func newFAQCmd(a *app) *cobra.Command {
	var (
		asHTML  bool
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "faq [topic]",
		Short: "Show the help page for a tool",
		Long:  "Show the embedded FAQ for a tool. Without a topic the available topics are listed.",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return faq.Topics(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				out := cmd.OutOrStdout()
				for _, t := range faq.Topics() {
					fmt.Fprintln(out, t)
				}
				return nil
			}
			var (
				text string
				err  error
			)
			if asHTML {
				text, err = faq.HTML(args[0])
			} else {
				text, err = faq.Markdown(args[0])
			}
			if err != nil {
				return err
			}
			a.logger.Debug("faq", "topic", args[0], "html", asHTML)
			return writeOutput(cmd, outPath, text)
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "render the page as standalone HTML")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to this file instead of stdout")
	return cmd
}
