package main

import (
	"fmt"

	"devkit/internal/appinfo"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), appinfo.Version)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), appinfo.Display())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "show only the version number")
	return cmd
}
