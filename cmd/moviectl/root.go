package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "moviectl",
		Short:         "Browse and edit the movie catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of a table")

	rootCmd.AddCommand(newListCommand(ctx, &jsonOutput))
	rootCmd.AddCommand(newShowCommand(ctx, &jsonOutput))
	rootCmd.AddCommand(newAddCommand(ctx, &jsonOutput))

	return rootCmd
}
