package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Load and merge documents without validating, reporting parse/merge errors only",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadMerged(args); err != nil {
				printLoadError(cmd, err)
				os.Exit(ExitInvalid)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	return cmd
}
