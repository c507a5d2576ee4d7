package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lyzr/holoconf/config"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "holoconf",
		Short:         "Cross-language configuration engine CLI",
		Long:          "holoconf loads, resolves, validates, and dumps layered YAML/JSON configuration documents.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newDumpCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newCheckCmd())

	return cmd
}

func loadMerged(files []string) (*config.Config, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("at least one file is required")
	}
	return config.LoadMerged(files)
}
