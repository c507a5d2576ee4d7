package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var resolve bool
	var noRedact bool
	var format string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "dump FILE...",
		Short: "Render merged documents as YAML or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadMerged(args)
			if err != nil {
				printLoadError(cmd, err)
				os.Exit(ExitLoadFailure)
			}

			redact := !noRedact
			var text string
			if format == "json" {
				text, err = cfg.ToJSON(resolve, redact)
			} else {
				text, err = cfg.ToYAML(resolve, redact)
			}
			if err != nil {
				printLoadError(cmd, err)
				os.Exit(ExitInvalid)
			}

			if outputPath != "" {
				if err := os.WriteFile(outputPath, []byte(text), 0o644); err != nil {
					printLoadError(cmd, err)
					os.Exit(ExitLoadFailure)
				}
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&resolve, "resolve", false, "resolve interpolation before dumping")
	cmd.Flags().BoolVar(&noRedact, "no-redact", false, "do not redact sensitive values (only meaningful with --resolve)")
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml|json")
	cmd.Flags().StringVar(&outputPath, "output", "", "write to this path instead of stdout")

	return cmd
}
