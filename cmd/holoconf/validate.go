package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lyzr/holoconf/schema"
)

func newValidateCmd() *cobra.Command {
	var schemaPath string
	var resolve bool
	var format string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate one or more documents against a schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadMerged(args)
			if err != nil {
				printLoadError(cmd, err)
				os.Exit(ExitLoadFailure)
			}

			s, err := schema.Load(schemaPath)
			if err != nil {
				printLoadError(cmd, err)
				os.Exit(ExitLoadFailure)
			}

			var failures []schema.Failure
			if resolve {
				failures, err = cfg.ValidateCollect(s)
				if err != nil {
					printLoadError(cmd, err)
					os.Exit(ExitLoadFailure)
				}
			} else {
				failures = cfg.ValidateRaw(s)
			}

			if len(failures) == 0 {
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), "ok")
				}
				return nil
			}

			if !quiet {
				printFailures(cmd, failures, format)
			}
			os.Exit(ExitInvalid)
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to the schema document (required)")
	cmd.Flags().BoolVar(&resolve, "resolve", false, "resolve interpolation before validating")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text|json")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress output, rely on exit code only")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func printFailures(cmd *cobra.Command, failures []schema.Failure, format string) {
	if format == "json" {
		fmt.Fprint(cmd.OutOrStdout(), "[")
		for i, f := range failures {
			if i > 0 {
				fmt.Fprint(cmd.OutOrStdout(), ",")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "{\"path\":%q,\"reason\":%q}", f.Path, f.Reason)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "]")
		return
	}
	for _, f := range failures {
		fmt.Fprintln(cmd.OutOrStdout(), f.String())
	}
}

func printLoadError(cmd *cobra.Command, err error) {
	fmt.Fprintln(cmd.ErrOrStderr(), err)
}
