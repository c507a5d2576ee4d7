package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lyzr/holoconf/serialize"
	"github.com/lyzr/holoconf/value"
)

func newGetCmd() *cobra.Command {
	var resolve bool
	var format string
	var defaultVal string
	var hasDefault bool

	cmd := &cobra.Command{
		Use:   "get FILE... PATH",
		Short: "Print the value at a dotted path",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args[:len(args)-1]
			path := args[len(args)-1]

			cfg, err := loadMerged(files)
			if err != nil {
				printLoadError(cmd, err)
				os.Exit(ExitLoadFailure)
			}

			var v value.Value
			if resolve {
				v, err = cfg.Get(path)
			} else {
				v, err = cfg.GetRaw(path)
			}
			if err != nil {
				if hasDefault {
					fmt.Fprintln(cmd.OutOrStdout(), defaultVal)
					return nil
				}
				printLoadError(cmd, err)
				os.Exit(ExitInvalid)
			}

			printValue(cmd, v, format)
			return nil
		},
	}

	cmd.Flags().BoolVar(&resolve, "resolve", false, "resolve interpolation before printing")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text|json|yaml")
	cmd.Flags().StringVar(&defaultVal, "default", "", "value to print if the path is not found")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		hasDefault = cmd.Flags().Changed("default")
		return nil
	}

	return cmd
}

func printValue(cmd *cobra.Command, v value.Value, format string) {
	switch format {
	case "json":
		text, _ := serialize.ToJSON(v)
		fmt.Fprintln(cmd.OutOrStdout(), text)
	case "yaml":
		text, _ := serialize.ToYAML(v)
		fmt.Fprint(cmd.OutOrStdout(), text)
	default:
		fmt.Fprintln(cmd.OutOrStdout(), bareText(v))
	}
}

// bareText renders a scalar without Go-syntax quoting (matching the
// reference CLI's cmd_get, which prints scalars via plain print() and falls
// back to JSON for sequences/mappings) rather than value.Value.String()'s
// debug representation.
func bareText(v value.Value) string {
	switch v.Kind {
	case value.KindNull:
		return "null"
	case value.KindBool:
		return strconv.FormatBool(v.BoolVal())
	case value.KindInt:
		return strconv.FormatInt(v.IntVal(), 10)
	case value.KindFloat:
		return strconv.FormatFloat(v.FloatVal(), 'g', -1, 64)
	case value.KindString:
		return v.StrVal()
	default:
		text, _ := serialize.ToJSON(v)
		return text
	}
}
