package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/ldn/format"
	"github.com/dhamidi/ldn/ldn"
	"github.com/spf13/cobra"
)

func newParseCmd(a *app) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .ldn file and dump the tree with positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			doc, err := ldn.ParseReader(f, a.cfg.ParseOptions()...)
			if err != nil {
				return fmt.Errorf("%s:%w", filename, err)
			}

			out := cmd.OutOrStdout()
			switch outputFormat {
			case "json":
				if err := format.NewASTJSONEncoder(out).Encode(doc); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "yaml":
				if err := format.NewASTYAMLEncoder(out).Encode(doc); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
			case "lines":
				if err := format.NewLineEncoder(out).Encode(doc); err != nil {
					return fmt.Errorf("encode lines: %w", err)
				}
			case "ldn":
				if err := a.cfg.Formatter().Encode(out, doc); err != nil {
					return fmt.Errorf("encode ldn: %w", err)
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, yaml, lines, ldn)")

	return cmd
}
