package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/ldn/format"
	"github.com/dhamidi/ldn/ldn"
	"github.com/spf13/cobra"
)

func newFmtCmd(a *app) *cobra.Command {
	var fmtOverwrite bool
	var fmtList bool
	var fmtCompact bool

	cmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Format .ldn files, preserving comments and line breaks",
		Long: `Format LDN source to stdout.

If no file is provided, reads LDN source from stdin.

Use -w to overwrite files in place and -l to list files whose
formatting differs. --compact prints every list on a single line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fmtCompact && fmtList {
				return fmt.Errorf("--compact and -l cannot be combined")
			}

			render := func(source []byte) ([]byte, error) {
				doc, err := ldn.Parse(source, a.cfg.ParseOptions()...)
				if err != nil {
					return nil, err
				}
				if fmtCompact {
					return []byte(format.Compact(doc) + "\n"), nil
				}
				return []byte(a.cfg.Formatter().Format(doc)), nil
			}

			if len(args) == 0 {
				if fmtOverwrite || fmtList {
					return fmt.Errorf("-w and -l require file arguments")
				}
				source, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				output, err := render(source)
				if err != nil {
					return fmt.Errorf("<stdin>:%w", err)
				}
				_, err = cmd.OutOrStdout().Write(output)
				return err
			}

			for _, filename := range args {
				source, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
				output, err := render(source)
				if err != nil {
					return fmt.Errorf("%s:%w", filename, err)
				}

				changed := !bytes.Equal(source, output)
				if fmtList && changed {
					fmt.Fprintln(cmd.OutOrStdout(), filename)
				}
				if fmtOverwrite {
					if changed {
						log.Infof("formatted %s", filename)
						if err := os.WriteFile(filename, output, 0644); err != nil {
							return fmt.Errorf("write file: %w", err)
						}
					}
					continue
				}
				if !fmtList {
					if _, err := cmd.OutOrStdout().Write(output); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite files in place")
	cmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list files whose formatting differs")
	cmd.Flags().BoolVar(&fmtCompact, "compact", false, "print each top-level item on one line")
	cmd.Flags().Int("indent", 0, "spaces per nesting level (default from config)")
	cmd.Flags().Int("max-depth", 0, "maximum list nesting, 0 for unlimited (default from config)")

	return cmd
}
