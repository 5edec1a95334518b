package main

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/dhamidi/ldn/grammar"
	"github.com/spf13/cobra"
)

func newGrammarCmd() *cobra.Command {
	var verify bool
	var startProduction string

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the LDN grammar in EBNF",
		Long: `Print the EBNF grammar of LDN.

With --verify the grammar is checked instead: every production must be
defined and reachable from the start production.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !verify {
				_, err := io.WriteString(out, grammar.Source)
				return err
			}

			g, err := grammar.LoadFrom(startProduction)
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}
			fmt.Fprintf(out, "ok: %d productions\n", len(g))
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "verify the grammar instead of printing it")
	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification (if empty, only checks syntax)")

	cmd.AddCommand(newGrammarTokensCmd())
	cmd.AddCommand(newGrammarCheckCmd())

	return cmd
}

func newGrammarTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens the grammar finds in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			tokens, err := grammar.Tokenize(source)
			if err != nil {
				return fmt.Errorf("tokenize: %w", err)
			}
			for _, tok := range tokens {
				fmt.Fprintln(cmd.OutOrStdout(), tok)
			}
			return nil
		},
	}
}

func newGrammarCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Check a file against the grammar alone",
		Long: `Check a file against the EBNF grammar without the parser.

Useful for comparing the grammar with the parser. They accept the same
documents except for unterminated strings, which the parser reads to the
end of the input, and integers outside the 64-bit range, which only the
parser rejects.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			if err := grammar.Check(source); err != nil {
				return fmt.Errorf("%s:%w", args[0], err)
			}
			return nil
		},
	}
}

// printErrors prints each entry of an error list on its own line.
func printErrors(w io.Writer, err error) {
	if u, ok := err.(interface{ Unwrap() error }); ok {
		err = u.Unwrap()
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
