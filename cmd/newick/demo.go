package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"newick/internal/diagfmt"
	"newick/internal/parser"
)

const demoTree = "((A, B), C, ((D, E), F))"

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Parse a built-in example tree and print it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parser.Parse(demoTree)
		if err != nil {
			return fmt.Errorf("demo tree: %w", err)
		}
		out := cmd.OutOrStdout()
		if verbose, _ := cmd.Flags().GetBool("tree"); verbose {
			return diagfmt.FormatTreeIndented(out, t, 0)
		}
		_, err = fmt.Fprintln(out, t)
		return err
	},
}

func init() {
	demoCmd.Flags().Bool("tree", false, "print the example as an indented tree")
}
