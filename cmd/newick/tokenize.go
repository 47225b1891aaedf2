package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"newick/internal/diagfmt"
	"newick/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.nwk|->",
	Short: "Tokenize a Newick file",
	Long:  `Tokenize prints the parentheses and names of a Newick file; every other character is dropped`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("report-skipped", false, "report dropped characters as info diagnostics")
	tokenizeCmd.Flags().Bool("nfc", false, "apply Unicode NFC to names read from files")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	reportSkipped, err := cmd.Flags().GetBool("report-skipped")
	if err != nil {
		return fmt.Errorf("failed to get report-skipped flag: %w", err)
	}

	env, err := loadRunEnv(cmd)
	if err != nil {
		return err
	}
	if err := applyNFCFlag(cmd, env); err != nil {
		return err
	}
	opts := env.driverOptions()
	opts.ReportSkipped = reportSkipped

	// Выполняем токенизацию
	var result *driver.TokenizeResult
	if filePath == stdinPath {
		content, readErr := readStdin(cmd.InOrStdin())
		if readErr != nil {
			return readErr
		}
		result = driver.TokenizeSource(stdinName, content, opts)
	} else {
		result, err = driver.Tokenize(filePath, opts)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
	}

	// Диагностика в stderr
	result.Bag.Sort()
	env.printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet)

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}
	env.printTimings(cmd.ErrOrStderr())
	return nil
}
