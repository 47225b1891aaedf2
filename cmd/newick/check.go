package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"newick/internal/diagfmt"
	"newick/internal/driver"
	"newick/internal/project"
	"newick/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <directory|file.nwk>",
	Short: "Validate the structure of Newick files",
	Long: `Check parses every tree file under a directory (or a single file) and reports
malformed input. The exit status is 1 when any file fails`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	checkCmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|json)")
	checkCmd.Flags().Bool("permissive", false, "keep the last top-level tree instead of failing on extras")
	checkCmd.Flags().Int("max-depth", 0, "maximum parenthesis nesting (0=unlimited)")
	checkCmd.Flags().Bool("cache", false, "reuse parse results from the disk cache")
	checkCmd.Flags().Bool("clear-cache", false, "drop every cached parse result before running")
	checkCmd.Flags().Bool("nfc", false, "apply Unicode NFC to names read from files")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	diagFormat, err := cmd.Flags().GetString("diag-format")
	if err != nil {
		return fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	if diagFormat != "pretty" && diagFormat != "json" {
		return fmt.Errorf("unknown diagnostics format: %s", diagFormat)
	}

	env, err := loadRunEnv(cmd)
	if err != nil {
		return err
	}
	opts, err := parseFlags(cmd, env)
	if err != nil {
		return err
	}

	kind, err := classifyInput(target)
	if err != nil {
		return err
	}
	var (
		fs    *source.FileSet
		files []string
	)
	switch kind {
	case inputDir:
		files, err = project.CollectFiles(target, env.cfg.Parse.Extensions)
		if err != nil {
			return fmt.Errorf("failed to collect tree files: %w", err)
		}
		fs = source.NewFileSetWithBase(target)
	case inputFile:
		files = []string{target}
		fs = source.NewFileSet()
	default:
		return fmt.Errorf("check does not read stdin; use parse -")
	}

	var results []driver.ParseDirResult
	if shouldUseTUI(mode) && len(files) > 0 {
		results, err = runCheckWithUI(cmd.Context(), "checking trees", fs, files, opts)
	} else {
		results, err = driver.ParseFiles(cmd.Context(), fs, files, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	bag := driver.MergeBags(results, env.cfg.Output.MaxDiagnostics)
	summary := driver.Summarize(results)
	if diagFormat == "json" {
		// JSON идёт в stdout целиком, сводку не печатаем
		if err := diagfmt.JSON(cmd.OutOrStdout(), bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		}); err != nil {
			return err
		}
	} else {
		env.printDiagnostics(cmd.ErrOrStderr(), bag, fs)
		if !env.quiet {
			printSummary(cmd.OutOrStdout(), summary)
		}
	}
	env.printTimings(cmd.ErrOrStderr())

	if summary.Failed > 0 {
		return errMalformed
	}
	return nil
}

func printSummary(w io.Writer, s driver.Summary) {
	fmt.Fprintf(w, "checked %d %s: %d ok, %d failed", s.Files, plural(s.Files, "file", "files"), s.OK, s.Failed)
	if s.Cached > 0 {
		fmt.Fprintf(w, " (%d cached)", s.Cached)
	}
	if s.Warned > 0 {
		fmt.Fprintf(w, ", %d with warnings", s.Warned)
	}
	fmt.Fprintln(w)
	if s.OK > 0 {
		fmt.Fprintf(w, "trees: %d leaves, %d nodes, max depth %d\n", s.Leaves, s.Nodes, s.MaxDepth)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
