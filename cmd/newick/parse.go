package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"newick/internal/diagfmt"
	"newick/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.nwk|directory|->",
	Short: "Parse Newick trees and print them",
	Long: `Parse reads one tree from a file or stdin, or every tree file in a directory,
and prints it in canonical form, as an indented tree, or as JSON or msgpack`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "canonical", "output format (canonical|tree|json|msgpack)")
	parseCmd.Flags().Bool("permissive", false, "keep the last top-level tree instead of failing on extras")
	parseCmd.Flags().Int("max-depth", 0, "maximum parenthesis nesting (0=unlimited)")
	parseCmd.Flags().Bool("cache", false, "reuse parse results from the disk cache")
	parseCmd.Flags().Bool("clear-cache", false, "drop every cached parse result before running")
	parseCmd.Flags().Bool("nfc", false, "apply Unicode NFC to names read from files")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

// parseFlags applies explicitly set command flags over the manifest config.
func parseFlags(cmd *cobra.Command, env *runEnv) (driver.Options, error) {
	flags := cmd.Flags()
	if flags.Changed("permissive") {
		v, err := flags.GetBool("permissive")
		if err != nil {
			return driver.Options{}, fmt.Errorf("failed to get permissive flag: %w", err)
		}
		env.cfg.Parse.Permissive = v
	}
	if flags.Changed("max-depth") {
		v, err := flags.GetInt("max-depth")
		if err != nil {
			return driver.Options{}, fmt.Errorf("failed to get max-depth flag: %w", err)
		}
		if v < 0 {
			return driver.Options{}, fmt.Errorf("--max-depth must not be negative")
		}
		env.cfg.Parse.MaxDepth = v
	}
	if err := applyNFCFlag(cmd, env); err != nil {
		return driver.Options{}, err
	}
	opts := env.driverOptions()

	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	opts.Jobs = jobs

	useCache := env.cfg.Cache.Enabled
	if flags.Changed("cache") {
		if useCache, err = flags.GetBool("cache"); err != nil {
			return driver.Options{}, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	clearCache, err := flags.GetBool("clear-cache")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if !useCache && !clearCache {
		return opts, nil
	}
	cache, err := env.openCache()
	if err != nil {
		return driver.Options{}, err
	}
	if clearCache {
		if err := cache.Clear(); err != nil {
			return driver.Options{}, fmt.Errorf("failed to clear parse cache: %w", err)
		}
	}
	if useCache {
		opts.Cache = cache
	}
	return opts, nil
}

// applyNFCFlag включает NFC для файлов, если --nfc задан явно.
func applyNFCFlag(cmd *cobra.Command, env *runEnv) error {
	if !cmd.Flags().Changed("nfc") {
		return nil
	}
	v, err := cmd.Flags().GetBool("nfc")
	if err != nil {
		return fmt.Errorf("failed to get nfc flag: %w", err)
	}
	env.cfg.Parse.NFC = v
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	env, err := loadRunEnv(cmd)
	if err != nil {
		return err
	}

	formatName := env.cfg.Output.Format
	if cmd.Flags().Changed("format") {
		if formatName, err = cmd.Flags().GetString("format"); err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
	}
	format, err := diagfmt.ParseTreeFormat(formatName)
	if err != nil {
		return err
	}
	treeOpts := diagfmt.TreeOpts{Format: format, Width: terminalWidth(os.Stdout)}

	opts, err := parseFlags(cmd, env)
	if err != nil {
		return err
	}

	kind, err := classifyInput(filePath)
	if err != nil {
		return err
	}
	if kind == inputDir {
		return parseDirectory(cmd, env, filePath, opts, treeOpts)
	}

	var result *driver.ParseResult
	if kind == inputStdin {
		content, readErr := readStdin(cmd.InOrStdin())
		if readErr != nil {
			return readErr
		}
		result = driver.ParseSource(cmd.Context(), stdinName, content, opts)
	} else {
		result, err = driver.Parse(cmd.Context(), filePath, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
	}

	result.Bag.Sort()
	env.printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet)
	if result.Err != nil {
		env.printTimings(cmd.ErrOrStderr())
		return errMalformed
	}

	var formatErr error
	env.timer.Track("render", func() {
		formatErr = diagfmt.FormatTree(cmd.OutOrStdout(), result.Tree, treeOpts)
	})
	if formatErr != nil {
		return formatErr
	}
	env.printTimings(cmd.ErrOrStderr())
	return nil
}

func parseDirectory(cmd *cobra.Command, env *runEnv, dir string, opts driver.Options, treeOpts diagfmt.TreeOpts) error {
	fs, results, err := driver.ParseDir(cmd.Context(), dir, opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	// Результаты уже отсортированы по пути
	env.printDiagnostics(cmd.ErrOrStderr(), driver.MergeBags(results, env.cfg.Output.MaxDiagnostics), fs)

	entries := make([]diagfmt.NamedTree, 0, len(results))
	failed := false
	for _, r := range results {
		displayPath := r.Path
		if r.ParseResult != nil && r.File != nil {
			displayPath = r.File.DisplayPath(fs.BaseDir())
		}
		var entry diagfmt.NamedTree
		entry.Path = displayPath
		if r.Failed() {
			failed = true
		} else {
			entry.Tree = r.Tree
		}
		entries = append(entries, entry)
	}

	var formatErr error
	env.timer.Track("render", func() {
		formatErr = diagfmt.FormatTrees(cmd.OutOrStdout(), entries, treeOpts, !env.quiet)
	})
	if formatErr != nil {
		return formatErr
	}
	env.printTimings(cmd.ErrOrStderr())
	if failed {
		return errMalformed
	}
	return nil
}

// terminalWidth возвращает ширину терминала или 0, если вывод не в tty.
func terminalWidth(f *os.File) int {
	if !isTerminal(f) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
