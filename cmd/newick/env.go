package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"newick/internal/diag"
	"newick/internal/diagfmt"
	"newick/internal/driver"
	"newick/internal/observ"
	"newick/internal/project"
	"newick/internal/source"
)

// exitError завершает процесс с кодом, когда всё уже выведено.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// errMalformed is returned after malformed-input diagnostics were printed.
var errMalformed = &exitError{code: 1}

// runEnv holds settings shared by every command: the newick.toml config
// with explicitly set flags applied on top.
type runEnv struct {
	manifest *project.Manifest // nil без newick.toml
	cfg      project.Config
	color    bool
	quiet    bool
	timer    *observ.Timer // nil без --timings
}

func loadRunEnv(cmd *cobra.Command) (*runEnv, error) {
	flags := cmd.Root().PersistentFlags()

	env := &runEnv{cfg: project.Defaults()}
	manifest, ok, err := project.LoadManifest(".")
	if err != nil {
		var manifestErr *project.ManifestError
		if !errors.As(err, &manifestErr) {
			return nil, fmt.Errorf("failed to look up %s: %w", project.ManifestName, err)
		}
		colorFlag, _ := flags.GetString("color")
		useColor, _ := resolveColor(colorFlag, writerIsTerminal(cmd.ErrOrStderr()))
		reportManifestError(cmd.ErrOrStderr(), manifestErr.Path, manifestErr.Err, useColor)
		return nil, &exitError{code: 2}
	}
	if ok {
		env.cfg = manifest.Config
		env.manifest = manifest
	}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	if !flags.Changed("color") {
		colorFlag = env.cfg.Output.Color
	}
	env.color, err = resolveColor(colorFlag, writerIsTerminal(cmd.ErrOrStderr()))
	if err != nil {
		return nil, err
	}

	if flags.Changed("max-diagnostics") {
		maxDiagnostics, err := flags.GetInt("max-diagnostics")
		if err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		env.cfg.Output.MaxDiagnostics = maxDiagnostics
	}

	env.quiet, err = flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if showTimings {
		env.timer = observ.NewTimer()
	}
	return env, nil
}

func (e *runEnv) driverOptions() driver.Options {
	opts := driver.FromConfig(e.cfg)
	opts.Timer = e.timer
	return opts
}

// openCache открывает кеш из [cache]; относительный dir считается от
// каталога манифеста.
func (e *runEnv) openCache() (*driver.DiskCache, error) {
	dir := e.cfg.Cache.Dir
	if e.manifest != nil {
		dir = e.manifest.CacheDir()
	}
	cache, err := driver.OpenDiskCache(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open parse cache: %w", err)
	}
	return cache, nil
}

// printDiagnostics печатает bag в текущем порядке; сортирует вызывающий.
func (e *runEnv) printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:     e.color,
		Context:   2,
		ShowNotes: true,
	})
}

func (e *runEnv) printTimings(w io.Writer) {
	if e.timer == nil {
		return
	}
	fmt.Fprint(w, e.timer.Summary())
}

func resolveColor(value string, tty bool) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return tty, nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// reportManifestError печатает ошибку newick.toml как диагностику PRJ5001.
func reportManifestError(w io.Writer, path string, err error, useColor bool) {
	fs := source.NewFileSet()
	id := fs.Add(path, nil, source.FileVirtual)
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.ProjManifestError, source.Span{File: id}, err.Error()))
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{Color: useColor})
}
