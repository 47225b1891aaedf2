package driver

import (
	"fmt"

	"newick/internal/observ"
	"newick/internal/project"
)

// Options configures Tokenize, Parse and ParseDir.
type Options struct {
	MaxDiagnostics int
	ReportSkipped  bool
	Permissive     bool
	MaxDepth       int
	Extensions     []string // для ParseDir, по умолчанию из project.Defaults
	NFC            bool     // файлы читаются через FileSet.LoadNFC; stdin не трогаем

	Jobs     int // 0 - GOMAXPROCS
	Cache    *DiskCache
	Timer    *observ.Timer
	Progress ProgressSink
}

// FromConfig maps newick.toml settings onto Options.
func FromConfig(cfg project.Config) Options {
	return Options{
		MaxDiagnostics: cfg.Output.MaxDiagnostics,
		Permissive:     cfg.Parse.Permissive,
		MaxDepth:       cfg.Parse.MaxDepth,
		Extensions:     cfg.Parse.Extensions,
		NFC:            cfg.Parse.NFC,
	}
}

// fingerprint covers every option that changes the parse outcome.
func (o Options) fingerprint() project.Digest {
	return project.StringDigest(fmt.Sprintf("permissive=%t;max_depth=%d", o.Permissive, o.MaxDepth))
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return project.Defaults().Parse.Extensions
	}
	return o.Extensions
}
