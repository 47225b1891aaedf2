package project

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a loaded newick.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Parse  ParseConfig  `toml:"parse"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
}

type ParseConfig struct {
	Permissive bool     `toml:"permissive"`
	MaxDepth   int      `toml:"max_depth"`
	Extensions []string `toml:"extensions"`
	NFC        bool     `toml:"nfc"` // NFC-нормализация имён при чтении файлов
}

type OutputConfig struct {
	Format         string `toml:"format"`
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Defaults returns the configuration used without a manifest.
func Defaults() Config {
	return Config{
		Parse: ParseConfig{
			Extensions: []string{".nwk", ".newick", ".tree"},
		},
		Output: OutputConfig{
			Format:         "canonical",
			Color:          "auto",
			MaxDiagnostics: 100,
		},
		Cache: CacheConfig{
			Dir: ".newick-cache",
		},
	}
}

// ManifestError is returned by LoadManifest when newick.toml exists but
// cannot be decoded or validated.
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string { return e.Err.Error() }

func (e *ManifestError) Unwrap() error { return e.Err }

// LoadManifest finds newick.toml above startDir and loads it.
// ok is false when there is no manifest.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, &ManifestError{Path: manifestPath, Err: err}
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes path over Defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Parse.MaxDepth < 0 {
		return fmt.Errorf("[parse].max_depth must be >= 0, got %d", c.Parse.MaxDepth)
	}
	if len(c.Parse.Extensions) == 0 {
		return fmt.Errorf("[parse].extensions must not be empty")
	}
	for i, ext := range c.Parse.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return fmt.Errorf("[parse].extensions[%d] is empty", i)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Parse.Extensions[i] = strings.ToLower(ext)
	}
	switch c.Output.Format {
	case "canonical", "tree", "json", "msgpack":
	default:
		return fmt.Errorf("[output].format: unknown value %q", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color: unknown value %q (expected auto|on|off)", c.Output.Color)
	}
	if c.Output.MaxDiagnostics < 0 {
		return fmt.Errorf("[output].max_diagnostics must be >= 0")
	}
	if strings.TrimSpace(c.Cache.Dir) == "" {
		return fmt.Errorf("[cache].dir must not be empty")
	}
	return nil
}

// CacheDir resolves [cache].dir against the manifest root.
func (m *Manifest) CacheDir() string {
	if filepath.IsAbs(m.Config.Cache.Dir) {
		return m.Config.Cache.Dir
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Cache.Dir))
}

// HasTreeExt reports whether path ends with one of exts (case-insensitive).
func HasTreeExt(path string, exts []string) bool {
	return slices.Contains(exts, strings.ToLower(filepath.Ext(path)))
}

// CollectFiles returns tree files under dir in lexical order.
// Hidden directories are skipped.
func CollectFiles(dir string, exts []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if HasTreeExt(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}
