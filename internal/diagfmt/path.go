package diagfmt

import (
	"path/filepath"

	"newick/internal/source"
)

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if f.Flags&source.FileVirtual != 0 {
			return f.Path
		}
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		return f.DisplayPath(fs.BaseDir())
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		rel := f.DisplayPath(fs.BaseDir())
		if len(rel) < len(f.Path) {
			return rel
		}
		return f.Path
	}
}
