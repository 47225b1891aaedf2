package diagfmt

import (
	"fmt"
	"strings"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto uses the path relative to the FileSet base when it is shorter.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int // строк контекста вокруг primary
	PathMode  PathMode
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}

// TreeFormat selects how a parsed tree is printed.
type TreeFormat uint8

const (
	TreeCanonical TreeFormat = iota
	TreeIndented
	TreeJSON
	TreeMsgpack
)

func (f TreeFormat) String() string {
	switch f {
	case TreeCanonical:
		return "canonical"
	case TreeIndented:
		return "tree"
	case TreeJSON:
		return "json"
	case TreeMsgpack:
		return "msgpack"
	}
	return "unknown"
}

// ParseTreeFormat accepts the names printed by TreeFormat.String.
func ParseTreeFormat(s string) (TreeFormat, error) {
	switch strings.ToLower(s) {
	case "", "canonical", "newick":
		return TreeCanonical, nil
	case "tree", "indent":
		return TreeIndented, nil
	case "json":
		return TreeJSON, nil
	case "msgpack":
		return TreeMsgpack, nil
	}
	return TreeCanonical, fmt.Errorf("unknown tree format %q (expected: canonical|tree|json|msgpack)", s)
}
