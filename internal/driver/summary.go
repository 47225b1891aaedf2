package driver

import (
	"strconv"

	"newick/internal/diag"
	"newick/internal/tree"
)

// Summary aggregates ParseFiles results for the check command.
type Summary struct {
	Files  int
	OK     int
	Failed int
	Cached int
	Warned int // разобраны, но с предупреждениями (--permissive)
	Leaves int
	Nodes  int
	// MaxDepth is the deepest tree across all files.
	MaxDepth int
}

func Summarize(results []ParseDirResult) Summary {
	var s Summary
	for _, r := range results {
		s.Files++
		if r.Failed() {
			s.Failed++
			continue
		}
		s.OK++
		if r.Cached {
			s.Cached++
		}
		if r.Bag.HasWarnings() {
			s.Warned++
		}
		st := tree.Count(r.Tree)
		s.Leaves += st.Leaves
		s.Nodes += st.Nodes
		s.MaxDepth = max(s.MaxDepth, st.Depth)
	}
	return s
}

// MergeBags collects per-file diagnostics in result order, each file's
// diagnostics sorted by position, stopping at maxDiagnostics.
func MergeBags(results []ParseDirResult, maxDiagnostics int) *diag.Bag {
	out := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		if r.ParseResult == nil || r.Bag == nil {
			continue
		}
		r.Bag.Sort()
		for _, d := range r.Bag.Items() {
			if !out.Add(d) {
				return out
			}
		}
	}
	return out
}

func itoa(n int) string { return strconv.Itoa(n) }
