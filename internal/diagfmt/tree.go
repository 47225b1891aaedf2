package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/vmihailenco/msgpack/v5"

	"newick/internal/tree"
)

// TreeOpts configures FormatTree.
type TreeOpts struct {
	Format TreeFormat
	Width  int // обрезка строк TreeIndented по ширине терминала, 0 - без обрезки
}

// FormatTree writes t in the requested format.
func FormatTree(w io.Writer, t tree.Tree, opts TreeOpts) error {
	switch opts.Format {
	case TreeCanonical:
		_, err := fmt.Fprintln(w, tree.Render(t))
		return err
	case TreeIndented:
		return FormatTreeIndented(w, t, opts.Width)
	case TreeJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(tree.ToWire(t))
	case TreeMsgpack:
		return msgpack.NewEncoder(w).Encode(tree.ToWire(t))
	}
	return fmt.Errorf("unknown tree format %d", opts.Format)
}

// FormatTreeIndented печатает дерево с псевдографикой:
//
//	(A,(B,C))
//	├── A
//	└── (2)
//	    ├── B
//	    └── C
//
// Внутренний узел подписан числом детей.
func FormatTreeIndented(w io.Writer, t tree.Tree, width int) error {
	var sb strings.Builder
	writeLine(&sb, tree.Render(t), width)
	if n, ok := t.(tree.Node); ok {
		writeBranches(&sb, n.Children, "", width)
	} else if n, ok := t.(*tree.Node); ok && n != nil {
		writeBranches(&sb, n.Children, "", width)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeBranches(sb *strings.Builder, children []tree.Tree, prefix string, width int) {
	for i, child := range children {
		last := i == len(children)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		switch v := child.(type) {
		case tree.Leaf:
			writeLine(sb, prefix+branch+v.Name, width)
		case *tree.Leaf:
			writeLine(sb, prefix+branch+v.Name, width)
		case tree.Node:
			writeLine(sb, fmt.Sprintf("%s%s(%d)", prefix, branch, len(v.Children)), width)
			writeBranches(sb, v.Children, prefix+indent, width)
		case *tree.Node:
			writeLine(sb, fmt.Sprintf("%s%s(%d)", prefix, branch, len(v.Children)), width)
			writeBranches(sb, v.Children, prefix+indent, width)
		}
	}
}

func writeLine(sb *strings.Builder, line string, width int) {
	sb.WriteString(truncate(line, width))
	sb.WriteByte('\n')
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

// NamedTree is one entry of a multi-file output; Tree is nil for files
// that failed to parse.
type NamedTree struct {
	Path string
	Tree tree.Tree
}

// FormatTrees writes several trees in order. Text formats print a
// "== path ==" header before each entry when headers is set and skip failed
// entries; json and msgpack write one object keyed by path with failed
// entries as null.
func FormatTrees(w io.Writer, entries []NamedTree, opts TreeOpts, headers bool) error {
	switch opts.Format {
	case TreeJSON, TreeMsgpack:
		byPath := make(map[string]*tree.Wire, len(entries))
		for _, e := range entries {
			if e.Tree == nil {
				byPath[e.Path] = nil
				continue
			}
			wire := tree.ToWire(e.Tree)
			byPath[e.Path] = &wire
		}
		if opts.Format == TreeMsgpack {
			enc := msgpack.NewEncoder(w)
			enc.SetSortMapKeys(true)
			return enc.Encode(byPath)
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(byPath)
	}

	first := true
	for _, e := range entries {
		if e.Tree == nil {
			continue
		}
		if headers {
			if !first {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "== %s ==\n", e.Path); err != nil {
				return err
			}
		}
		first = false
		if err := FormatTree(w, e.Tree, opts); err != nil {
			return err
		}
	}
	return nil
}
