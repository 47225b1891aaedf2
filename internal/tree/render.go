package tree

import (
	"fmt"
	"strings"
)

// Render returns the canonical Newick form of t. A nil tree renders as "".
func Render(t Tree) string {
	var sb strings.Builder
	writeTree(&sb, t)
	return sb.String()
}

func writeTree(sb *strings.Builder, t Tree) {
	switch v := deref(t).(type) {
	case nil:
	case Leaf:
		sb.WriteString(v.Name)
	case Node:
		writeChildren(sb, v.Children)
	default:
		panic(fmt.Sprintf("tree: unexpected variant %T", t))
	}
}

func writeChildren(sb *strings.Builder, children []Tree) {
	sb.WriteByte('(')
	for i, child := range children {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeTree(sb, child)
	}
	sb.WriteByte(')')
}
