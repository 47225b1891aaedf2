package tree

import "fmt"

// deref folds pointer variants into value variants so callers switch on
// exactly two cases.
func deref(t Tree) Tree {
	switch v := t.(type) {
	case *Leaf:
		if v == nil {
			return nil
		}
		return *v
	case *Node:
		if v == nil {
			return nil
		}
		return *v
	}
	return t
}

// Equal reports whether a and b have the same shape, names and child order.
func Equal(a, b Tree) bool {
	a, b = deref(a), deref(b)
	switch x := a.(type) {
	case nil:
		return b == nil
	case Leaf:
		y, ok := b.(Leaf)
		return ok && x.Name == y.Name
	case Node:
		y, ok := b.(Node)
		if !ok || len(x.Children) != len(y.Children) {
			return false
		}
		for i := range x.Children {
			if !Equal(x.Children[i], y.Children[i]) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("tree: unexpected variant %T", a))
	}
}

// Walk visits t in pre-order. depth is 0 for the root. Returning false
// from fn skips the children of the current node.
func Walk(t Tree, fn func(t Tree, depth int) bool) {
	walk(deref(t), 0, fn)
}

func walk(t Tree, depth int, fn func(Tree, int) bool) {
	if t == nil {
		return
	}
	if !fn(t, depth) {
		return
	}
	if n, ok := t.(Node); ok {
		for _, child := range n.Children {
			walk(deref(child), depth+1, fn)
		}
	}
}

// Leaves returns leaf names in left-to-right order.
func Leaves(t Tree) []string {
	var names []string
	Walk(t, func(t Tree, _ int) bool {
		if l, ok := t.(Leaf); ok {
			names = append(names, l.Name)
		}
		return true
	})
	return names
}

// Depth is the number of edges on the longest root-to-leaf path.
// A single leaf and an empty node both have depth 0.
func Depth(t Tree) int {
	maxDepth := 0
	Walk(t, func(_ Tree, depth int) bool {
		maxDepth = max(maxDepth, depth)
		return true
	})
	return maxDepth
}

// Stats summarises a tree.
type Stats struct {
	Leaves int
	Nodes  int
	Depth  int
}

// Count returns leaf and internal-node counts together with the depth.
func Count(t Tree) Stats {
	var st Stats
	Walk(t, func(t Tree, depth int) bool {
		switch t.(type) {
		case Leaf:
			st.Leaves++
		case Node:
			st.Nodes++
		}
		st.Depth = max(st.Depth, depth)
		return true
	})
	return st
}
