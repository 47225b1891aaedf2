// Package tree is the in-memory form of a Newick tree.
//
// Tree is a closed sum type: the only implementations are Leaf and Node,
// and consumers dispatch with a type switch. Values are built once by the
// parser (or by hand) and never mutated; a Node exclusively owns its
// children, so a Tree is always finite and acyclic.
//
// Render produces the canonical text form used for structural equality:
// a Leaf is its bare name and a Node is "(" + children joined by "," + ")".
package tree
