package newick

import (
	"newick/internal/lexer"
	"newick/internal/parser"
	"newick/internal/source"
	"newick/internal/token"
	"newick/internal/tree"
)

type (
	// Tree is either a Leaf or a Node.
	Tree = tree.Tree
	Leaf = tree.Leaf
	Node = tree.Node

	// Token is one lexical unit: '(' , ')' or a name.
	Token = token.Token

	MalformedInputError = parser.MalformedInputError
)

// ErrMalformedInput matches every parse failure via errors.Is.
var ErrMalformedInput = parser.ErrMalformedInput

// Tokenize returns the tokens of text in source order. It never fails:
// characters that cannot start a token are skipped. Names are returned
// exactly as they appear, and token spans are byte offsets into text.
func Tokenize(text string) []Token {
	fs := source.NewFileSet()
	file := fs.Get(fs.Add("<input>", []byte(text), source.FileVirtual))
	return lexer.Tokenize(file, lexer.Options{})
}

// Parse parses text as exactly one tree. Names are not normalized, so
// Parse(Render(t)) equals t for every tree whose names are word runs.
func Parse(text string) (Tree, error) {
	return parser.Parse(text)
}

// Render returns the canonical form of t; nil renders as "".
func Render(t Tree) string {
	return tree.Render(t)
}
