// Package newick reads and writes Newick trees.
//
// The package exposes three functions over the internal pipeline:
// Tokenize splits text into parentheses and names, Parse builds exactly one
// Tree from those tokens with a stack parser, and Render prints a Tree in
// canonical form. Everything that is not a parenthesis or a run of word
// characters (commas, whitespace, ':' ';' and so on) is dropped by the
// tokenizer, so branch lengths and quoting are not understood.
//
//	t, err := newick.Parse("((A, B), C)")
//	if err != nil {
//		return err
//	}
//	fmt.Println(newick.Render(t)) // ((A,B),C)
//
// Parse failures are returned as *MalformedInputError and also match
// ErrMalformedInput with errors.Is.
package newick
