// Package testkit holds invariant checks shared by package tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"newick/internal/parser"
	"newick/internal/source"
	"newick/internal/token"
	"newick/internal/tree"
)

// CheckTokenInvariants verifies a token stream against its file:
// 1) every span is non-empty, belongs to sf and lies within its content
// 2) spans are strictly increasing and do not overlap
// 3) token text equals the span text and matches the token kind
func CheckTokenInvariants(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span points to different file id: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End <= sp.Start {
			return fmt.Errorf("token %d: empty span %v", i, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("token %d: span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if i > 0 && sp.Start < prevEnd {
			return fmt.Errorf("token %d: span %v overlaps previous token ending at %d", i, sp, prevEnd)
		}
		prevEnd = sp.End

		if got := sf.Text(sp); got != tok.Text {
			return fmt.Errorf("token %d: text %q does not match source %q", i, tok.Text, got)
		}
		switch tok.Kind {
		case token.LParen:
			if tok.Text != "(" {
				return fmt.Errorf("token %d: LParen with text %q", i, tok.Text)
			}
		case token.RParen:
			if tok.Text != ")" {
				return fmt.Errorf("token %d: RParen with text %q", i, tok.Text)
			}
		case token.Name:
			if tok.Text == "(" || tok.Text == ")" {
				return fmt.Errorf("token %d: Name with paren text", i)
			}
		default:
			return fmt.Errorf("token %d: unexpected kind %v in stream", i, tok.Kind)
		}
	}
	return nil
}

// CheckRoundTrip verifies that rendering t and parsing the result yields
// a structurally equal tree with the same canonical form.
func CheckRoundTrip(t tree.Tree) error {
	canon := tree.Render(t)
	back, err := parser.Parse(canon)
	if err != nil {
		return fmt.Errorf("reparse of %q failed: %w", canon, err)
	}
	if !tree.Equal(t, back) {
		return fmt.Errorf("reparse of %q changed the tree to %q", canon, tree.Render(back))
	}
	if again := tree.Render(back); again != canon {
		return fmt.Errorf("render is not idempotent: %q then %q", canon, again)
	}
	return nil
}
