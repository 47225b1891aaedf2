package parser

import (
	"errors"
	"fmt"

	"newick/internal/diag"
	"newick/internal/source"
)

// ErrMalformedInput matches every *MalformedInputError via errors.Is.
var ErrMalformedInput = errors.New("malformed newick input")

// MalformedInputError describes why a token stream does not form exactly
// one well-formed tree.
type MalformedInputError struct {
	Code  diag.Code
	Span  source.Span
	Token string // offending token text, empty when there is none
	Msg   string

	// Opened is the span of the matching '(' for SynUnclosedParen.
	Opened source.Span
}

func (e *MalformedInputError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s: %s (token %q at offset %d)", e.Code.ID(), e.Msg, e.Token, e.Span.Start)
	}
	return fmt.Sprintf("%s: %s (offset %d)", e.Code.ID(), e.Msg, e.Span.Start)
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// Diagnostic converts the error into an error-severity diagnostic.
func (e *MalformedInputError) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Code, e.Span, e.Msg)
	if e.Code == diag.SynUnclosedParen && e.Opened != e.Span {
		d = d.WithNote(e.Opened, "'(' opened here")
	}
	return d
}

func malformed(code diag.Code, sp source.Span, tok, msg string) *MalformedInputError {
	return &MalformedInputError{Code: code, Span: sp, Token: tok, Msg: msg}
}
