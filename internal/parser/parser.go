package parser

import (
	"context"
	"fmt"
	"strconv"

	"newick/internal/diag"
	"newick/internal/lexer"
	"newick/internal/source"
	"newick/internal/token"
	"newick/internal/trace"
	"newick/internal/tree"
)

type Options struct {
	Reporter diag.Reporter // может быть nil

	// Permissive returns the last top-level tree when several remain,
	// discarding the others with a warning instead of failing.
	Permissive bool

	// MaxDepth limits parenthesis nesting; 0 means unlimited.
	MaxDepth int

	// ReportSkipped is forwarded to the lexer.
	ReportSkipped bool
}

type Result struct {
	Tree   tree.Tree
	Tokens []token.Token
	Err    error
}

// Parse parses text as a single Newick tree with default options.
func Parse(text string) (tree.Tree, error) {
	return ParseString(text, Options{})
}

// ParseString parses text with opts. Diagnostics go to opts.Reporter.
// text is lexed as given, so spans in errors are byte offsets into text.
func ParseString(text string, opts Options) (tree.Tree, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.Add("<input>", []byte(text), source.FileVirtual))
	res := ParseFile(context.Background(), file, opts)
	return res.Tree, res.Err
}

// ParseTokens runs the stack parser over an already tokenized stream.
func ParseTokens(tokens []token.Token, opts Options) (tree.Tree, error) {
	var end source.Span
	if len(tokens) > 0 {
		end = tokens[len(tokens)-1].Span.AtEnd()
	}
	p := Parser{opts: opts, end: end}
	return p.run(tokens)
}

// ParseFile tokenizes and parses one file, tracing it under the span in ctx.
func ParseFile(ctx context.Context, file *source.File, opts Options) Result {
	if err := ctx.Err(); err != nil {
		return Result{Err: err}
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "parse:"+file.Path, trace.CurrentSpan(ctx).SpanID)

	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter, ReportSkipped: opts.ReportSkipped})
	var tokens []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}

	p := Parser{opts: opts, end: lx.EmptySpan()}
	t, err := p.run(tokens)

	span.WithExtra("tokens", strconv.Itoa(len(tokens)))
	if err != nil {
		span.End(err.Error())
	} else {
		span.End("ok")
	}
	return Result{Tree: t, Tokens: tokens, Err: err}
}

// Parser holds the stack for one token stream.
type Parser struct {
	opts  Options
	stack stack
	end   source.Span // пустой span в конце ввода
}

func (p *Parser) run(tokens []token.Token) (tree.Tree, error) {
	for _, tok := range tokens {
		switch tok.Kind {
		case token.LParen:
			p.stack.pushMarker(tok.Span)
			if p.opts.MaxDepth > 0 && p.stack.markers > p.opts.MaxDepth {
				return nil, p.fail(malformed(diag.SynNestingTooDeep, tok.Span, tok.Text,
					fmt.Sprintf("nesting exceeds the limit of %d", p.opts.MaxDepth)))
			}
		case token.Name:
			p.stack.pushTree(tree.Leaf{Name: tok.Text}, tok.Span)
		case token.RParen:
			children, open, ok := p.stack.reduce()
			if !ok {
				return nil, p.fail(malformed(diag.SynUnbalancedClose, tok.Span, tok.Text,
					"')' without a matching '('"))
			}
			p.stack.pushTree(tree.Node{Children: children}, open.Cover(tok.Span))
		default:
			// EOF и Invalid в потоке не несут структуры
		}
	}
	return p.finish()
}

// finish снимает корень со стека.
func (p *Parser) finish() (tree.Tree, error) {
	items := p.stack.items
	if len(items) == 0 {
		return nil, p.fail(malformed(diag.SynEmptyInput, p.end, "", "empty input: no tree to parse"))
	}
	if p.stack.markers > 0 {
		open := p.stack.innermostMarker()
		err := malformed(diag.SynUnclosedParen, p.end, "", "unclosed '(' at end of input")
		err.Opened = open
		return nil, p.fail(err)
	}
	if len(items) > 1 {
		extra := items[1].span.Cover(items[len(items)-1].span)
		msg := fmt.Sprintf("expected one top-level tree, found %d", len(items))
		if !p.opts.Permissive {
			return nil, p.fail(malformed(diag.SynExtraTopLevel, extra, "", msg))
		}
		diag.Emit(p.opts.Reporter, diag.New(diag.SevWarning, diag.SynExtraTopLevel, extra,
			msg+"; keeping the last one").WithNote(items[0].span, "discarded tree starts here"))
		return items[len(items)-1].tree, nil
	}
	return items[0].tree, nil
}

func (p *Parser) fail(err *MalformedInputError) *MalformedInputError {
	diag.Emit(p.opts.Reporter, err.Diagnostic())
	return err
}
