package lexer

import (
	"fmt"

	"newick/internal/diag"
	"newick/internal/source"
	"newick/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий значимый токен.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipIgnored()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	switch lx.cursor.Peek() {
	case '(':
		return lx.single(token.LParen)
	case ')':
		return lx.single(token.RParen)
	}
	return lx.scanName()
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan is a zero-length span at the current offset.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) single(kind token.Kind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.file.Text(sp)}
}

// scanName съедает самую длинную последовательность word-символов.
// Вызывается только когда skipIgnored остановился на word-символе.
func (lx *Lexer) scanName() token.Token {
	start := lx.cursor.Mark()
	for {
		r, sz := lx.peekRune()
		if sz == 0 || !isWordRune(r) {
			break
		}
		lx.cursor.Advance(sz)
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Name, Span: sp, Text: lx.file.Text(sp)}
}

// skipIgnored пропускает всё, что не может начать токен.
func (lx *Lexer) skipIgnored() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '(' || b == ')' {
			return
		}
		r, sz := lx.peekRune()
		if isWordRune(r) {
			return
		}
		start := lx.cursor.Mark()
		lx.cursor.Advance(sz)
		if lx.opts.ReportSkipped && !isSeparator(r) {
			lx.reportSkipped(r, lx.cursor.SpanFrom(start))
		}
	}
}

func (lx *Lexer) reportSkipped(r rune, sp source.Span) {
	if lx.opts.Reporter == nil {
		return
	}
	msg := fmt.Sprintf("skipped character %q", r)
	if sp.Len() == 1 && lx.file.Content[sp.Start] >= 0x80 {
		msg = fmt.Sprintf("skipped invalid UTF-8 byte 0x%02X", lx.file.Content[sp.Start])
	}
	lx.opts.Reporter.Report(diag.LexSkippedChar, diag.SevInfo, sp, msg, nil)
}

// Tokenize returns every token of file in source order, without the
// trailing EOF. It never fails: unrecognized characters are dropped.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var tokens []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}
