package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"newick/internal/diag"
	"newick/internal/source"
)

type palette struct {
	err, warn, info, note, path, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.path, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		file := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			pal.path.Sprintf("%s:%d:%d", formatPath(file, fs, opts.PathMode), start.Line, start.Col),
			pal.severity(d.Severity).Sprint(d.Severity.String()),
			d.Code.ID(),
			d.Message,
		)
		writeSnippet(w, fs, d.Primary, opts.Context, pal, pal.caret)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s: %s\n",
				pal.note.Sprint("note:"),
				pal.path.Sprintf("%s:%d:%d", formatPath(nf, fs, opts.PathMode), ns.Line, ns.Col),
				n.Msg,
			)
			writeSnippet(w, fs, n.Span, 0, pal, pal.note)
		}
	}
}

// writeSnippet печатает строку span и до context строк перед ней,
// затем подчёркивание.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, context int, pal palette, mark *color.Color) {
	file := fs.Get(sp.File)
	if len(file.Content) == 0 {
		return
	}
	start, end := fs.Resolve(sp)
	first := int(start.Line) - max(context, 0)
	first = max(first, 1)

	gutterWidth := len(fmt.Sprint(start.Line))
	for ln := first; ln <= int(start.Line); ln++ {
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), file.GetLine(safecast.MustConv[uint32](ln)))
	}

	line := file.GetLine(start.Line)
	col := min(int(start.Col)-1, len(line))
	pad := padFor(line[:col])

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		endCol := min(int(end.Col)-1, len(line))
		width = max(runewidth.StringWidth(line[col:endCol]), 1)
	} else if end.Line > start.Line {
		width = max(runewidth.StringWidth(line[col:]), 1)
	}
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), pad, mark.Sprint(underline))
}

// padFor повторяет ширину prefix пробелами, сохраняя табы.
func padFor(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
