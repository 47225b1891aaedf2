package parser_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newick/internal/diag"
	"newick/internal/lexer"
	"newick/internal/parser"
	"newick/internal/source"
	"newick/internal/testkit"
	"newick/internal/tree"
)

func l(name string) tree.Leaf { return tree.NewLeaf(name) }

func n(children ...tree.Tree) tree.Node { return tree.NewNode(children...) }

func TestParseWellFormed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  tree.Tree
		canon string
	}{
		{"single leaf", "A", l("A"), "A"},
		{"nested", "(A, (B, C))", n(l("A"), n(l("B"), l("C"))), "(A,(B,C))"},
		{"mixed", "((A, B), C, ((D, E), F))", n(n(l("A"), l("B")), l("C"), n(n(l("D"), l("E")), l("F"))), "((A,B),C,((D,E),F))"},
		{"empty node", "()", n(), "()"},
		{"nested empties", "(()(()))", n(n(), n(n())), "((),(()))"},
		{"commas optional", "(A B C)", n(l("A"), l("B"), l("C")), "(A,B,C)"},
		{"single child", "((A))", n(n(l("A"))), "((A))"},
		{"branch lengths dropped", "(A:0.1,B:0.2);", n(l("A"), l("0"), l("1"), l("B"), l("0"), l("2")), "(A,0,1,B,0,2)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.input)
			require.NoError(t, err)
			assert.True(t, tree.Equal(tt.want, got), "got %s", tree.Render(got))
			assert.Equal(t, tt.canon, tree.Render(got))
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
		start uint32
	}{
		{"close before open", ")(", diag.SynUnbalancedClose, 0},
		{"extra close", "(A))", diag.SynUnbalancedClose, 3},
		{"empty", "", diag.SynEmptyInput, 0},
		{"only separators", " ,;: ", diag.SynEmptyInput, 5},
		{"unclosed", "(A", diag.SynUnclosedParen, 2},
		{"two trees", "A B", diag.SynExtraTopLevel, 2},
		{"two nodes", "(A)(B)", diag.SynExtraTopLevel, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, parser.ErrMalformedInput)

			var merr *parser.MalformedInputError
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, tt.code, merr.Code)
			assert.Equal(t, tt.start, merr.Span.Start)
		})
	}
}

func TestUnclosedPointsAtOpenParen(t *testing.T) {
	_, err := parser.Parse("(A,(B,C)")
	var merr *parser.MalformedInputError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, uint32(0), merr.Opened.Start)

	d := merr.Diagnostic()
	assert.Equal(t, diag.SevError, d.Severity)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, "'(' opened here", d.Notes[0].Msg)
}

func TestErrorMessage(t *testing.T) {
	_, err := parser.Parse("A)")
	require.Error(t, err)
	assert.Equal(t, `SYN2001: ')' without a matching '(' (token ")" at offset 1)`, err.Error())

	_, err = parser.Parse("")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "SYN2003: empty input"))
}

func TestPermissiveKeepsLastTree(t *testing.T) {
	bag := diag.NewBag(10)
	got, err := parser.ParseString("A (B, C)", parser.Options{
		Permissive: true,
		Reporter:   diag.BagReporter{Bag: bag},
	})
	require.NoError(t, err)
	assert.Equal(t, "(B,C)", tree.Render(got))

	require.Equal(t, 1, bag.Len())
	d := bag.Items()[0]
	assert.Equal(t, diag.SynExtraTopLevel, d.Code)
	assert.Equal(t, diag.SevWarning, d.Severity)
	assert.False(t, bag.HasErrors())
}

func TestPermissiveStillRejectsUnclosed(t *testing.T) {
	_, err := parser.ParseString("A (B", parser.Options{Permissive: true})
	var merr *parser.MalformedInputError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, diag.SynUnclosedParen, merr.Code)
}

func TestMaxDepth(t *testing.T) {
	opts := parser.Options{MaxDepth: 2}

	_, err := parser.ParseString("((A))", opts)
	require.NoError(t, err)

	_, err = parser.ParseString("(((A)))", opts)
	var merr *parser.MalformedInputError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, diag.SynNestingTooDeep, merr.Code)
	assert.Equal(t, uint32(2), merr.Span.Start)

	deep := strings.Repeat("(", 10000) + "A" + strings.Repeat(")", 10000)
	got, err := parser.Parse(deep)
	require.NoError(t, err)
	assert.Equal(t, 10000, tree.Depth(got))
}

func TestErrorsReachReporter(t *testing.T) {
	bag := diag.NewBag(10)
	_, err := parser.ParseString(")", parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	require.Error(t, err)
	require.True(t, bag.HasErrors())
	assert.Equal(t, diag.SynUnbalancedClose, bag.Items()[0].Code)
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"A",
		"()",
		"(A, (B, C))",
		"((A, B), C, ((D, E), F))",
		"(\n  Homo_sapiens,\n  (Pan, Gorilla)\n)",
		"(Ñandú,東京)",
	}
	for _, in := range inputs {
		first, err := parser.Parse(in)
		require.NoError(t, err, in)
		canon := tree.Render(first)

		second, err := parser.Parse(canon)
		require.NoError(t, err, canon)
		assert.True(t, tree.Equal(first, second), "round trip changed %q", in)
		assert.Equal(t, canon, tree.Render(second), "render is not idempotent for %q", in)
		assert.NoError(t, testkit.CheckRoundTrip(second))
	}
}

func TestRoundTripHandBuilt(t *testing.T) {
	trees := []tree.Tree{
		l("A"),
		n(),
		n(l("\u212B"), l("\u2126")),
		n(l("Homo_sapiens"), n(l("\uF900"), l("Caf\u00e9"))),
		n(n(n(l("_"))), l("42")),
	}
	for _, want := range trees {
		canon := tree.Render(want)
		got, err := parser.Parse(canon)
		require.NoError(t, err, canon)
		assert.True(t, tree.Equal(want, got), "round trip changed %q into %q", canon, tree.Render(got))
		assert.NoError(t, testkit.CheckRoundTrip(want))
	}
}

func TestWhitespaceInsensitive(t *testing.T) {
	a, err := parser.Parse("((A,B),C)")
	require.NoError(t, err)
	b, err := parser.Parse(" ( ( A ,\tB ) ,\r\n C ) ")
	require.NoError(t, err)
	assert.True(t, tree.Equal(a, b))
}

func TestParseTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.nwk", []byte("(A,B)")))
	tokens := lexer.Tokenize(file, lexer.Options{})

	got, err := parser.ParseTokens(tokens, parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, "(A,B)", tree.Render(got))

	_, err = parser.ParseTokens(nil, parser.Options{})
	assert.ErrorIs(t, err, parser.ErrMalformedInput)
}

func TestParseFile(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("f.nwk", []byte("(A, B)")))

	res := parser.ParseFile(context.Background(), file, parser.Options{})
	require.NoError(t, res.Err)
	assert.Len(t, res.Tokens, 4)
	require.NoError(t, testkit.CheckTokenInvariants(res.Tokens, file))
	assert.Equal(t, "(A,B)", tree.Render(res.Tree))
}

func TestParseFileCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("f.nwk", []byte("A")))
	res := parser.ParseFile(ctx, file, parser.Options{})
	assert.True(t, errors.Is(res.Err, context.Canceled))
	assert.Nil(t, res.Tree)
}

func BenchmarkParse(b *testing.B) {
	var sb strings.Builder
	for range 500 {
		sb.WriteString("((A, B), C, ((D, E), F)),")
	}
	input := "(" + sb.String() + "G)"
	b.ReportAllocs()
	for b.Loop() {
		if _, err := parser.Parse(input); err != nil {
			b.Fatal(err)
		}
	}
}
