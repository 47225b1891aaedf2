package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newick/internal/lexer"
	"newick/internal/source"
)

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.nwk", []byte("(A,\nBc)")))
	tokens := lexer.Tokenize(file, lexer.Options{})

	var buf bytes.Buffer
	require.NoError(t, FormatTokensPretty(&buf, tokens, fs))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `  1: LParen "("              at 1:1-1:2`, lines[0])
	assert.Equal(t, `  3: Name   "Bc"             at 2:1-2:3`, lines[2])
}

func TestFormatTokensJSON(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.nwk", []byte("(A)")))
	tokens := lexer.Tokenize(file, lexer.Options{})

	var buf bytes.Buffer
	require.NoError(t, FormatTokensJSON(&buf, tokens))
	var out []TokenOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Equal(t, TokenOutput{Kind: "Name", Text: "A", Span: source.Span{File: file.ID, Start: 1, End: 2}}, out[1])

	buf.Reset()
	require.NoError(t, FormatTokensJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}
