package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newick/internal/diag"
	"newick/internal/source"
)

func TestJSONDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("j.nwk", []byte("(A"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnclosedParen, source.Span{File: fileID, Start: 2, End: 2}, "unclosed").
		WithNote(source.Span{File: fileID, Start: 0, End: 1}, "'(' opened here"))
	bag.Add(diag.New(diag.SevInfo, diag.LexSkippedChar, source.Span{File: fileID, Start: 1, End: 2}, "skipped"))

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true, Max: 1}))

	var out DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, 1, out.Count)
	d := out.Diagnostics[0]
	assert.Equal(t, "ERROR", d.Severity)
	assert.Equal(t, "SYN2002", d.Code)
	assert.Equal(t, "Unclosed '('", d.Title)
	assert.Equal(t, "j.nwk", d.Location.File)
	assert.Equal(t, uint32(1), d.Location.StartLine)
	assert.Equal(t, uint32(3), d.Location.StartCol)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, uint32(0), d.Notes[0].Location.StartByte)
}

func TestJSONWithoutNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("j.nwk", []byte("(A"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnclosedParen, source.Span{File: fileID, Start: 2, End: 2}, "unclosed").
		WithNote(source.Span{File: fileID}, "note"))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	require.Len(t, out.Diagnostics, 1)
	assert.Nil(t, out.Diagnostics[0].Notes)
	assert.Zero(t, out.Diagnostics[0].Location.StartLine)
}
