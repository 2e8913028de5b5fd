package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emblem/internal/diag"
	"emblem/internal/source"
)

func TestJSONDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("doc.em", []byte("ok\n.foo[a\nb]\n"))
	open := source.Span{File: fileID, Start: 7, End: 8}
	nl := source.Span{File: fileID, Start: 9, End: 10}

	bag := diag.NewBag(10)
	bag.Add(diag.NewlineInAttrs(open, nl))
	bag.Add(diag.DanglingEscape(source.Span{File: fileID, Start: 0, End: 1}))

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}))

	var out DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, 1, out.Errors)
	assert.Equal(t, 1, out.Warnings)

	d := out.Diagnostics[0]
	assert.Equal(t, "ERROR", d.Severity)
	assert.Equal(t, diag.SynNewlineInAttrs.ID(), d.Code)
	assert.Equal(t, "doc.em", d.Location.File)
	assert.Equal(t, uint32(2), d.Location.StartLine)
	assert.Equal(t, uint32(5), d.Location.StartCol)
	require.Len(t, d.Notes, 2)
	assert.Equal(t, "error", d.Notes[0].Severity)
	assert.Equal(t, "info", d.Notes[1].Severity)

	assert.Equal(t, "WARNING", out.Diagnostics[1].Severity)
}

func TestJSONMaxAndNoNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("doc.em", []byte("*/ */\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.ExtraCommentClose(source.Span{File: fileID, Start: 0, End: 2}))
	bag.Add(diag.ExtraCommentClose(source.Span{File: fileID, Start: 3, End: 5}))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	require.Len(t, out.Diagnostics, 1)
	assert.Empty(t, out.Diagnostics[0].Notes)
	assert.Zero(t, out.Diagnostics[0].Location.StartLine)
}
