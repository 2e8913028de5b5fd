package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emblem/internal/diag"
	"emblem/internal/source"
)

func prettyFixture(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/home/user/project/docs/intro.em", []byte("first line\nhello */ world\n"))
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	require.True(t, bag.Add(diag.ExtraCommentClose(source.Span{File: fileID, Start: 17, End: 19})))
	return bag, fs
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	bag, fs := prettyFixture(t)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/docs/intro.em:2:7"},
		{"relative", PathModeRelative, "docs/intro.em:2:7"},
		{"basename", PathModeBasename, "intro.em:2:7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			out := buf.String()
			assert.Contains(t, out, tt.contains)
			assert.Contains(t, out, "ERROR SYN2002: no comment to close")
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	bag, fs := prettyFixture(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "intro.em:2:7: ERROR SYN2002: no comment to close", lines[0])
	assert.Equal(t, "  |", lines[1])
	assert.Equal(t, "1 | first line", lines[2])
	assert.Equal(t, "2 | hello */ world", lines[3])
	assert.Equal(t, "  |       ^~ found here", lines[4])
}

func TestPrettyInfoNotesAndHelp(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("doc.em", []byte(".foo[a\nb]\n"))
	open := source.Span{File: fileID, Start: 4, End: 5}
	nl := source.Span{File: fileID, Start: 6, End: 7}

	bag := diag.NewBag(10)
	bag.Add(diag.NewlineInAttrs(open, nl).WithHelp("close the attributes on the same line"))

	var hidden bytes.Buffer
	Pretty(&hidden, bag, fs, PrettyOpts{})
	assert.Contains(t, hidden.String(), "newline found here")
	assert.NotContains(t, hidden.String(), "in inline attributes started here")
	assert.NotContains(t, hidden.String(), "help:")

	var shown bytes.Buffer
	Pretty(&shown, bag, fs, PrettyOpts{ShowNotes: true, ShowHelp: true})
	out := shown.String()
	assert.Contains(t, out, "    - in inline attributes started here")
	assert.Contains(t, out, "help: close the attributes on the same line")
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("doc.em", []byte("日本 */\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.ExtraCommentClose(source.Span{File: fileID, Start: 7, End: 9}))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	// два широких символа и пробел занимают пять колонок
	assert.Contains(t, buf.String(), "  |      ^~ found here")
}

func TestPrettyColor(t *testing.T) {
	bag, fs := prettyFixture(t)

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\x1b[")
}
