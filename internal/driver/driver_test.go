package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emblem/internal/buildpipeline"
	"emblem/internal/config"
	"emblem/internal/diag"
)

const sampleDoc = "hello *world*\n.foo[a, k=v]{x}: y\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func codesOf(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestParseSourceStats(t *testing.T) {
	res, err := ParseSource(context.Background(), "sample.em", []byte(sampleDoc), Options{})
	require.NoError(t, err)
	require.False(t, res.Failed())
	assert.Equal(t, 0, res.Bag.Len())
	assert.Nil(t, res.Timer)

	st := CollectStats(res.Builder, res.FileID)
	assert.Equal(t, 1, st.Pars)
	assert.Equal(t, 1, st.Commands)
	assert.Equal(t, 1, st.Sugars)
	assert.Equal(t, 4, st.Words)
	assert.Equal(t, 2, st.Dispatchable())
	assert.Equal(t, map[string]int{"foo": 1, "bf": 1}, st.Calls)
}

func TestParseSourceError(t *testing.T) {
	res, err := ParseSource(context.Background(), "bad.em", []byte("*/\n"), Options{})
	require.NoError(t, err)
	assert.True(t, res.Failed())
	assert.Equal(t, []diag.Code{diag.SynExtraCommentClose}, codesOf(res.Bag))
}

func TestFatalWarnings(t *testing.T) {
	src := []byte(`a\`)

	res, err := ParseSource(context.Background(), "w.em", src, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, res.Bag.Len())
	assert.Equal(t, diag.SevWarning, res.Bag.Items()[0].Severity)
	assert.False(t, res.Failed())

	res, err = ParseSource(context.Background(), "w.em", src, Options{FatalWarnings: true})
	require.NoError(t, err)
	assert.Equal(t, diag.SevError, res.Bag.Items()[0].Severity)
	assert.True(t, res.Failed())
}

func TestParseFromDiskNormalises(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "nfc.em", "cafe\u0301\r\n")

	res, err := Parse(context.Background(), path, Options{NFC: true, Timings: true})
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9\n", res.File.Text)

	report := res.Timer.Report()
	require.Len(t, report.Phases, 2)
	assert.Equal(t, "load", report.Phases[0].Name)
	assert.Equal(t, "parse", report.Phases[1].Name)
}

func TestParseSourceNormalises(t *testing.T) {
	res, err := ParseSource(context.Background(), "<stdin>", []byte("\ufeffa\r\n\r\nb\r\n"), Options{})
	require.NoError(t, err)
	require.False(t, res.Failed())
	assert.Equal(t, "a\n\nb\n", res.File.Text)

	st := CollectStats(res.Builder, res.FileID)
	assert.Equal(t, 2, st.Pars)
	assert.Equal(t, 2, st.Words)
}

func TestParseSourceRejectsInvalidUTF8(t *testing.T) {
	_, err := ParseSource(context.Background(), "<stdin>", []byte{'a', 0xff}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "<stdin>")
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(context.Background(), filepath.Join(t.TempDir(), "nope.em"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParseSource(ctx, "x.em", []byte("x"), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseDirOrderAndProgress(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.em", "b\n")
	writeFile(t, dir, "a.em", "a\n")
	writeFile(t, dir, filepath.Join("sub", "c.em"), "*x\n")
	writeFile(t, dir, filepath.Join(".hidden", "d.em"), "d\n")
	writeFile(t, dir, "notes.txt", "skip\n")

	var rec buildpipeline.RecordingSink
	batch, err := ParseDir(context.Background(), dir, Options{Progress: &rec, Jobs: 2})
	require.NoError(t, err)

	var paths []string
	for _, f := range batch.Files {
		rel, relErr := filepath.Rel(dir, f.Path)
		require.NoError(t, relErr)
		paths = append(paths, filepath.ToSlash(rel))
	}
	assert.Equal(t, []string{"a.em", "b.em", "sub/c.em"}, paths)

	assert.True(t, batch.Failed())
	assert.False(t, batch.Files[0].Failed())
	assert.Equal(t, []diag.Code{diag.SynUnclosedDelimiter}, codesOf(batch.Files[2].Bag))
	assert.Equal(t, 1, batch.Diagnostics().Len())

	finished := map[string]buildpipeline.Status{}
	for _, ev := range rec.Events() {
		if ev.Finished() {
			finished[ev.File] = ev.Status
		}
	}
	assert.Equal(t, buildpipeline.StatusDone, finished[batch.Files[0].Path])
	assert.Equal(t, buildpipeline.StatusError, finished[batch.Files[2].Path])
}

func TestParseFilesLoadError(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.em", "fine\n")
	missing := filepath.Join(dir, "missing.em")

	batch, err := ParseFiles(context.Background(), []string{good, missing}, Options{})
	require.NoError(t, err)
	require.Len(t, batch.Files, 2)

	assert.NoError(t, batch.Files[0].LoadErr)
	assert.NotNil(t, batch.Files[0].Builder)

	bad := batch.Files[1]
	require.Error(t, bad.LoadErr)
	assert.Nil(t, bad.Builder)
	assert.Equal(t, []diag.Code{diag.IOLoadFileError}, codesOf(bad.Bag))
	f := batch.FileSet.Get(bad.Bag.Items()[0].Primary.File)
	require.NotNil(t, f)
	assert.Equal(t, filepath.ToSlash(missing), f.Path)
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.em", "a")
	writeFile(t, dir, filepath.Join("d", "b.em"), "b")
	txt := writeFile(t, dir, "readme.txt", "r")

	got, err := CollectFiles([]string{a, filepath.Join(dir, "d"), txt, a})
	require.NoError(t, err)
	assert.Equal(t, []string{a, filepath.Join(dir, "d", "b.em"), txt}, got)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Parse.Recover = true
	cfg.Output.FatalWarnings = true

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, []string{"_"}, opts.Italic)
	assert.Equal(t, []string{"*"}, opts.Bold)
	assert.Equal(t, 128, opts.MaxDepth)
	assert.Equal(t, 100, opts.MaxErrors)
	assert.True(t, opts.Recover)
	assert.True(t, opts.NFC)
	assert.True(t, opts.FatalWarnings)
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.em", sampleDoc)
	bad := writeFile(t, dir, "bad.em", "*/\n")

	ts := &CountingTypesetter{}
	res, err := Build(context.Background(), good, Options{}, ts)
	require.NoError(t, err)
	assert.True(t, res.Typeset)
	assert.Equal(t, 1, ts.Docs)
	assert.Equal(t, 2, ts.Stats.Dispatchable())

	res, err = Build(context.Background(), bad, Options{}, ts)
	require.NoError(t, err)
	assert.False(t, res.Typeset)
	assert.True(t, res.Failed())
	assert.Equal(t, 1, ts.Docs)

	boom := errors.New("boom")
	_, err = Build(context.Background(), good, Options{}, typesetFunc(func(context.Context, Document) error { return boom }))
	assert.ErrorIs(t, err, boom)

	res, err = Build(context.Background(), good, Options{}, nil)
	require.NoError(t, err)
	assert.True(t, res.Typeset)
}

type typesetFunc func(context.Context, Document) error

func (f typesetFunc) Typeset(ctx context.Context, doc Document) error { return f(ctx, doc) }
