package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("doc.em", []byte("hello world"), 0)
	id2 := fs.Add("doc.em", []byte("hello universe"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("ids = %d, %d; want 0, 1", id1, id2)
	}

	latest, ok := fs.GetLatest("doc.em")
	if !ok || latest != id2 {
		t.Errorf("GetLatest = %d, %v; want %d, true", latest, ok, id2)
	}
	if got := fs.Get(id1).Text; got != "hello world" {
		t.Errorf("old version text = %q", got)
	}
	if fs.Get(99) != nil {
		t.Error("Get of unknown id must be nil")
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.em")
	raw := []byte("\xEF\xBB\xBFline one\r\nline two\r\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if f.Text != "line one\nline two\n" {
		t.Errorf("Text = %q", f.Text)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF set", f.Flags)
	}
	if got := f.GetLine(2); got != "line two" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(5); got != "" {
		t.Errorf("GetLine(5) = %q, want empty", got)
	}
}

func TestLoadWithNFC(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nfc.em")
	// "e" + combining acute accent
	if err := os.WriteFile(path, []byte("cafe\u0301"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.LoadWith(path, LoadOptions{NFC: true})
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}
	f := fs.Get(id)
	if f.Text != "caf\u00e9" {
		t.Errorf("Text = %q, want composed form", f.Text)
	}
	if f.Flags&FileNormalizedNFC == 0 {
		t.Error("expected FileNormalizedNFC flag")
	}
}

func TestLoadRejectsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.em")
	if err := os.WriteFile(path, []byte{'a', 0xff, 'b'}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileSet().Load(path); err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
}

func TestAddVirtualWithNormalizes(t *testing.T) {
	fs := NewFileSet()
	id, err := fs.AddVirtualWith("<stdin>", []byte("\xEF\xBB\xBFone\r\n\r\ntwo\r\n"), LoadOptions{})
	if err != nil {
		t.Fatalf("AddVirtualWith: %v", err)
	}
	f := fs.Get(id)
	if f.Text != "one\n\ntwo\n" {
		t.Errorf("Text = %q", f.Text)
	}
	want := FileVirtual | FileHadBOM | FileNormalizedCRLF
	if f.Flags&want != want {
		t.Errorf("flags = %b, want %b set", f.Flags, want)
	}
	if _, err := fs.AddVirtualWith("<stdin>", []byte{0xff}, LoadOptions{}); err == nil {
		t.Error("expected error for invalid UTF-8")
	}
}

func TestResolveAndSlice(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("doc.em", []byte("first\nsecond line\n"))
	sp := Span{File: id, Start: 6, End: 12}

	start, end := fs.Resolve(sp)
	if start != (LineCol{Line: 2, Col: 1}) || end != (LineCol{Line: 2, Col: 7}) {
		t.Errorf("Resolve = %+v %+v", start, end)
	}
	if got := fs.Get(id).Slice(sp); got != "second" {
		t.Errorf("Slice = %q", got)
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	target := filepath.Join(tmp, "other", "file.em")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Errorf("RelativePath = %q, want %q", got, want)
	}

	inside := filepath.Join(baseDir, "sub", "a.em")
	got, err = RelativePath(inside, baseDir)
	if err != nil {
		t.Fatal(err)
	}
	if got != "sub/a.em" {
		t.Errorf("RelativePath = %q, want sub/a.em", got)
	}
}
