package diag

import (
	"testing"

	"emblem/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/docs/sample.em", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     LexDanglingEscape,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedChar,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line", Severity: SevInfo},
			},
		},
	}

	expected := "error SYN2001 docs/sample.em:1:1 first line second\n" +
		"note SYN2001 docs/sample.em:2:1 note line\n" +
		"warning LEX1001 docs/sample.em:2:1 another"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortDiagnosticsSkipsUnknownFiles(t *testing.T) {
	fs := source.NewFileSet()
	diags := []Diagnostic{{Severity: SevError, Code: SynUnexpectedChar, Primary: source.Span{File: 7}}}
	if got := FormatShortDiagnostics(diags, fs, false); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
