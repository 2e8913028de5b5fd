package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"emblem/internal/ast"
	"emblem/internal/diag"
	"emblem/internal/diagfmt"
	"emblem/internal/parser"
	"emblem/internal/scanner"
	"emblem/internal/source"
	"emblem/internal/testkit"
)

type parsed struct {
	fs      *source.FileSet
	file    *source.File
	builder *ast.Builder
	result  parser.Result
	bag     *diag.Bag
}

func (p parsed) debug() string {
	return diagfmt.FormatASTDebug(p.builder, p.result.File)
}

func (p parsed) pars() []ast.ParID {
	return p.builder.Files.Get(p.result.File).Pars
}

func parseWith(t *testing.T, src string, opts parser.Options) parsed {
	t.Helper()
	fs := source.NewFileSetWithBase("")
	fileID := fs.AddVirtual("test.em", []byte(src))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	if opts.Reporter == nil {
		opts.Reporter = &diag.BagReporter{Bag: bag}
	}
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(scanner.New(file), builder, opts)

	if err := testkit.CheckSpanInvariants(builder, res.File, file); err != nil {
		t.Fatalf("span invariants violated for %q: %v", src, err)
	}
	return parsed{fs: fs, file: file, builder: builder, result: res, bag: bag}
}

func parseSource(t *testing.T, src string) parsed {
	t.Helper()
	return parseWith(t, src, parser.Options{})
}

// parseOK parses src and fails the test on any error.
func parseOK(t *testing.T, src string) parsed {
	t.Helper()
	p := parseSource(t, src)
	if p.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %s", src, diagnosticsSummary(p.bag))
	}
	return p
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func codes(bag *diag.Bag) []diag.Code {
	items := bag.Items()
	out := make([]diag.Code, len(items))
	for i, d := range items {
		out[i] = d.Code
	}
	return out
}

// expectSingleError checks that exactly one diagnostic with code was reported.
func expectSingleError(t *testing.T, p parsed, code diag.Code) diag.Diagnostic {
	t.Helper()
	items := p.bag.Items()
	if len(items) != 1 || items[0].Code != code {
		t.Fatalf("expected single %s, got %s", code.ID(), diagnosticsSummary(p.bag))
	}
	if items[0].Severity != diag.SevError {
		t.Fatalf("expected error severity, got %s", items[0].Severity)
	}
	return items[0]
}

func span(p parsed, start, end uint32) source.Span {
	return source.Span{File: p.file.ID, Start: start, End: end}
}
