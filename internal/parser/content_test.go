package parser_test

import (
	"testing"

	"emblem/internal/ast"
	"emblem/internal/parser"
)

func TestParseDebugShapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"words", "hello world\n", "Par[Word(hello)< >Word(world)]"},
		{"no trailing newline", "hello", "Par[Word(hello)]"},
		{"two paragraphs", "a\n\nb\n", "Par[Word(a)],Par[Word(b)]"},
		{"blank lines with spaces", "a\n  \t\n\nb", "Par[Word(a)],Par[Word(b)]"},
		{"multi-line paragraph", "a\nb\n", "Par[Word(a),Word(b)]"},
		{"tabs", "a\tb", `Par[Word(a)<\t>Word(b)]`},
		{"empty", "", ""},
		{"only blank lines", "\n\n  \n", ""},

		{"italic", "_it_", "Par[$it(_){Word(it)}]"},
		{"bold", "*bf*", "Par[$bf(*){Word(bf)}]"},
		{"monospace", "`tt`", "Par[$tt(`){Word(tt)}]"},
		{"smallcaps", "=sc=", "Par[$sc(=){Word(sc)}]"},
		{"alternate face", "==af==", "Par[$af(==){Word(af)}]"},
		{"nested sugar", "*a _b_ c*", "Par[$bf(*){Word(a)< >$it(_){Word(b)}< >Word(c)}]"},
		{"delimiter inside word", "snake_case", "Par[Word(snake_case)]"},
		{"closer needs non-word after", "*a*b*", "Par[$bf(*){Word(a*b)}]"},
		{"opener needs non-space after", "* a", "Par[Word(*)< >Word(a)]"},
		{"sugar after word", "x *y*.", "Par[Word(x)< >$bf(*){Word(y)}Word(.)]"},

		{"dashes", "a-b--c---d", "Par[Word(a)-Word(b)--Word(c)---Word(d)]"},
		{"long dash run", "a----b", "Par[Word(a)----Word(b)]"},
		{"glue", "a~b~~c", "Par[Word(a)~Word(b)~~Word(c)]"},
		{"spilt glue", "a~\nb", `Par[Word(a)SpiltGlue(~\n)Word(b)]`},
		{"spilt glue trailing spaces", "a~~  \nb", `Par[Word(a)SpiltGlue(~~  \n)Word(b)]`},
		{"glue before blank line", "a~\n\nb", "Par[Word(a)~],Par[Word(b)]"},

		{"verbatim", "!a *b*!", "Par[!a *b*!]"},
		{"bang inside word", "wow! yes", "Par[Word(wow!)< >Word(yes)]"},
		{"lone bang", "! x", "Par[Word(!)< >Word(x)]"},

		{"line comment", "text // note", "Par[Word(text)< >// note]"},
		{"block comment", "a /* b */ c", "Par[Word(a)< >/*( b )*/< >Word(c)]"},
		{"comment after word", "a/* b */", "Par[Word(a)/*( b )*/]"},
		{"comment between words", "word/* note */ next", "Par[Word(word)/*( note )*/< >Word(next)]"},
		{"nested comment", "/* outer /* inner */ still outer */",
			"Par[/*( outer )Nested/*( inner )*/( still outer )*/]"},
		{"multi-line comment", "/* a\nb */", `Par[/*( a)\n(b )*/]`},
		{"comment chars in word", "a//b", "Par[Word(a//b)]"},

		{"mark and reference", "@[fig] see #[fig]", "Par[$mark[fig]< >Word(see)< >$ref[fig]]"},
		{"escape", `a\*b\*`, `Par[Word(a\*b\*)]`},
		{"escaped opener", `\*x*`, `Par[Word(\*x*)]`},

		{"shebang", "#!/usr/bin/env emblem\nhi\n", "Shebang(/usr/bin/env emblem),Par[Word(hi)]"},
		{"hash in text", "#tag", "Par[Word(#tag)]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseOK(t, tt.src)
			if got := p.debug(); got != tt.want {
				t.Fatalf("parse %q:\n got  %s\n want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestParseHeadings(t *testing.T) {
	for level := 1; level <= ast.MaxHeadingLevel; level++ {
		src := ""
		for range level {
			src += "#"
		}
		p := parseOK(t, src+" Title\n")
		pars := p.pars()
		if len(pars) != 1 {
			t.Fatalf("level %d: expected 1 par, got %d", level, len(pars))
		}
		part := p.builder.Pars.Get(pars[0]).Parts[0]
		s, ok := p.builder.Contents.Sugar(part.Content[0])
		if !ok || s.Kind != ast.SugarHeading {
			t.Fatalf("level %d: expected heading, got %s", level, p.debug())
		}
		if s.Level() != level {
			t.Fatalf("expected level %d, got %d", level, s.Level())
		}
		if want := "h" + string(rune('0'+level)); s.CallName() != want {
			t.Fatalf("expected call name %s, got %s", want, s.CallName())
		}
		if s.Standoff != " " {
			t.Fatalf("unexpected standoff %q", s.Standoff)
		}
	}
}

func TestParseHeadingForms(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"##+ Starred", "Par[$h2+{Word(Starred)}]"},
		{"# A *b*", "Par[$h1{Word(A)< >$bf(*){Word(b)}}]"},
		{"text\n# Not first", "Par[Word(text),$h1{Word(Not)< >Word(first)}]"},
		{"a # b", "Par[Word(a)< >Word(#)< >Word(b)]"},
	}
	for _, tt := range tests {
		p := parseOK(t, tt.src)
		if got := p.debug(); got != tt.want {
			t.Fatalf("parse %q:\n got  %s\n want %s", tt.src, got, tt.want)
		}
	}
}

func TestParseCustomDelimiters(t *testing.T) {
	p := parseWith(t, "**b** *i*", parser.Options{
		Italic: []string{"*"},
		Bold:   []string{"**"},
	})
	if p.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	want := "Par[$bf(**){Word(b)}< >$it(*){Word(i)}]"
	if got := p.debug(); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}

	// без "_" в списке подчёркивание остаётся текстом
	p = parseWith(t, "_x_", parser.Options{Italic: []string{"/"}})
	if got := p.debug(); got != "Par[Word(_x_)]" {
		t.Fatalf("got %s", got)
	}
}

func TestParseSpiltGlueSpan(t *testing.T) {
	p := parseOK(t, "a~\nb")
	part := p.builder.Pars.Get(p.pars()[0]).Parts[0]
	glue := p.builder.Contents.Get(part.Content[1])
	if glue.Kind != ast.ContentSpiltGlue {
		t.Fatalf("expected spilt glue, got %s", glue.Kind)
	}
	if glue.Span != span(p, 1, 3) {
		t.Fatalf("unexpected span %v", glue.Span)
	}
}

func TestParseDashAndGlueKinds(t *testing.T) {
	p := parseOK(t, "-~--~~---")
	items := p.builder.Pars.Get(p.pars()[0]).Parts[0].Content
	wantDash := []ast.DashKind{ast.DashHyphen, ast.DashEn, ast.DashEm}
	var dashes []ast.DashKind
	var glues []ast.GlueKind
	for _, id := range items {
		if d, ok := p.builder.Contents.Dash(id); ok {
			dashes = append(dashes, d)
		}
		if g, ok := p.builder.Contents.Glue(id); ok {
			glues = append(glues, g)
		}
	}
	if len(dashes) != 3 || dashes[0] != wantDash[0] || dashes[1] != wantDash[1] || dashes[2] != wantDash[2] {
		t.Fatalf("unexpected dashes %v", dashes)
	}
	if len(glues) != 2 || glues[0] != ast.GlueTight || glues[1] != ast.GlueNBSP {
		t.Fatalf("unexpected glues %v", glues)
	}
}
