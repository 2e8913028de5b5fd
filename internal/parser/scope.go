package parser

import (
	"sort"
	"unicode/utf8"

	"emblem/internal/ast"
	"emblem/internal/scanner"
)

type scopeKind uint8

const (
	// scopeLine ends at a newline.
	scopeLine scopeKind = iota
	// scopeBrace ends at '}'; newlines inside are whitespace.
	scopeBrace
)

// scope is one content scope together with the sugar delimiters opened in
// it, innermost last. Sugar opened outside an inline argument cannot be
// closed inside it.
type scope struct {
	kind scopeKind
	open []string
}

func (p *Parser) pushScope(kind scopeKind) {
	p.scopes = append(p.scopes, scope{kind: kind})
}

func (p *Parser) popScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

func (p *Parser) cur() *scope {
	return &p.scopes[len(p.scopes)-1]
}

// atCloser reports whether the cursor is on the closing delimiter of the
// innermost open sugar followed by a non-word character.
func (p *Parser) atCloser() bool {
	s := p.cur()
	if len(s.open) == 0 {
		return false
	}
	d := s.open[len(s.open)-1]
	if !p.sc.HasPrefix(d) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(p.sc.Rest()[len(d):])
	return !scanner.IsWordRune(r)
}

type delimiter struct {
	text string
	kind ast.SugarKind
}

var (
	defaultItalic = []string{"_"}
	defaultBold   = []string{"*"}
)

// buildDelimiters returns the sugar delimiters longest first.
func buildDelimiters(italic, bold []string) []delimiter {
	if italic == nil {
		italic = defaultItalic
	}
	if bold == nil {
		bold = defaultBold
	}
	out := []delimiter{
		{"`", ast.SugarMonospace},
		{"=", ast.SugarSmallcaps},
		{"==", ast.SugarAlternateFace},
	}
	for _, d := range italic {
		if d != "" {
			out = append(out, delimiter{d, ast.SugarItalic})
		}
	}
	for _, d := range bold {
		if d != "" {
			out = append(out, delimiter{d, ast.SugarBold})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].text) > len(out[j].text) })
	return out
}

// matchOpener finds the longest delimiter at the cursor. It opens sugar only
// when followed by a non-whitespace character.
func (p *Parser) matchOpener() (delimiter, bool) {
	rest := p.sc.Rest()
	for _, d := range p.delims {
		if len(rest) < len(d.text) || rest[:len(d.text)] != d.text {
			continue
		}
		if len(rest) == len(d.text) {
			return delimiter{}, false
		}
		switch rest[len(d.text)] {
		case ' ', '\t', '\n':
			return delimiter{}, false
		}
		return d, true
	}
	return delimiter{}, false
}
