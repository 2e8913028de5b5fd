package parser

import (
	"fmt"
	"strings"

	"emblem/internal/source"

	"fortio.org/safecast"
)

func u32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}

// spanAt builds a span of the current file from the cursor offset.
func (p *Parser) spanAt(from, to uint32) source.Span {
	return source.Span{File: p.sc.File().ID, Start: from, End: to}
}

// here is the empty span at the cursor.
func (p *Parser) here() source.Span {
	return p.sc.SpanAhead(0)
}

// leadingIndent returns the spaces and tabs s starts with.
func leadingIndent(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[:i]
}

// restOfLine returns s up to, not including, its first newline.
func restOfLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// atBlankLine reports whether the line at the cursor holds only whitespace.
// The cursor must be at a line start.
func (p *Parser) atBlankLine() bool {
	rest := p.sc.Rest()
	ind := leadingIndent(rest)
	return len(ind) == len(rest) || rest[len(ind)] == '\n'
}

// skipLine consumes everything up to and including the next newline.
func (p *Parser) skipLine() {
	p.sc.TakeBytesWhile(func(b byte) bool { return b != '\n' })
	p.sc.EatByte('\n')
}

// skipBlankLines consumes blank lines and reports whether a non-blank line
// follows.
func (p *Parser) skipBlankLines() bool {
	for !p.sc.EOF() {
		if !p.atBlankLine() {
			return true
		}
		p.skipLine()
	}
	return false
}
