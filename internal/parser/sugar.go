package parser

import (
	"emblem/internal/ast"
	"emblem/internal/diag"
	"emblem/internal/scanner"
)

// parseDelimited parses delimiter sugar such as "*bold*". The argument ends
// at the same delimiter followed by a non-word character.
func (p *Parser) parseDelimited(d delimiter) (ast.ContentID, bool) {
	sc := p.sc
	open := sc.SpanAhead(len(d.text))
	if !p.enter(open) {
		return ast.NoContentID, false
	}
	defer p.leave()

	m := sc.Mark()
	sc.Eat(d.text)
	s := p.cur()
	s.open = append(s.open, d.text)
	arg, ok := p.parseContents()
	closed := ok && !p.lineDone && p.atCloser()
	s = p.cur()
	s.open = s.open[:len(s.open)-1]
	if !ok {
		return ast.NoContentID, false
	}
	if !closed {
		return p.fail(diag.UnclosedDelimiter(open, p.here(), d.text))
	}
	sc.Eat(d.text)
	return p.arenas.Contents.NewDelimited(sc.SpanFrom(m), d.kind, d.text, arg), true
}

// atHeadingStart: at the start of a line, one or more '#', any '+', then
// whitespace. A run longer than ast.MaxHeadingLevel also counts at end of
// line, so that parseHeading can reject it.
func (p *Parser) atHeadingStart() bool {
	if p.sc.Off() != p.lineStart || p.cur().kind != scopeLine || len(p.cur().open) > 0 {
		return false
	}
	rest := p.sc.Rest()
	i := 0
	for i < len(rest) && rest[i] == '#' {
		i++
	}
	hashes := i
	for i < len(rest) && rest[i] == '+' {
		i++
	}
	if hashes > ast.MaxHeadingLevel && (i == len(rest) || rest[i] == '\n') {
		return true
	}
	return i > 0 && i < len(rest) && scanner.IsSpace(rest[i])
}

// parseHeading parses "#"×level "+"* standoff content. Levels above
// ast.MaxHeadingLevel are rejected before any node is built.
func (p *Parser) parseHeading() (ast.ContentID, bool) {
	sc := p.sc
	m := sc.Mark()
	level := len(sc.TakeBytesWhile(func(b byte) bool { return b == '#' }))
	pluses := len(sc.TakeBytesWhile(func(b byte) bool { return b == '+' }))
	invocation := sc.SpanFrom(m)
	if level > ast.MaxHeadingLevel {
		end := m.Point().Off + u32(len(restOfLine(p.sc.File().Text[m.Point().Off:])))
		return p.fail(diag.HeadingTooDeep(p.spanAt(m.Point().Off, end), level))
	}
	if !p.enter(invocation) {
		return ast.NoContentID, false
	}
	defer p.leave()

	standoff := sc.TakeBytesWhile(scanner.IsSpace)
	arg, ok := p.parseContents()
	if !ok {
		return ast.NoContentID, false
	}
	return p.arenas.Contents.NewHeading(sc.SpanFrom(m), invocation, level, pluses, standoff, arg), true
}
