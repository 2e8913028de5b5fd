package parser

import (
	"strings"
	"unicode/utf8"

	"emblem/internal/ast"
	"emblem/internal/diag"
	"emblem/internal/scanner"
)

// parseContents parses content items until the current scope ends: a
// newline in a line scope, '}' in a brace scope, the closer of the innermost
// open sugar, EOF, or a trailer having consumed the rest of the line.
func (p *Parser) parseContents() ([]ast.ContentID, bool) {
	var items []ast.ContentID
	for !p.lineDone && !p.sc.EOF() {
		c := p.sc.Peek()
		kind := p.cur().kind
		if c == '\n' && kind == scopeLine {
			break
		}
		if c == '}' && kind == scopeBrace {
			break
		}
		if p.atCloser() {
			break
		}
		id, ok := p.parseItem()
		if !ok {
			return nil, false
		}
		items = append(items, id)
	}
	return items, true
}

// parseItem выбирает по первому символу нужный распознаватель. Specials are
// only recognised here, at the start of an item.
func (p *Parser) parseItem() (ast.ContentID, bool) {
	sc := p.sc
	c := sc.Peek()
	switch {
	case c == ' ' || c == '\t' || c == '\n':
		return p.parseWhitespace(), true
	case sc.HasPrefix("//"):
		return p.parseComment(), true
	case sc.HasPrefix("/*"):
		return p.parseMultiLineComment()
	case sc.HasPrefix("*/"):
		return p.fail(diag.ExtraCommentClose(sc.SpanAhead(2)))
	case c == '~':
		return p.parseGlue(), true
	case c == '-':
		return p.parseDash(), true
	case c == '{' || c == '}':
		return p.fail(diag.UnexpectedChar(sc.SpanAhead(1), rune(c)))
	case c == '.' && p.atCommandStart():
		return p.parseCommand()
	case c == '!' && p.atVerbatimStart():
		return p.parseVerbatim()
	case sc.HasPrefix("@["):
		return p.parseLabel(ast.SugarMark)
	case sc.HasPrefix("#["):
		return p.parseLabel(ast.SugarReference)
	case c == '#' && p.atHeadingStart():
		return p.parseHeading()
	}
	if d, ok := p.matchOpener(); ok {
		return p.parseDelimited(d)
	}
	return p.parseWord(), true
}

// parseWhitespace takes a run of spaces and tabs; inside braces newlines
// join the run.
func (p *Parser) parseWhitespace() ast.ContentID {
	m := p.sc.Mark()
	if p.cur().kind == scopeBrace {
		p.sc.TakeBytesWhile(func(b byte) bool { return b == ' ' || b == '\t' || b == '\n' })
	} else {
		p.sc.TakeBytesWhile(scanner.IsSpace)
	}
	return p.arenas.Contents.NewWhitespace(p.sc.SpanFrom(m), p.sc.TextFrom(m))
}

func (p *Parser) parseWord() ast.ContentID {
	sc := p.sc
	m := sc.Mark()
loop:
	for !sc.EOF() {
		switch c := sc.Peek(); c {
		case ' ', '\t', '\n', '{', '}', '~', '-':
			break loop
		case '\\':
			if rest := sc.Rest(); len(rest) < 2 || rest[1] == '\n' {
				p.report(diag.DanglingEscape(sc.SpanAhead(1)))
				sc.Bump()
				continue
			}
			sc.Bump()
			sc.Bump()
			continue
		}
		if sc.Off() > m.Point().Off {
			// "/*" и "*/" разбираются как отдельный элемент
			if sc.HasPrefix("/*") || sc.HasPrefix("*/") || p.atCloser() {
				break
			}
		}
		sc.Bump()
	}
	if sc.Off() == m.Point().Off {
		sc.Bump()
	}
	return p.arenas.Contents.NewWord(sc.SpanFrom(m), sc.TextFrom(m))
}

// parseComment parses "//" to the end of the line.
func (p *Parser) parseComment() ast.ContentID {
	m := p.sc.Mark()
	p.sc.Eat("//")
	text := p.sc.TakeBytesWhile(func(b byte) bool { return b != '\n' })
	return p.arenas.Contents.NewComment(p.sc.SpanFrom(m), text)
}

// parseDash parses up to three hyphens.
func (p *Parser) parseDash() ast.ContentID {
	m := p.sc.Mark()
	n := 0
	for n < 3 && p.sc.EatByte('-') {
		n++
	}
	return p.arenas.Contents.NewDash(p.sc.SpanFrom(m), p.sc.TextFrom(m))
}

// parseGlue parses "~" or "~~". Followed by trailing spaces and a newline
// into a non-blank continuation line it becomes spilt glue, which also
// swallows the newline and the continuation's indentation.
func (p *Parser) parseGlue() ast.ContentID {
	sc := p.sc
	m := sc.Mark()
	if !sc.Eat("~~") {
		sc.EatByte('~')
	}
	glue := sc.Mark()

	sc.TakeBytesWhile(scanner.IsSpace)
	if sc.Peek() == '\n' && !sc.EOF() {
		next := sc.Rest()[1:]
		ind := leadingIndent(next)
		blank := len(ind) == len(next) || next[len(ind)] == '\n'
		if !blank && (p.cur().kind == scopeBrace || ind == p.indent) {
			sc.EatByte('\n')
			sc.Eat(ind)
			return p.arenas.Contents.NewSpiltGlue(sc.SpanFrom(m), sc.TextFrom(m))
		}
	}
	sc.Reset(glue)
	return p.arenas.Contents.NewGlue(sc.SpanFrom(m), sc.TextFrom(m))
}

// atVerbatimStart: "!" followed by a non-whitespace character.
func (p *Parser) atVerbatimStart() bool {
	switch p.sc.PeekAt(1) {
	case 0, ' ', '\t', '\n':
		return false
	}
	return true
}

// parseVerbatim parses "!text!" within one line.
func (p *Parser) parseVerbatim() (ast.ContentID, bool) {
	sc := p.sc
	open := sc.SpanAhead(1)
	line := restOfLine(sc.Rest())
	end := strings.IndexByte(line[1:], '!')
	if end < 0 {
		return p.fail(diag.UnclosedVerbatim(open))
	}
	m := sc.Mark()
	sc.EatByte('!')
	text := line[1 : 1+end]
	sc.Eat(text)
	sc.EatByte('!')
	return p.arenas.Contents.NewVerbatim(sc.SpanFrom(m), text), true
}

// parseLabel parses "@[label]" or "#[label]" within one line.
func (p *Parser) parseLabel(kind ast.SugarKind) (ast.ContentID, bool) {
	sc := p.sc
	open := sc.SpanAhead(2)
	line := restOfLine(sc.Rest())
	end := strings.IndexByte(line[2:], ']')
	if end < 0 {
		return p.fail(diag.UnclosedBracket(open))
	}
	m := sc.Mark()
	label := line[2 : 2+end]
	sc.Eat(line[:2+end+1])
	if kind == ast.SugarMark {
		return p.arenas.Contents.NewMark(sc.SpanFrom(m), label), true
	}
	return p.arenas.Contents.NewReference(sc.SpanFrom(m), label), true
}

// atCommandStart: "." followed by a name.
func (p *Parser) atCommandStart() bool {
	r, _ := utf8.DecodeRuneInString(p.sc.Rest()[1:])
	return scanner.IsNameStart(r)
}
