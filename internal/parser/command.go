package parser

import (
	"strings"
	"unicode/utf8"

	"emblem/internal/ast"
	"emblem/internal/diag"
	"emblem/internal/scanner"
	"emblem/internal/source"
)

// parseCommand parses
//
//	"." [qualifier "."] name {"+"} [attrs] {inline} [":" remainder | "::" trailer]
func (p *Parser) parseCommand() (ast.ContentID, bool) {
	sc := p.sc
	if !p.enter(sc.SpanAhead(1)) {
		return ast.NoContentID, false
	}
	defer p.leave()

	m := sc.Mark()
	sc.EatByte('.')
	var data ast.CommandData

	nm := sc.Mark()
	name := sc.TakeWhile(scanner.IsNameContinue)
	nameSpan := sc.SpanFrom(nm)
	if sc.Peek() == '.' {
		if r, _ := utf8.DecodeRuneInString(sc.Rest()[1:]); scanner.IsNameStart(r) {
			data.Qualifier = p.arenas.Strings.Intern(name)
			data.QualifierSpan = nameSpan
			sc.EatByte('.')
			nm = sc.Mark()
			name = sc.TakeWhile(scanner.IsNameContinue)
			nameSpan = sc.SpanFrom(nm)
		}
	}
	data.Name = p.arenas.Strings.Intern(name)
	data.NameSpan = nameSpan
	data.Pluses = len(sc.TakeBytesWhile(func(b byte) bool { return b == '+' }))

	if sc.Peek() == '[' {
		attrs, ok := p.parseAttrs()
		if !ok {
			return ast.NoContentID, false
		}
		data.Attrs = attrs
	}
	data.InvocationSpan = sc.SpanFrom(m)

	for sc.Peek() == '{' {
		arg, ok := p.parseInlineArg()
		if !ok {
			return ast.NoContentID, false
		}
		data.InlineArgs = append(data.InlineArgs, arg)
	}

	span := sc.SpanFrom(m)
	switch {
	case p.atTrailerStart():
		end, ok := p.parseTrailers(&data)
		if !ok {
			return ast.NoContentID, false
		}
		span = p.spanAt(span.Start, end)
	case sc.Peek() == ':':
		sc.EatByte(':')
		sc.TakeBytesWhile(scanner.IsSpace)
		rem, ok := p.parseContents()
		if !ok {
			return ast.NoContentID, false
		}
		data.Remainder = rem
		data.HasRemainder = true
		span = sc.SpanFrom(m)
	}
	return p.arenas.Contents.NewCommand(span, data), true
}

// parseAttrs parses "[a, b=c, ...]" on a single line.
func (p *Parser) parseAttrs() (*ast.Attrs, bool) {
	sc := p.sc
	open := sc.SpanAhead(1)
	m := sc.Mark()
	sc.EatByte('[')

	attrs := &ast.Attrs{}
	for {
		im := sc.Mark()
		for !sc.EOF() {
			c := sc.Peek()
			if c == ',' || c == ']' || c == '\n' {
				break
			}
			if c == '\\' && sc.PeekAt(1) != '\n' {
				sc.Bump()
			}
			sc.Bump()
		}
		raw := sc.TextFrom(im)
		itemSpan := sc.SpanFrom(im)

		switch {
		case sc.EOF():
			p.report(diag.UnclosedAttrs(open))
			return nil, false
		case sc.Peek() == '\n':
			p.report(diag.NewlineInAttrs(open, sc.SpanAhead(1)))
			return nil, false
		}

		closing := sc.Peek() == ']'
		if strings.TrimSpace(raw) == "" {
			// "[]" и завершающая запятая допустимы
			if !closing {
				p.report(diag.EmptyAttrName(emptyItemSpan(itemSpan, sc.SpanAhead(1))))
				return nil, false
			}
		} else {
			attr := ast.NewAttr(raw, itemSpan)
			if attr.IsNamed() && attr.Name() == "" {
				p.report(diag.EmptyAttrName(itemSpan))
				return nil, false
			}
			attrs.Items = append(attrs.Items, attr)
		}

		sc.Bump()
		if closing {
			break
		}
	}
	attrs.Span = sc.SpanFrom(m)
	return attrs, true
}

// emptyItemSpan points at the separator when the item has no text.
func emptyItemSpan(item, sep source.Span) source.Span {
	if item.Empty() {
		return sep
	}
	return item
}

// parseInlineArg parses "{...}". Newlines inside are whitespace.
func (p *Parser) parseInlineArg() ([]ast.ContentID, bool) {
	sc := p.sc
	open := sc.SpanAhead(1)
	sc.EatByte('{')

	p.pushScope(scopeBrace)
	items, ok := p.parseContents()
	p.popScope()
	if !ok {
		return nil, false
	}
	if !sc.EatByte('}') {
		p.report(diag.UnclosedBrace(open, p.here()))
		return nil, false
	}
	if items == nil {
		items = []ast.ContentID{}
	}
	return items, true
}

// atTrailerStart: "::" closing the line, in a line scope.
func (p *Parser) atTrailerStart() bool {
	if p.cur().kind != scopeLine || !p.sc.HasPrefix("::") {
		return false
	}
	return scanner.IsBlank(restOfLine(p.sc.Rest()[2:]))
}

// atTrailerContinuation: a line holding only "::" at the block indentation.
func (p *Parser) atTrailerContinuation(indent string) bool {
	rest := p.sc.Rest()
	if !strings.HasPrefix(rest, indent+"::") {
		return false
	}
	return scanner.IsBlank(restOfLine(rest[len(indent)+2:]))
}

// parseTrailers parses one or more "::" trailers and returns the end offset
// of the last body. The command's line ends with it.
func (p *Parser) parseTrailers(data *ast.CommandData) (uint32, bool) {
	sc := p.sc
	outer := p.indent
	var end uint32
	for {
		colons := sc.SpanAhead(2)
		sc.Eat("::")
		sc.TakeBytesWhile(scanner.IsSpace)
		sc.EatByte('\n')

		m := sc.Mark()
		if !p.skipBlankLines() {
			p.report(diag.MissingTrailerBody(colons))
			return 0, false
		}
		ind := leadingIndent(sc.Rest())
		indSpan := p.spanAt(sc.Off(), sc.Off()+u32(len(ind)))
		if len(ind) <= len(outer) || !strings.HasPrefix(ind, outer) {
			if strings.HasPrefix(ind, outer) || strings.HasPrefix(outer, ind) {
				p.report(diag.MissingTrailerBody(colons))
			} else {
				p.report(diag.InconsistentIndent(indSpan, source.Span{}))
			}
			return 0, false
		}
		sc.Reset(m)

		savedStart := p.lineStart
		p.pushScope(scopeLine)
		pars, ok := p.parseBlock(ind, indSpan)
		p.popScope()
		p.lineStart = savedStart
		if !ok {
			return 0, false
		}
		data.TrailerArgs = append(data.TrailerArgs, pars)
		end = p.arenas.Pars.Get(pars[len(pars)-1]).Span.End

		if !p.atTrailerContinuation(outer) {
			break
		}
		sc.Eat(outer)
	}
	p.lineDone = true
	return end, true
}
