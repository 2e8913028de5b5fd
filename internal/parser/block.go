package parser

import (
	"strings"

	"emblem/internal/ast"
	"emblem/internal/diag"
	"emblem/internal/source"
)

// parseBlock parses paragraphs indented by exactly indent. It stops at EOF
// or before a line indented less; blockSpan is the indentation of the
// block's first line.
func (p *Parser) parseBlock(indent string, blockSpan source.Span) ([]ast.ParID, bool) {
	outer := p.indent
	p.indent = indent
	defer func() { p.indent = outer }()

	var pars []ast.ParID
	for {
		m := p.sc.Mark()
		if !p.skipBlankLines() {
			return pars, true
		}
		ind := leadingIndent(p.sc.Rest())
		lineOff := p.sc.Off()
		switch {
		case ind == indent:
		case strings.HasPrefix(indent, ind):
			// меньший отступ: блок закончился
			p.sc.Reset(m)
			return pars, true
		case strings.HasPrefix(ind, indent):
			p.report(diag.UnexpectedIndent(p.spanAt(lineOff+u32(len(indent)), lineOff+u32(len(ind)))))
			return pars, false
		default:
			p.report(diag.InconsistentIndent(p.spanAt(lineOff, lineOff+u32(len(ind))), blockSpan))
			return pars, false
		}
		par, ok := p.parsePar(indent)
		if !ok {
			return pars, false
		}
		pars = append(pars, par)
	}
}

// parsePar parses consecutive non-blank lines at indent. The cursor is at the
// start of the first line.
func (p *Parser) parsePar(indent string) (ast.ParID, bool) {
	var parts []ast.ParPart
	for {
		p.sc.Eat(indent)
		part, ok := p.parseLine()
		if !ok {
			return ast.NoParID, false
		}
		parts = append(parts, part)
		if p.sc.EOF() || p.atBlankLine() || leadingIndent(p.sc.Rest()) != indent {
			break
		}
	}
	span := parts[0].Span.Cover(parts[len(parts)-1].Span)
	return p.arenas.NewPar(span, parts), true
}

// parseLine parses one line's content and the newline ending it. A trailer
// may extend the line over the following indented block.
func (p *Parser) parseLine() (ast.ParPart, bool) {
	p.lineStart = p.sc.Off()
	p.lineDone = false
	items, ok := p.parseContents()
	if !ok {
		return ast.ParPart{}, false
	}
	if !p.lineDone {
		p.sc.EatByte('\n')
	}
	p.lineDone = false

	part := ast.ParPart{Kind: ast.ParPartLine, Content: items}
	if len(items) > 0 {
		first := p.arenas.Contents.Get(items[0])
		last := p.arenas.Contents.Get(items[len(items)-1])
		part.Span = first.Span.Cover(last.Span)
		if p.isCommandLine(items) {
			part.Kind = ast.ParPartCommand
		}
	} else {
		part.Span = p.spanAt(p.lineStart, p.lineStart)
	}
	return part, true
}

// isCommandLine reports whether items are one command followed only by
// whitespace and comments.
func (p *Parser) isCommandLine(items []ast.ContentID) bool {
	if p.arenas.Contents.Get(items[0]).Kind != ast.ContentCommand {
		return false
	}
	for _, id := range items[1:] {
		switch p.arenas.Contents.Get(id).Kind {
		case ast.ContentWhitespace, ast.ContentComment, ast.ContentMultiLineComment:
		default:
			return false
		}
	}
	return true
}
