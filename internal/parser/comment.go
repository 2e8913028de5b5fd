package parser

import (
	"emblem/internal/ast"
	"emblem/internal/diag"
	"emblem/internal/source"
)

// parseMultiLineComment parses a "/* ... */" comment. Comments nest; the
// nesting depth shares the MaxDepth budget.
func (p *Parser) parseMultiLineComment() (ast.ContentID, bool) {
	m := p.sc.Mark()
	open := p.sc.SpanAhead(2)
	p.sc.Eat("/*")
	body, ok := p.parseCommentBody(open, 1)
	if !ok {
		return ast.NoContentID, false
	}
	return p.arenas.Contents.NewMultiLineComment(p.sc.SpanFrom(m), body), true
}

// parseCommentBody reads up to and including the "*/" matching an already
// consumed "/*". outermost is the first "/*" of the whole comment.
func (p *Parser) parseCommentBody(outermost source.Span, depth int) (ast.MultiLineComment, bool) {
	sc := p.sc
	var body ast.MultiLineComment
	text := sc.Mark()
	flush := func() {
		if sc.Off() > text.Point().Off {
			body.Parts = append(body.Parts, ast.CommentPart{
				Kind: ast.CommentPartText,
				Span: sc.SpanFrom(text),
				Text: sc.TextFrom(text),
			})
		}
	}

	for {
		switch {
		case sc.EOF():
			p.report(diag.UnterminatedComment(outermost, depth))
			return body, false
		case sc.HasPrefix("*/"):
			flush()
			sc.Eat("*/")
			return body, true
		case sc.HasPrefix("/*"):
			flush()
			nm := sc.Mark()
			if depth+p.depth >= p.opts.maxDepth() {
				p.report(diag.NestingTooDeep(sc.SpanAhead(2), p.opts.maxDepth()))
				return body, false
			}
			sc.Eat("/*")
			nested, ok := p.parseCommentBody(outermost, depth+1)
			if !ok {
				return body, false
			}
			body.Parts = append(body.Parts, ast.CommentPart{
				Kind:   ast.CommentPartNested,
				Span:   sc.SpanFrom(nm),
				Nested: &nested,
			})
			text = sc.Mark()
		case sc.Peek() == '\n':
			flush()
			nm := sc.Mark()
			sc.EatByte('\n')
			body.Parts = append(body.Parts, ast.CommentPart{Kind: ast.CommentPartNewline, Span: sc.SpanFrom(nm)})
			text = sc.Mark()
		default:
			sc.Bump()
		}
	}
}
