package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"emblem/internal/ast"
	"emblem/internal/source"
)

// CheckSpanInvariants runs the span invariants on a parsed file:
// 1) file.Span is within file content bounds and belongs to sf
// 2) every node span lies inside its parent's span
// 3) sibling spans are ordered and do not overlap
// 4) leaf text is the source text its span covers, minus fixed delimiters
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.Start != 0 || f.Span.End != lenContent {
		return fmt.Errorf("file span %v does not cover content of length %d", f.Span, lenContent)
	}

	c := checker{b: b, sf: sf}
	var spans []source.Span
	if f.Shebang.IsValid() {
		if err := c.content(f.Shebang, f.Span); err != nil {
			return err
		}
		spans = append(spans, b.Contents.Get(f.Shebang).Span)
	}
	for _, id := range f.Pars {
		if err := c.par(id, f.Span); err != nil {
			return err
		}
		spans = append(spans, b.Pars.Get(id).Span)
	}
	return ordered(spans)
}

type checker struct {
	b  *ast.Builder
	sf *source.File
}

func (c *checker) within(what string, sp, parent source.Span) error {
	if sp.File != c.sf.ID {
		return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, c.sf.ID)
	}
	if sp.End < sp.Start {
		return fmt.Errorf("%s span is inverted: %v", what, sp)
	}
	if !parent.Contains(sp) {
		return fmt.Errorf("%s span %v is outside parent span %v", what, sp, parent)
	}
	return nil
}

func (c *checker) par(id ast.ParID, parent source.Span) error {
	par := c.b.Pars.Get(id)
	if par == nil {
		return fmt.Errorf("nil par for id=%d", id)
	}
	if par.Span.Empty() {
		return fmt.Errorf("empty par span: %v", par.Span)
	}
	if err := c.within("par", par.Span, parent); err != nil {
		return err
	}
	spans := make([]source.Span, 0, len(par.Parts))
	for i := range par.Parts {
		part := &par.Parts[i]
		if err := c.within("part", part.Span, par.Span); err != nil {
			return err
		}
		if err := c.contents(part.Content, part.Span); err != nil {
			return err
		}
		spans = append(spans, part.Span)
	}
	return ordered(spans)
}

func (c *checker) contents(ids []ast.ContentID, parent source.Span) error {
	spans := make([]source.Span, 0, len(ids))
	for _, id := range ids {
		if err := c.content(id, parent); err != nil {
			return err
		}
		spans = append(spans, c.b.Contents.Get(id).Span)
	}
	return ordered(spans)
}

func (c *checker) content(id ast.ContentID, parent source.Span) error {
	node := c.b.Contents.Get(id)
	if node == nil {
		return fmt.Errorf("nil content for id=%d", id)
	}
	what := node.Kind.String()
	if node.Span.Empty() {
		return fmt.Errorf("empty %s span: %v", what, node.Span)
	}
	if err := c.within(what, node.Span, parent); err != nil {
		return err
	}
	raw := c.sf.Slice(node.Span)

	switch node.Kind {
	case ast.ContentWord, ast.ContentWhitespace, ast.ContentDash, ast.ContentGlue, ast.ContentSpiltGlue:
		return textIs(what, raw, node.Text)
	case ast.ContentShebang:
		return textIs(what, raw, "#!"+node.Text)
	case ast.ContentVerbatim:
		return textIs(what, raw, "!"+node.Text+"!")
	case ast.ContentComment:
		return textIs(what, raw, "//"+node.Text)
	case ast.ContentMultiLineComment:
		mlc, _ := c.b.Contents.MultiLineComment(id)
		return c.comment(mlc, node.Span)
	case ast.ContentCommand:
		cmd, _ := c.b.Contents.Command(id)
		return c.command(cmd, node.Span)
	case ast.ContentSugar:
		s, _ := c.b.Contents.Sugar(id)
		return c.contents(s.Arg, node.Span)
	default:
		return fmt.Errorf("unexpected content kind %v", node.Kind)
	}
}

func (c *checker) command(cmd *ast.CommandData, span source.Span) error {
	if err := c.within("invocation", cmd.InvocationSpan, span); err != nil {
		return err
	}
	if err := c.within("name", cmd.NameSpan, cmd.InvocationSpan); err != nil {
		return err
	}
	if err := textIs("name", c.sf.Slice(cmd.NameSpan), c.b.Name(cmd.Name)); err != nil {
		return err
	}
	if cmd.Attrs != nil {
		if err := c.within("attrs", cmd.Attrs.Span, cmd.InvocationSpan); err != nil {
			return err
		}
		for _, a := range cmd.Attrs.Items {
			if err := textIs("attr", c.sf.Slice(a.Span), a.Raw); err != nil {
				return err
			}
		}
	}
	for _, arg := range cmd.InlineArgs {
		if err := c.contents(arg, span); err != nil {
			return err
		}
	}
	if err := c.contents(cmd.Remainder, span); err != nil {
		return err
	}
	for _, trailer := range cmd.TrailerArgs {
		for _, par := range trailer {
			if err := c.par(par, span); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *checker) comment(mlc *ast.MultiLineComment, span source.Span) error {
	spans := make([]source.Span, 0, len(mlc.Parts))
	for _, part := range mlc.Parts {
		if err := c.within("comment part", part.Span, span); err != nil {
			return err
		}
		switch part.Kind {
		case ast.CommentPartText:
			if err := textIs("comment text", c.sf.Slice(part.Span), part.Text); err != nil {
				return err
			}
		case ast.CommentPartNested:
			if err := c.comment(part.Nested, part.Span); err != nil {
				return err
			}
		}
		spans = append(spans, part.Span)
	}
	return ordered(spans)
}

func textIs(what, raw, want string) error {
	if raw != want {
		return fmt.Errorf("%s text %q does not match source %q", what, want, raw)
	}
	return nil
}

// ordered checks that spans follow each other without overlap.
func ordered(spans []source.Span) error {
	for i := 1; i < len(spans); i++ {
		if spans[i].Start < spans[i-1].End {
			return fmt.Errorf("span %v overlaps previous span %v", spans[i], spans[i-1])
		}
	}
	return nil
}
