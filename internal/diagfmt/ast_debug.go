package diagfmt

import (
	"fmt"
	"strings"

	"emblem/internal/ast"
)

// FormatASTDebug renders a parsed file in a compact one-line form used by
// tests and by `emblem parse --ast debug`:
//
//	Par[Word(hello)< >$bf(*){Word(world)}]
//
// Paragraphs are joined by ',', lines of a paragraph by ','. Leaves print as
// Word(x), <ws>, raw dashes and glue, !verbatim!, //comment; commands as
// .qual.name++[attrs]{arg}:remainder::[pars]; sugar as $call(delim){arg}.
func FormatASTDebug(b *ast.Builder, fileID ast.FileID) string {
	f := b.Files.Get(fileID)
	if f == nil {
		return ""
	}
	d := debugPrinter{b: b}
	var parts []string
	if f.Shebang.IsValid() {
		parts = append(parts, d.content(f.Shebang))
	}
	for _, par := range f.Pars {
		parts = append(parts, d.par(par))
	}
	return strings.Join(parts, ",")
}

// FormatContentDebug renders a single content node.
func FormatContentDebug(b *ast.Builder, id ast.ContentID) string {
	d := debugPrinter{b: b}
	return d.content(id)
}

type debugPrinter struct {
	b  *ast.Builder
	sb strings.Builder
}

func (d *debugPrinter) par(id ast.ParID) string {
	par := d.b.Pars.Get(id)
	if par == nil {
		return "Par<nil>"
	}
	lines := make([]string, 0, len(par.Parts))
	for i := range par.Parts {
		part := &par.Parts[i]
		items := d.contents(part.Content)
		if part.Kind == ast.ParPartCommand {
			items = "Command(" + items + ")"
		}
		lines = append(lines, items)
	}
	return "Par[" + strings.Join(lines, ",") + "]"
}

func (d *debugPrinter) pars(ids []ast.ParID) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.par(id))
	}
	return strings.Join(out, ",")
}

func (d *debugPrinter) contents(ids []ast.ContentID) string {
	var sb strings.Builder
	for _, id := range ids {
		sb.WriteString(d.content(id))
	}
	return sb.String()
}

func (d *debugPrinter) content(id ast.ContentID) string {
	c := d.b.Contents.Get(id)
	if c == nil {
		return "<nil>"
	}
	switch c.Kind {
	case ast.ContentShebang:
		return "Shebang(" + c.Text + ")"
	case ast.ContentWord:
		return "Word(" + c.Text + ")"
	case ast.ContentWhitespace:
		return "<" + escapeDebug(c.Text) + ">"
	case ast.ContentDash, ast.ContentGlue:
		return c.Text
	case ast.ContentSpiltGlue:
		return "SpiltGlue(" + escapeDebug(c.Text) + ")"
	case ast.ContentVerbatim:
		return "!" + c.Text + "!"
	case ast.ContentComment:
		return "//" + c.Text
	case ast.ContentMultiLineComment:
		mlc, _ := d.b.Contents.MultiLineComment(id)
		return d.comment(mlc)
	case ast.ContentCommand:
		cmd, _ := d.b.Contents.Command(id)
		return d.command(cmd)
	case ast.ContentSugar:
		s, _ := d.b.Contents.Sugar(id)
		return d.sugar(s)
	case ast.ContentInvalid:
		return "Invalid"
	default:
		panic(fmt.Sprintf("diagfmt: unreachable content kind %v", c.Kind))
	}
}

func (d *debugPrinter) comment(mlc *ast.MultiLineComment) string {
	var sb strings.Builder
	sb.WriteString("/*")
	for _, part := range mlc.Parts {
		switch part.Kind {
		case ast.CommentPartText:
			sb.WriteString("(" + part.Text + ")")
		case ast.CommentPartNewline:
			sb.WriteString(`\n`)
		case ast.CommentPartNested:
			sb.WriteString("Nested")
			sb.WriteString(d.comment(part.Nested))
		}
	}
	sb.WriteString("*/")
	return sb.String()
}

func (d *debugPrinter) command(cmd *ast.CommandData) string {
	var sb strings.Builder
	sb.WriteByte('.')
	if cmd.Qualified() {
		sb.WriteString("(" + d.b.Name(cmd.Qualifier) + ").")
	}
	sb.WriteString(d.b.Name(cmd.Name))
	sb.WriteString(strings.Repeat("+", cmd.Pluses))
	if cmd.Attrs != nil {
		items := make([]string, 0, len(cmd.Attrs.Items))
		for _, a := range cmd.Attrs.Items {
			if v, ok := a.Value(); ok {
				items = append(items, "("+a.Name()+")=("+v+")")
			} else {
				items = append(items, "("+a.Name()+")")
			}
		}
		sb.WriteString("[" + strings.Join(items, ",") + "]")
	}
	for _, arg := range cmd.InlineArgs {
		sb.WriteString("{" + d.contents(arg) + "}")
	}
	if cmd.HasRemainder {
		sb.WriteString(":" + d.contents(cmd.Remainder))
	}
	for _, trailer := range cmd.TrailerArgs {
		sb.WriteString("::[" + d.pars(trailer) + "]")
	}
	return sb.String()
}

func (d *debugPrinter) sugar(s *ast.SugarData) string {
	name := "$" + s.CallName()
	switch s.Kind {
	case ast.SugarMark, ast.SugarReference:
		return name + "[" + s.Label + "]"
	case ast.SugarHeading:
		return name + strings.Repeat("+", s.Pluses) + "{" + d.contents(s.Arg) + "}"
	default:
		return name + "(" + s.Delimiter + "){" + d.contents(s.Arg) + "}"
	}
}

func escapeDebug(s string) string {
	r := strings.NewReplacer("\n", `\n`, "\t", `\t`)
	return r.Replace(s)
}
