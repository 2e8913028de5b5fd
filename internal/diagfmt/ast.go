package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"emblem/internal/ast"
	"emblem/internal/source"
)

// SpanOutput is a byte range in serialized trees.
type SpanOutput struct {
	Start uint32 `json:"start" yaml:"start"`
	End   uint32 `json:"end" yaml:"end"`
}

// ASTNodeOutput is the serializable form of one tree node, shared by the
// JSON, YAML and pretty tree renderers.
type ASTNodeOutput struct {
	Type     string          `json:"type" yaml:"type"`
	Kind     string          `json:"kind,omitempty" yaml:"kind,omitempty"`
	Span     SpanOutput      `json:"span" yaml:"span"`
	Text     string          `json:"text,omitempty" yaml:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty" yaml:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty" yaml:"fields,omitempty"`
}

func spanOut(sp source.Span) SpanOutput {
	return SpanOutput{Start: sp.Start, End: sp.End}
}

// BuildASTOutput converts a parsed file into its serializable form.
func BuildASTOutput(b *ast.Builder, fileID ast.FileID) (ASTNodeOutput, error) {
	file := b.Files.Get(fileID)
	if file == nil {
		return ASTNodeOutput{}, fmt.Errorf("file not found")
	}
	out := ASTNodeOutput{Type: "File", Span: spanOut(file.Span)}
	if file.Shebang.IsValid() {
		out.Children = append(out.Children, contentNode(b, file.Shebang))
	}
	for _, par := range file.Pars {
		out.Children = append(out.Children, parNode(b, par))
	}
	return out, nil
}

func parNode(b *ast.Builder, id ast.ParID) ASTNodeOutput {
	par := b.Pars.Get(id)
	node := ASTNodeOutput{Type: "Par", Span: spanOut(par.Span)}
	for i := range par.Parts {
		part := &par.Parts[i]
		node.Children = append(node.Children, ASTNodeOutput{
			Type:     "Part",
			Kind:     part.Kind.String(),
			Span:     spanOut(part.Span),
			Children: contentNodes(b, part.Content),
		})
	}
	return node
}

func contentNodes(b *ast.Builder, ids []ast.ContentID) []ASTNodeOutput {
	if len(ids) == 0 {
		return nil
	}
	out := make([]ASTNodeOutput, 0, len(ids))
	for _, id := range ids {
		out = append(out, contentNode(b, id))
	}
	return out
}

func argNode(b *ast.Builder, kind string, ids []ast.ContentID) ASTNodeOutput {
	node := ASTNodeOutput{Type: "Arg", Kind: kind, Children: contentNodes(b, ids)}
	if n := len(node.Children); n > 0 {
		node.Span = SpanOutput{Start: node.Children[0].Span.Start, End: node.Children[n-1].Span.End}
	}
	return node
}

func contentNode(b *ast.Builder, id ast.ContentID) ASTNodeOutput {
	c := b.Contents.Get(id)
	node := ASTNodeOutput{Type: c.Kind.String(), Span: spanOut(c.Span)}
	switch c.Kind {
	case ast.ContentShebang, ast.ContentWord, ast.ContentWhitespace,
		ast.ContentSpiltGlue, ast.ContentVerbatim, ast.ContentComment:
		node.Text = c.Text
	case ast.ContentDash:
		kind, _ := b.Contents.Dash(id)
		node.Kind = kind.String()
		node.Text = c.Text
	case ast.ContentGlue:
		kind, _ := b.Contents.Glue(id)
		node.Kind = kind.String()
		node.Text = c.Text
	case ast.ContentMultiLineComment:
		mlc, _ := b.Contents.MultiLineComment(id)
		node.Children = commentNodes(mlc)
		node.Fields = map[string]any{"depth": mlc.Depth()}
	case ast.ContentCommand:
		cmd, _ := b.Contents.Command(id)
		node.Text = b.Name(cmd.Name)
		node.Fields = commandFields(b, cmd)
		for _, arg := range cmd.InlineArgs {
			node.Children = append(node.Children, argNode(b, "inline", arg))
		}
		if cmd.HasRemainder {
			node.Children = append(node.Children, argNode(b, "remainder", cmd.Remainder))
		}
		for _, trailer := range cmd.TrailerArgs {
			tn := ASTNodeOutput{Type: "Arg", Kind: "trailer"}
			for _, par := range trailer {
				tn.Children = append(tn.Children, parNode(b, par))
			}
			if n := len(tn.Children); n > 0 {
				tn.Span = SpanOutput{Start: tn.Children[0].Span.Start, End: tn.Children[n-1].Span.End}
			}
			node.Children = append(node.Children, tn)
		}
	case ast.ContentSugar:
		s, _ := b.Contents.Sugar(id)
		node.Kind = s.CallName()
		node.Fields = map[string]any{}
		switch s.Kind {
		case ast.SugarMark, ast.SugarReference:
			node.Text = s.Label
		case ast.SugarHeading:
			node.Fields["level"] = s.Level()
			if s.Pluses > 0 {
				node.Fields["pluses"] = s.Pluses
			}
			node.Children = contentNodes(b, s.Arg)
		default:
			node.Fields["delimiter"] = s.Delimiter
			node.Children = contentNodes(b, s.Arg)
		}
		if len(node.Fields) == 0 {
			node.Fields = nil
		}
	case ast.ContentInvalid:
	default:
		panic(fmt.Sprintf("diagfmt: unreachable content kind %v", c.Kind))
	}
	return node
}

func commandFields(b *ast.Builder, cmd *ast.CommandData) map[string]any {
	fields := map[string]any{}
	if cmd.Qualified() {
		fields["qualifier"] = b.Name(cmd.Qualifier)
	}
	if cmd.Pluses > 0 {
		fields["pluses"] = cmd.Pluses
	}
	if cmd.Attrs != nil {
		attrs := make([]map[string]string, 0, len(cmd.Attrs.Items))
		for _, a := range cmd.Attrs.Items {
			entry := map[string]string{"name": a.Name()}
			if v, ok := a.Value(); ok {
				entry["value"] = v
			}
			attrs = append(attrs, entry)
		}
		fields["attrs"] = attrs
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func commentNodes(mlc *ast.MultiLineComment) []ASTNodeOutput {
	out := make([]ASTNodeOutput, 0, len(mlc.Parts))
	for _, part := range mlc.Parts {
		n := ASTNodeOutput{Span: spanOut(part.Span)}
		switch part.Kind {
		case ast.CommentPartText:
			n.Type = "Text"
			n.Text = part.Text
		case ast.CommentPartNewline:
			n.Type = "Newline"
		case ast.CommentPartNested:
			n.Type = "Nested"
			n.Children = commentNodes(part.Nested)
		}
		out = append(out, n)
	}
	return out
}

func FormatASTJSON(w io.Writer, b *ast.Builder, fileID ast.FileID) error {
	output, err := BuildASTOutput(b, fileID)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func FormatASTYAML(w io.Writer, b *ast.Builder, fileID ast.FileID) error {
	output, err := BuildASTOutput(b, fileID)
	if err != nil {
		return err
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(output); err != nil {
		return err
	}
	return encoder.Close()
}

// FormatASTPretty prints the tree with box-drawing connectors:
//
//	File (span: 1:1-1:12)
//	└─ Par (span: 1:1-1:12)
//	   └─ Part Line
//	      ├─ Word "hello"
func FormatASTPretty(w io.Writer, b *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	output, err := BuildASTOutput(b, fileID)
	if err != nil {
		return err
	}
	file := b.Files.Get(fileID)
	fmt.Fprintf(w, "File (span: %s)\n", formatSpan(file.Span, fs))
	writeTreeChildren(w, output.Children, "", file.Span.File, fs)
	return nil
}

func writeTreeChildren(w io.Writer, nodes []ASTNodeOutput, prefix string, file source.FileID, fs *source.FileSet) {
	for i := range nodes {
		n := &nodes[i]
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, treeLabel(n, file, fs))
		writeTreeChildren(w, n.Children, prefix+next, file, fs)
	}
}

func treeLabel(n *ASTNodeOutput, file source.FileID, fs *source.FileSet) string {
	var sb strings.Builder
	sb.WriteString(n.Type)
	if n.Kind != "" {
		sb.WriteString(" " + n.Kind)
	}
	if n.Text != "" {
		fmt.Fprintf(&sb, " %q", n.Text)
	}
	if keys := sortedKeys(n.Fields); len(keys) > 0 {
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, n.Fields[k]))
		}
		sb.WriteString(" {" + strings.Join(parts, ", ") + "}")
	}
	sp := source.Span{File: file, Start: n.Span.Start, End: n.Span.End}
	fmt.Fprintf(&sb, " (span: %s)", formatSpan(sp, fs))
	return sb.String()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
