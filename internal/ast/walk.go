package ast

import "fmt"

// Visitor is called for every content node in pre-order. Returning false
// skips the node's children.
type Visitor func(id ContentID, node *Content) bool

// WalkFile visits the shebang and every paragraph of file.
func (b *Builder) WalkFile(file FileID, visit Visitor) {
	f := b.Files.Get(file)
	if f == nil {
		return
	}
	if f.Shebang.IsValid() {
		b.Walk(f.Shebang, visit)
	}
	b.WalkPars(f.Pars, visit)
}

// WalkPars visits every content of the given paragraphs.
func (b *Builder) WalkPars(pars []ParID, visit Visitor) {
	for _, pid := range pars {
		par := b.Pars.Get(pid)
		if par == nil {
			continue
		}
		for i := range par.Parts {
			b.WalkAll(par.Parts[i].Content, visit)
		}
	}
}

// WalkAll visits each id in order.
func (b *Builder) WalkAll(ids []ContentID, visit Visitor) {
	for _, id := range ids {
		b.Walk(id, visit)
	}
}

// Walk visits id and, unless visit returns false, its children.
func (b *Builder) Walk(id ContentID, visit Visitor) {
	node := b.Contents.Get(id)
	if node == nil || !visit(id, node) {
		return
	}
	switch node.Kind {
	case ContentCommand:
		cmd, _ := b.Contents.Command(id)
		for _, arg := range cmd.InlineArgs {
			b.WalkAll(arg, visit)
		}
		if cmd.HasRemainder {
			b.WalkAll(cmd.Remainder, visit)
		}
		for _, trailer := range cmd.TrailerArgs {
			b.WalkPars(trailer, visit)
		}
	case ContentSugar:
		sugar, _ := b.Contents.Sugar(id)
		b.WalkAll(sugar.Arg, visit)
	case ContentShebang, ContentWord, ContentWhitespace, ContentDash, ContentGlue,
		ContentSpiltGlue, ContentVerbatim, ContentComment, ContentMultiLineComment:
	default:
		panic(fmt.Sprintf("ast: unreachable content kind %s", node.Kind))
	}
}
