package driver

import (
	"emblem/internal/ast"
)

// Stats summarises a parsed document.
type Stats struct {
	Pars     int
	Nodes    int
	Words    int
	Commands int
	Sugars   int
	Comments int
	// Calls counts dispatchable invocations by name; sugar is counted under
	// the command it stands for.
	Calls map[string]int
}

// Dispatchable is the number of command invocations after desugaring.
func (s Stats) Dispatchable() int {
	return s.Commands + s.Sugars
}

// CollectStats walks every node of file.
func CollectStats(b *ast.Builder, file ast.FileID) Stats {
	st := Stats{Calls: make(map[string]int)}
	f := b.Files.Get(file)
	if f == nil {
		return st
	}
	st.Pars = len(f.Pars)
	b.WalkFile(file, func(id ast.ContentID, node *ast.Content) bool {
		st.Nodes++
		switch node.Kind {
		case ast.ContentWord:
			st.Words++
		case ast.ContentCommand:
			st.Commands++
			cmd, _ := b.Contents.Command(id)
			st.Calls[b.Name(cmd.Name)]++
		case ast.ContentSugar:
			st.Sugars++
			sugar, _ := b.Contents.Sugar(id)
			st.Calls[sugar.CallName()]++
		case ast.ContentComment, ast.ContentMultiLineComment:
			st.Comments++
		}
		return true
	})
	return st
}
