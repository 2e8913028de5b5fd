package ast

import (
	"emblem/internal/source"
)

type CommentPartKind uint8

const (
	CommentPartNewline CommentPartKind = iota + 1
	CommentPartText
	CommentPartNested
)

// MultiLineComment is the body of a "/* ... */" comment, delimiters
// excluded.
type MultiLineComment struct {
	Parts []CommentPart
}

// CommentPart is one piece of a comment body. Text is set for
// CommentPartText, Nested for CommentPartNested; Span of a nested part
// includes its delimiters.
type CommentPart struct {
	Kind   CommentPartKind
	Span   source.Span
	Text   string
	Nested *MultiLineComment
}

// Depth is the number of comment levels, counting this one.
func (m *MultiLineComment) Depth() int {
	deepest := 0
	for i := range m.Parts {
		if p := &m.Parts[i]; p.Kind == CommentPartNested && p.Nested != nil {
			deepest = max(deepest, p.Nested.Depth())
		}
	}
	return deepest + 1
}
