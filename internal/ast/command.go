package ast

import (
	"emblem/internal/source"
)

// CommandData is the payload of a command invocation
//
//	.qualifier.name++[attrs]{inline}{inline}: remainder
//	::
//	    trailer
type CommandData struct {
	Qualifier     source.StringID // NoStringID when unqualified
	QualifierSpan source.Span
	Name          source.StringID
	NameSpan      source.Span
	Pluses        int
	Attrs         *Attrs // nil when no "[...]" follows the name
	InlineArgs    [][]ContentID
	// Remainder is meaningful only when HasRemainder; ":" followed by
	// nothing yields an empty remainder.
	Remainder    []ContentID
	HasRemainder bool
	TrailerArgs  [][]ParID
	// InvocationSpan covers the dot, qualifier, name, pluses and attrs.
	InvocationSpan source.Span
}

// Qualified reports whether the command names a qualifier.
func (c *CommandData) Qualified() bool {
	return c.Qualifier != source.NoStringID
}

// ArgCount is the number of inline, remainder and trailer arguments.
func (c *CommandData) ArgCount() int {
	n := len(c.InlineArgs) + len(c.TrailerArgs)
	if c.HasRemainder {
		n++
	}
	return n
}
