package ast

import (
	"fmt"

	"emblem/internal/source"
)

type SugarKind uint8

const (
	SugarItalic SugarKind = iota + 1
	SugarBold
	SugarMonospace
	SugarSmallcaps
	SugarAlternateFace
	SugarHeading
	SugarMark
	SugarReference
)

// MaxHeadingLevel is the deepest heading the grammar accepts.
const MaxHeadingLevel = 6

var sugarCallNames = [...]string{
	SugarItalic:        "it",
	SugarBold:          "bf",
	SugarMonospace:     "tt",
	SugarSmallcaps:     "sc",
	SugarAlternateFace: "af",
	SugarMark:          "mark",
	SugarReference:     "ref",
}

var headingCallNames = [MaxHeadingLevel + 1]string{"", "h1", "h2", "h3", "h4", "h5", "h6"}

// SugarData is the payload of a sugar node. Which fields are set depends on
// Kind:
//
//	Italic, Bold                   Delimiter, Arg
//	Monospace, Smallcaps, AltFace  Delimiter, Arg
//	Heading                        level, Pluses, Standoff, Arg, InvocationSpan
//	Mark, Reference                Label
//
// The heading level is only settable through NewHeading, which keeps it in
// 1..MaxHeadingLevel.
type SugarData struct {
	Kind           SugarKind
	Delimiter      string
	Arg            []ContentID
	level          uint8
	Pluses         int
	Standoff       string
	Label          string
	InvocationSpan source.Span
}

// Level returns the heading level, or 0 for other kinds.
func (s *SugarData) Level() int {
	return int(s.level)
}

// CallName is the name of the command this sugar stands for.
func (s *SugarData) CallName() string {
	if s.Kind == SugarHeading {
		if s.level == 0 || int(s.level) > MaxHeadingLevel {
			panic(fmt.Sprintf("ast: unreachable heading level %d", s.level))
		}
		return headingCallNames[s.level]
	}
	if int(s.Kind) >= len(sugarCallNames) || sugarCallNames[s.Kind] == "" {
		panic(fmt.Sprintf("ast: unreachable sugar kind %d", s.Kind))
	}
	return sugarCallNames[s.Kind]
}

// NewDelimited creates italic, bold, monospace, smallcaps or alternate face
// sugar.
func (c *Contents) NewDelimited(span source.Span, kind SugarKind, delimiter string, arg []ContentID) ContentID {
	switch kind {
	case SugarItalic, SugarBold, SugarMonospace, SugarSmallcaps, SugarAlternateFace:
	default:
		panic(fmt.Sprintf("ast: %d is not a delimited sugar", kind))
	}
	return c.newSugar(span, SugarData{Kind: kind, Delimiter: delimiter, Arg: arg})
}

// NewHeading creates heading sugar. It panics when level is outside
// 1..MaxHeadingLevel; the parser rejects such headings before construction.
func (c *Contents) NewHeading(span, invocation source.Span, level, pluses int, standoff string, arg []ContentID) ContentID {
	if level < 1 || level > MaxHeadingLevel {
		panic(fmt.Sprintf("ast: heading level %d out of range", level))
	}
	return c.newSugar(span, SugarData{
		Kind:           SugarHeading,
		level:          uint8(level),
		Pluses:         pluses,
		Standoff:       standoff,
		Arg:            arg,
		InvocationSpan: invocation,
	})
}

// NewMark creates "@[label]" sugar.
func (c *Contents) NewMark(span source.Span, label string) ContentID {
	return c.newSugar(span, SugarData{Kind: SugarMark, Label: label})
}

// NewReference creates "#[label]" sugar.
func (c *Contents) NewReference(span source.Span, label string) ContentID {
	return c.newSugar(span, SugarData{Kind: SugarReference, Label: label})
}
