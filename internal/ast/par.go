package ast

import (
	"emblem/internal/source"
)

type ParPartKind uint8

const (
	// ParPartLine is an ordinary line of content.
	ParPartLine ParPartKind = iota
	// ParPartCommand is a line holding a single command invocation, possibly
	// followed by whitespace and comments.
	ParPartCommand
)

func (k ParPartKind) String() string {
	if k == ParPartCommand {
		return "Command"
	}
	return "Line"
}

// ParPart is one line of a paragraph. Span excludes the line's indentation
// and its terminating newline.
type ParPart struct {
	Kind    ParPartKind
	Span    source.Span
	Content []ContentID
}

// Command returns the invocation of a ParPartCommand part.
func (p *ParPart) Command() ContentID {
	if p.Kind != ParPartCommand || len(p.Content) == 0 {
		return NoContentID
	}
	return p.Content[0]
}

// Par is a run of non-blank lines at one indentation.
type Par struct {
	Span  source.Span
	Parts []ParPart
}

type Pars struct {
	Arena *Arena[Par]
}

func NewPars(capHint uint) *Pars {
	return &Pars{
		Arena: NewArena[Par](capHint),
	}
}

func (p *Pars) New(sp source.Span, parts []ParPart) ParID {
	return ParID(p.Arena.Allocate(Par{
		Span:  sp,
		Parts: parts,
	}))
}

func (p *Pars) Get(id ParID) *Par {
	return p.Arena.Get(uint32(id))
}
