package ast

import (
	"emblem/internal/source"
)

type Hints struct{ Files, Pars, Contents uint }

// Builder owns every node of the trees it builds. IDs are only meaningful
// relative to the builder that issued them.
type Builder struct {
	Files    *Files
	Pars     *Pars
	Contents *Contents
	Strings  *source.Interner
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 3
	}
	if hints.Pars == 0 {
		hints.Pars = 1 << 6
	}
	if hints.Contents == 0 {
		hints.Contents = 1 << 8
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Files:    NewFiles(hints.Files),
		Pars:     NewPars(hints.Pars),
		Contents: NewContents(hints.Contents),
		Strings:  strings,
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) NewPar(sp source.Span, parts []ParPart) ParID {
	return b.Pars.New(sp, parts)
}

func (b *Builder) PushPar(file FileID, par ParID) {
	f := b.Files.Get(file)
	f.Pars = append(f.Pars, par)
}

// Name resolves an interned command name or qualifier.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.Strings.Lookup(id)
	return s
}
