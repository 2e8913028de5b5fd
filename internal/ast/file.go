package ast

import (
	"emblem/internal/source"
)

// File is the root of one parsed document.
type File struct {
	Span source.Span
	// Shebang is NoContentID unless the first line starts with "#!".
	Shebang ContentID
	Pars    []ParID
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{
		Span: sp,
		Pars: make([]ParID, 0),
	}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
