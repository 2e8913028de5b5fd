package source

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Point is an immutable cursor into one file: byte offset plus the derived
// 1-based line and column. Columns count runes, not bytes.
type Point struct {
	File FileID
	Off  uint32
	Line uint32
	Col  uint32
}

// StartOf returns the point at the first byte of file id.
func StartOf(id FileID) Point {
	return Point{File: id, Off: 0, Line: 1, Col: 1}
}

// Shift returns p advanced past text. text must be exactly the bytes consumed
// starting at p; this is not validated.
func (p Point) Shift(text string) Point {
	if text == "" {
		return p
	}
	p.Off += mustU32(len(text))
	if nl := strings.LastIndexByte(text, '\n'); nl >= 0 {
		p.Line += mustU32(strings.Count(text, "\n"))
		p.Col = 1 + mustU32(utf8.RuneCountInString(text[nl+1:]))
		return p
	}
	p.Col += mustU32(utf8.RuneCountInString(text))
	return p
}

// Before reports whether p comes strictly before q. Points of different files
// are never ordered.
func (p Point) Before(q Point) bool {
	return p.File == q.File && p.Off < q.Off
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Location is a half-open range between two points of the same file.
type Location struct {
	Start Point
	End   Point
}

// NewLocation builds a location; both points must belong to the same file and
// end must not precede start.
func NewLocation(start, end Point) Location {
	if start.File != end.File {
		panic(fmt.Sprintf("location spans files %d and %d", start.File, end.File))
	}
	if end.Off < start.Off {
		panic(fmt.Sprintf("location end %d precedes start %d", end.Off, start.Off))
	}
	return Location{Start: start, End: end}
}

// SpanTo returns the smallest location covering both l and other.
func (l Location) SpanTo(other Location) Location {
	if l.Start.File != other.Start.File {
		return l
	}
	out := l
	if other.Start.Off < out.Start.Off {
		out.Start = other.Start
	}
	if other.End.Off > out.End.Off {
		out.End = other.End
	}
	return out
}

// Span drops the derived line/column information.
func (l Location) Span() Span {
	return Span{File: l.Start.File, Start: l.Start.Off, End: l.End.Off}
}

func (l Location) String() string {
	return fmt.Sprintf("%s-%s", l.Start, l.End)
}
