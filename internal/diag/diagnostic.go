package diag

import (
	"emblem/internal/source"
)

// Note is an annotated source span. Error notes mark the fault itself,
// info notes mark related context.
type Note struct {
	Span     source.Span
	Msg      string
	Severity Severity
}

type FixEdit struct {
	Span    source.Span
	NewText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
	Help     string
}

// Spans returns the primary span followed by every note span.
func (d Diagnostic) Spans() []source.Span {
	out := make([]source.Span, 0, len(d.Notes)+1)
	out = append(out, d.Primary)
	for _, n := range d.Notes {
		out = append(out, n.Span)
	}
	return out
}
