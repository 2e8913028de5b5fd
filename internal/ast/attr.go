package ast

import (
	"fmt"
	"strings"

	"emblem/internal/source"
)

// Attrs is a "[...]" attribute list. Span covers the brackets.
type Attrs struct {
	Items []Attr
	Span  source.Span
}

// Get returns the first named attribute called name.
func (a *Attrs) Get(name string) (Attr, bool) {
	if a == nil {
		return Attr{}, false
	}
	for _, it := range a.Items {
		if it.IsNamed() && it.Name() == name {
			return it, true
		}
	}
	return Attr{}, false
}

// Attr is one comma-separated item. Raw keeps surrounding whitespace and
// escapes; EqIdx is the byte index of the first unescaped '=' or -1.
type Attr struct {
	Raw   string
	EqIdx int
	Span  source.Span
}

// NewNamedAttr panics when raw has no unescaped '='.
func NewNamedAttr(raw string, span source.Span) Attr {
	idx := IndexUnescaped(raw, '=')
	if idx < 0 {
		panic(fmt.Sprintf("ast: named attribute %q has no '='", raw))
	}
	return Attr{Raw: raw, EqIdx: idx, Span: span}
}

func NewUnnamedAttr(raw string, span source.Span) Attr {
	return Attr{Raw: raw, EqIdx: -1, Span: span}
}

// NewAttr classifies raw.
func NewAttr(raw string, span source.Span) Attr {
	if IndexUnescaped(raw, '=') >= 0 {
		return NewNamedAttr(raw, span)
	}
	return NewUnnamedAttr(raw, span)
}

func (a Attr) IsNamed() bool { return a.EqIdx >= 0 }

// Name is the trimmed text before '=', or the whole trimmed text when
// unnamed.
func (a Attr) Name() string {
	if a.EqIdx < 0 {
		return strings.TrimSpace(a.Raw)
	}
	return strings.TrimSpace(a.Raw[:a.EqIdx])
}

// Value is the trimmed text after '='; unnamed attributes have none.
func (a Attr) Value() (string, bool) {
	if a.EqIdx < 0 {
		return "", false
	}
	return strings.TrimSpace(a.Raw[a.EqIdx+1:]), true
}

// IndexUnescaped returns the index of the first c in s not preceded by a
// backslash escape, or -1.
func IndexUnescaped(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case c:
			return i
		}
	}
	return -1
}
