package ast

import (
	"testing"

	"emblem/internal/source"
)

func TestUnnamedAttr(t *testing.T) {
	raw := " \tfoo\t "
	attr := NewUnnamedAttr(raw, source.Span{End: uint32(len(raw))})

	if attr.IsNamed() {
		t.Fatal("unnamed attribute reported as named")
	}
	if attr.Name() != "foo" {
		t.Errorf("Name() = %q, want %q", attr.Name(), "foo")
	}
	if v, ok := attr.Value(); ok {
		t.Errorf("Value() = %q, want none", v)
	}
	if attr.Raw != raw {
		t.Errorf("Raw = %q", attr.Raw)
	}
}

func TestNamedAttr(t *testing.T) {
	raw := " \tfoo\t =\t bar \t"
	attr := NewNamedAttr(raw, source.Span{End: uint32(len(raw))})

	if !attr.IsNamed() {
		t.Fatal("named attribute reported as unnamed")
	}
	if attr.Name() != "foo" {
		t.Errorf("Name() = %q, want %q", attr.Name(), "foo")
	}
	if v, ok := attr.Value(); !ok || v != "bar" {
		t.Errorf("Value() = %q, %v; want %q", v, ok, "bar")
	}
}

func TestAttrClassification(t *testing.T) {
	tests := []struct {
		raw   string
		named bool
		name  string
		value string
	}{
		{"a=b", true, "a", "b"},
		{"a = b = c", true, "a", "b = c"},
		{" key =", true, "key", ""},
		{`a\=b`, false, `a\=b`, ""},
		{`a\=b=c`, true, `a\=b`, "c"},
		{"plain", false, "plain", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			attr := NewAttr(tt.raw, source.Span{})
			if attr.IsNamed() != tt.named {
				t.Fatalf("IsNamed() = %v, want %v", attr.IsNamed(), tt.named)
			}
			if attr.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", attr.Name(), tt.name)
			}
			v, ok := attr.Value()
			if ok != tt.named || v != tt.value {
				t.Errorf("Value() = %q, %v; want %q, %v", v, ok, tt.value, tt.named)
			}
		})
	}
}

func TestNewNamedAttrPanicsWithoutEquals(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewNamedAttr("novalue", source.Span{})
}

func TestAttrsGet(t *testing.T) {
	attrs := &Attrs{Items: []Attr{NewAttr("x", source.Span{}), NewAttr("lang = go", source.Span{})}}
	if a, ok := attrs.Get("lang"); !ok || a.Raw != "lang = go" {
		t.Fatalf("Get(lang) = %+v, %v", a, ok)
	}
	if _, ok := attrs.Get("x"); ok {
		t.Fatal("unnamed attribute must not match Get")
	}
	var none *Attrs
	if _, ok := none.Get("x"); ok {
		t.Fatal("nil Attrs matched")
	}
}

func TestIndexUnescaped(t *testing.T) {
	cases := map[string]int{
		"a,b":    1,
		`a\,b`:   -1,
		`a\,b,c`: 4,
		`\\,`:    2,
		"":       -1,
	}
	for in, want := range cases {
		if got := IndexUnescaped(in, ','); got != want {
			t.Errorf("IndexUnescaped(%q) = %d, want %d", in, got, want)
		}
	}
}
