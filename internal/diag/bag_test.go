package diag

import (
	"testing"

	"emblem/internal/source"
)

func TestBagRespectsLimit(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		ok := b.Add(NewError(SynUnexpectedChar, source.Span{Start: uint32(i), End: uint32(i + 1)}, "x"))
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(NewWarning(LexDanglingEscape, source.Span{Start: 5, End: 6}, "w"))
	b.Add(NewError(SynUnexpectedChar, source.Span{Start: 1, End: 2}, "e"))
	b.Add(NewError(SynUnexpectedChar, source.Span{Start: 1, End: 2}, "e again"))
	b.Add(NewWarning(LexDanglingEscape, source.Span{Start: 1, End: 2}, "w0"))

	b.Sort()
	items := b.Items()
	if items[0].Severity != SevError || items[2].Severity != SevWarning || items[3].Primary.Start != 5 {
		t.Fatalf("unexpected order: %+v", items)
	}

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("Dedup left %d items, want 3", b.Len())
	}
}

func TestBagEscalateWarnings(t *testing.T) {
	b := NewBag(4)
	b.Add(NewWarning(LexDanglingEscape, source.Span{}, "w"))
	if b.HasErrors() {
		t.Fatal("warning counted as error")
	}
	if !b.HasWarnings() {
		t.Fatal("warning not counted")
	}
	b.EscalateWarnings()
	if !b.HasErrors() {
		t.Fatal("escalated warning not counted as error")
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a, b := NewBag(1), NewBag(1)
	a.Add(NewError(SynUnexpectedChar, source.Span{}, "a"))
	b.Add(NewError(SynUnexpectedChar, source.Span{}, "b"))
	a.Merge(b)
	if a.Len() != 2 || a.Cap() != 2 {
		t.Fatalf("Merge: len=%d cap=%d", a.Len(), a.Cap())
	}
}
