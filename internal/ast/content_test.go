package ast

import (
	"testing"

	"emblem/internal/source"
)

func TestContentsAccessorsCheckKind(t *testing.T) {
	c := NewContents(0)
	word := c.NewWord(source.Span{End: 5}, "hello")
	dash := c.NewDash(source.Span{}, "---")
	glue := c.NewGlue(source.Span{}, "~~")

	if _, ok := c.Command(word); ok {
		t.Error("Command accepted a word")
	}
	if _, ok := c.Sugar(word); ok {
		t.Error("Sugar accepted a word")
	}
	if _, ok := c.MultiLineComment(word); ok {
		t.Error("MultiLineComment accepted a word")
	}
	if d, ok := c.Dash(dash); !ok || d != DashEm {
		t.Errorf("Dash = %v, %v", d, ok)
	}
	if g, ok := c.Glue(glue); !ok || g != GlueNBSP {
		t.Errorf("Glue = %v, %v", g, ok)
	}
	if c.Get(NoContentID) != nil {
		t.Error("NoContentID resolved to a node")
	}
	if n := c.Get(word); n.Kind != ContentWord || n.Text != "hello" {
		t.Errorf("word node = %+v", n)
	}
}

func TestNewDashPanicsOnBadText(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewContents(0).NewDash(source.Span{}, "----")
}

func TestContentKindString(t *testing.T) {
	if ContentSpiltGlue.String() != "SpiltGlue" {
		t.Errorf("String() = %q", ContentSpiltGlue.String())
	}
	if ContentKind(200).String() != "ContentKind(200)" {
		t.Errorf("String() = %q", ContentKind(200).String())
	}
}

func TestMultiLineCommentDepth(t *testing.T) {
	inner := &MultiLineComment{Parts: []CommentPart{{Kind: CommentPartText, Text: " inner "}}}
	outer := MultiLineComment{Parts: []CommentPart{
		{Kind: CommentPartText, Text: " outer "},
		{Kind: CommentPartNested, Nested: inner},
		{Kind: CommentPartNewline},
	}}
	if outer.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", outer.Depth())
	}
}

func TestWalkVisitsNestedContent(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	c := b.Contents
	hello := c.NewWord(source.Span{}, "hello")
	bold := c.NewDelimited(source.Span{}, SugarBold, "*", []ContentID{hello})
	rest := c.NewWord(source.Span{}, "rest")
	trailerWord := c.NewWord(source.Span{}, "body")
	trailerPar := b.NewPar(source.Span{}, []ParPart{{Kind: ParPartLine, Content: []ContentID{trailerWord}}})
	cmd := c.NewCommand(source.Span{}, CommandData{
		Name:         b.Strings.Intern("foo"),
		InlineArgs:   [][]ContentID{{bold}},
		Remainder:    []ContentID{rest},
		HasRemainder: true,
		TrailerArgs:  [][]ParID{{trailerPar}},
	})
	file := b.NewFile(source.Span{})
	b.PushPar(file, b.NewPar(source.Span{}, []ParPart{{Kind: ParPartCommand, Content: []ContentID{cmd}}}))

	var kinds []ContentKind
	b.WalkFile(file, func(_ ContentID, n *Content) bool {
		kinds = append(kinds, n.Kind)
		return true
	})
	want := []ContentKind{ContentCommand, ContentSugar, ContentWord, ContentWord, ContentWord}
	if len(kinds) != len(want) {
		t.Fatalf("visited %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("visited %v, want %v", kinds, want)
		}
	}

	var top int
	b.WalkFile(file, func(ContentID, *Content) bool { top++; return false })
	if top != 1 {
		t.Fatalf("pruned walk visited %d nodes", top)
	}

	cmdData, _ := c.Command(cmd)
	if b.Name(cmdData.Name) != "foo" || cmdData.ArgCount() != 3 || cmdData.Qualified() {
		t.Fatalf("command data = %+v", cmdData)
	}
}
