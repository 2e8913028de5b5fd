package ast

import (
	"fmt"

	"emblem/internal/source"
)

// ContentKind enumerates the closed set of content nodes. Consumers switch
// over every kind; the default branch of such switches is unreachable.
type ContentKind uint8

const (
	ContentInvalid ContentKind = iota
	ContentShebang
	ContentCommand
	ContentSugar
	ContentWord
	ContentWhitespace
	ContentDash
	ContentGlue
	ContentSpiltGlue
	ContentVerbatim
	ContentComment
	ContentMultiLineComment
)

var contentKindNames = [...]string{
	ContentInvalid:          "Invalid",
	ContentShebang:          "Shebang",
	ContentCommand:          "Command",
	ContentSugar:            "Sugar",
	ContentWord:             "Word",
	ContentWhitespace:       "Whitespace",
	ContentDash:             "Dash",
	ContentGlue:             "Glue",
	ContentSpiltGlue:        "SpiltGlue",
	ContentVerbatim:         "Verbatim",
	ContentComment:          "Comment",
	ContentMultiLineComment: "MultiLineComment",
}

func (k ContentKind) String() string {
	if int(k) < len(contentKindNames) {
		return contentKindNames[k]
	}
	return fmt.Sprintf("ContentKind(%d)", k)
}

// Content is one node of line content. Span covers exactly the source text
// that produced it. Text is a view into the file for leaf kinds:
//
//	Shebang          text after "#!"
//	Word             the word, escapes kept raw
//	Whitespace       the run of spaces and tabs
//	Dash, Glue       the raw marker
//	SpiltGlue        the raw glue, newline and indentation
//	Verbatim         text between the bangs
//	Comment          text after "//"
//
// Command, Sugar and MultiLineComment keep their data in a payload arena.
type Content struct {
	Kind    ContentKind
	Span    source.Span
	Text    string
	Payload PayloadID
}

// Contents manages allocation of content nodes.
type Contents struct {
	Arena    *Arena[Content]
	Commands *Arena[CommandData]
	Sugars   *Arena[SugarData]
	Comments *Arena[MultiLineComment]
}

func NewContents(capHint uint) *Contents {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Contents{
		Arena:    NewArena[Content](capHint),
		Commands: NewArena[CommandData](capHint >> 2),
		Sugars:   NewArena[SugarData](capHint >> 2),
		Comments: NewArena[MultiLineComment](capHint >> 4),
	}
}

func (c *Contents) new(kind ContentKind, span source.Span, text string, payload PayloadID) ContentID {
	return ContentID(c.Arena.Allocate(Content{
		Kind:    kind,
		Span:    span,
		Text:    text,
		Payload: payload,
	}))
}

// Get returns the content with the given ID.
func (c *Contents) Get(id ContentID) *Content {
	return c.Arena.Get(uint32(id))
}

func (c *Contents) NewShebang(span source.Span, text string) ContentID {
	return c.new(ContentShebang, span, text, NoPayloadID)
}

func (c *Contents) NewWord(span source.Span, word string) ContentID {
	return c.new(ContentWord, span, word, NoPayloadID)
}

func (c *Contents) NewWhitespace(span source.Span, ws string) ContentID {
	return c.new(ContentWhitespace, span, ws, NoPayloadID)
}

// NewDash panics unless raw is "-", "--" or "---".
func (c *Contents) NewDash(span source.Span, raw string) ContentID {
	if _, ok := DashFromText(raw); !ok {
		panic(fmt.Sprintf("ast: invalid dash %q", raw))
	}
	return c.new(ContentDash, span, raw, NoPayloadID)
}

// NewGlue panics unless raw is "~" or "~~".
func (c *Contents) NewGlue(span source.Span, raw string) ContentID {
	if _, ok := GlueFromText(raw); !ok {
		panic(fmt.Sprintf("ast: invalid glue %q", raw))
	}
	return c.new(ContentGlue, span, raw, NoPayloadID)
}

func (c *Contents) NewSpiltGlue(span source.Span, raw string) ContentID {
	return c.new(ContentSpiltGlue, span, raw, NoPayloadID)
}

func (c *Contents) NewVerbatim(span source.Span, text string) ContentID {
	return c.new(ContentVerbatim, span, text, NoPayloadID)
}

func (c *Contents) NewComment(span source.Span, text string) ContentID {
	return c.new(ContentComment, span, text, NoPayloadID)
}

func (c *Contents) NewMultiLineComment(span source.Span, comment MultiLineComment) ContentID {
	payload := c.Comments.Allocate(comment)
	return c.new(ContentMultiLineComment, span, "", PayloadID(payload))
}

func (c *Contents) NewCommand(span source.Span, data CommandData) ContentID {
	payload := c.Commands.Allocate(data)
	return c.new(ContentCommand, span, "", PayloadID(payload))
}

func (c *Contents) newSugar(span source.Span, data SugarData) ContentID {
	payload := c.Sugars.Allocate(data)
	return c.new(ContentSugar, span, "", PayloadID(payload))
}

// Dash returns the dash kind of a Dash node.
func (c *Contents) Dash(id ContentID) (DashKind, bool) {
	node := c.Get(id)
	if node == nil || node.Kind != ContentDash {
		return 0, false
	}
	return DashFromText(node.Text)
}

// Glue returns the glue kind of a Glue node.
func (c *Contents) Glue(id ContentID) (GlueKind, bool) {
	node := c.Get(id)
	if node == nil || node.Kind != ContentGlue {
		return 0, false
	}
	return GlueFromText(node.Text)
}

// Command returns the command data for the given content ID.
func (c *Contents) Command(id ContentID) (*CommandData, bool) {
	node := c.Get(id)
	if node == nil || node.Kind != ContentCommand {
		return nil, false
	}
	return c.Commands.Get(uint32(node.Payload)), true
}

// Sugar returns the sugar data for the given content ID.
func (c *Contents) Sugar(id ContentID) (*SugarData, bool) {
	node := c.Get(id)
	if node == nil || node.Kind != ContentSugar {
		return nil, false
	}
	return c.Sugars.Get(uint32(node.Payload)), true
}

// MultiLineComment returns the comment body for the given content ID.
func (c *Contents) MultiLineComment(id ContentID) (*MultiLineComment, bool) {
	node := c.Get(id)
	if node == nil || node.Kind != ContentMultiLineComment {
		return nil, false
	}
	return c.Comments.Get(uint32(node.Payload)), true
}
