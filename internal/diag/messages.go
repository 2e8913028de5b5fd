package diag

import (
	"fmt"

	"emblem/internal/source"
)

// Message builders for grammar violations. Each returns a complete value;
// nothing is emitted until the caller hands it to a Reporter.

// UnexpectedChar reports a character the grammar cannot place. at must cover
// exactly that character.
func UnexpectedChar(at source.Span, ch rune) Diagnostic {
	return NewError(SynUnexpectedChar, at, fmt.Sprintf("unexpected character ‘%c’", ch)).
		WithNote(at, "found here")
}

// ExtraCommentClose reports a "*/" with no comment open.
func ExtraCommentClose(at source.Span) Diagnostic {
	return NewError(SynExtraCommentClose, at, "no comment to close").
		WithNote(at, "found here")
}

// UnterminatedComment reports end of input inside depth nested comments;
// open is the outermost "/*".
func UnterminatedComment(open source.Span, depth int) Diagnostic {
	msg := "unterminated comment"
	if depth > 1 {
		msg = fmt.Sprintf("unterminated comment (%d levels open)", depth)
	}
	return NewError(SynUnterminatedComment, open, msg).
		WithNote(open, "comment opened here").
		WithHelp("close every \"/*\" with a matching \"*/\"")
}

// HeadingTooDeep reports a heading marker longer than six.
func HeadingTooDeep(at source.Span, level int) Diagnostic {
	return NewError(SynHeadingTooDeep, at, fmt.Sprintf("heading too deep: level %d", level)).
		WithNote(at, fmt.Sprintf("found a level-%d heading here", level)).
		WithHelp("headings should be at most level 6")
}

// NewlineInAttrs reports a raw newline inside "[...]". The primary span runs
// from the opening bracket up to and including the newline.
func NewlineInAttrs(open, newline source.Span) Diagnostic {
	return NewError(SynNewlineInAttrs, open.Cover(newline), "newline in attributes").
		WithNote(newline, "newline found here").
		WithInfo(open, "in inline attributes started here")
}

// EmptyAttrName reports "[,]" or "[=v]".
func EmptyAttrName(at source.Span) Diagnostic {
	return NewError(SynEmptyAttrName, at, "attribute has no name").
		WithNote(at, "expected a name here")
}

// UnclosedAttrs reports end of input inside "[...]".
func UnclosedAttrs(open source.Span) Diagnostic {
	return NewError(SynUnclosedAttrs, open, "unclosed attribute list").
		WithNote(open, "attribute list opened here").
		WithHelp("add a closing ']'")
}

// UnclosedBrace reports an inline argument that never sees its '}'.
func UnclosedBrace(open, end source.Span) Diagnostic {
	return NewError(SynUnclosedBrace, open, "unclosed inline argument").
		WithNote(end, "expected '}' here").
		WithInfo(open, "argument opened here")
}

// UnclosedDelimiter reports sugar left open at the end of its scope.
func UnclosedDelimiter(open, end source.Span, delim string) Diagnostic {
	return NewError(SynUnclosedDelimiter, open, fmt.Sprintf("unclosed delimiter ‘%s’", delim)).
		WithNote(end, fmt.Sprintf("expected ‘%s’ before here", delim)).
		WithInfo(open, "opened here")
}

// UnclosedVerbatim reports a "!" with no closing "!" on the same line.
func UnclosedVerbatim(open source.Span) Diagnostic {
	return NewError(SynUnclosedVerbatim, open, "unclosed verbatim").
		WithNote(open, "verbatim opened here").
		WithHelp("verbatim text must end with '!' on the same line")
}

// UnclosedBracket reports "@[" or "#[" with no ']' on the same line.
func UnclosedBracket(open source.Span) Diagnostic {
	return NewError(SynUnclosedBracket, open, "unclosed label").
		WithNote(open, "label opened here")
}

// UnexpectedIndent reports a line indented deeper than its block without a
// trailer to open.
func UnexpectedIndent(at source.Span) Diagnostic {
	return NewError(SynUnexpectedIndent, at, "unexpected indentation").
		WithNote(at, "indented here").
		WithHelp("only a '::' trailer may start an indented block")
}

// InconsistentIndent reports indentation that neither extends nor matches
// the enclosing block.
func InconsistentIndent(at, block source.Span) Diagnostic {
	d := NewError(SynInconsistentIndent, at, "inconsistent indentation").
		WithNote(at, "this indentation")
	if !block.Empty() {
		d = d.WithInfo(block, "does not match the block indented here")
	}
	return d.WithHelp("do not mix tabs and spaces in indentation")
}

// MissingTrailerBody reports "::" with no indented block after it.
func MissingTrailerBody(at source.Span) Diagnostic {
	return NewError(SynMissingTrailerBody, at, "trailer has no body").
		WithNote(at, "trailer starts here").
		WithHelp("indent the lines that belong to the trailer")
}

// NestingTooDeep reports exceeding the configured nesting limit.
func NestingTooDeep(at source.Span, limit int) Diagnostic {
	return NewError(SynNestingTooDeep, at, fmt.Sprintf("nesting deeper than %d levels", limit)).
		WithNote(at, "limit reached here")
}

// DanglingEscape warns about a backslash at the end of a line or file.
func DanglingEscape(at source.Span) Diagnostic {
	return NewWarning(LexDanglingEscape, at, "backslash escapes nothing").
		WithNote(at, "found here")
}
