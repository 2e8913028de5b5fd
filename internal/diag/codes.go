package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo           Code = 1000
	LexDanglingEscape Code = 1001

	// Грамматика
	SynInfo                Code = 2000
	SynUnexpectedChar      Code = 2001
	SynExtraCommentClose   Code = 2002
	SynHeadingTooDeep      Code = 2003
	SynNewlineInAttrs      Code = 2004
	SynUnterminatedComment Code = 2005
	SynEmptyAttrName       Code = 2006
	SynUnclosedAttrs       Code = 2007
	SynUnclosedBrace       Code = 2008
	SynUnclosedDelimiter   Code = 2009
	SynUnclosedVerbatim    Code = 2010
	SynUnclosedBracket     Code = 2011

	// layout errors
	SynInfoLayout         Code = 2100
	SynUnexpectedIndent   Code = 2101
	SynInconsistentIndent Code = 2102
	SynMissingTrailerBody Code = 2103
	SynNestingTooDeep     Code = 2104

	// I/O
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001

	// Project / configuration
	ProjInfo          Code = 5000
	ProjInvalidConfig Code = 5001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:            "Unknown error",
		LexInfo:                "Lexical information",
		LexDanglingEscape:      "Backslash escapes nothing",
		SynInfo:                "Syntax information",
		SynUnexpectedChar:      "Unexpected character",
		SynExtraCommentClose:   "No comment to close",
		SynHeadingTooDeep:      "Heading too deep",
		SynNewlineInAttrs:      "Newline in attributes",
		SynUnterminatedComment: "Unterminated multi-line comment",
		SynEmptyAttrName:       "Empty attribute name",
		SynUnclosedAttrs:       "Unclosed attribute list",
		SynUnclosedBrace:       "Unclosed inline argument",
		SynUnclosedDelimiter:   "Unclosed sugar delimiter",
		SynUnclosedVerbatim:    "Unclosed verbatim",
		SynUnclosedBracket:     "Unclosed label bracket",
		SynInfoLayout:          "Layout information",
		SynUnexpectedIndent:    "Unexpected indentation",
		SynInconsistentIndent:  "Inconsistent indentation",
		SynMissingTrailerBody:  "Missing trailer body",
		SynNestingTooDeep:      "Nesting too deep",
		IOInfo:                 "I/O information",
		IOLoadFileError:        "I/O load file error",
		ProjInfo:               "Project information",
		ProjInvalidConfig:      "Invalid configuration",
		ObsInfo:                "Observability information",
		ObsTimings:             "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
