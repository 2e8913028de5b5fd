package main

import (
	"fmt"
	"io"
	"strings"

	"emblem/internal/diag"
	"emblem/internal/diagfmt"
	"emblem/internal/source"
)

type diagFormat string

const (
	diagFormatPretty diagFormat = "pretty"
	diagFormatShort  diagFormat = "short"
	diagFormatJSON   diagFormat = "json"
)

func readDiagFormat(value string) (diagFormat, error) {
	switch diagFormat(strings.ToLower(strings.TrimSpace(value))) {
	case "", diagFormatPretty:
		return diagFormatPretty, nil
	case diagFormatShort:
		return diagFormatShort, nil
	case diagFormatJSON:
		return diagFormatJSON, nil
	}
	return "", fmt.Errorf("invalid --diagnostics value %q (expected pretty|short|json)", value)
}

// printDiagnostics writes bag in the chosen format. JSON is written even
// for an empty bag so scripts always get a document.
func (s *session) printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, format diagFormat) error {
	switch format {
	case diagFormatJSON:
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	case diagFormatShort:
		if bag.Len() == 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, diag.FormatShortDiagnostics(bag.Items(), fs, true))
		return err
	default:
		if bag.Len() == 0 {
			return nil
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     s.color,
			Context:   1,
			ShowNotes: true,
			ShowHelp:  true,
		})
		_, err := fmt.Fprintln(w)
		return err
	}
}

func countSeverities(bag *diag.Bag) (errs, warns int) {
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	return errs, warns
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
