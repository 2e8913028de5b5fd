package diagfmt

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"emblem/internal/diag"
	"emblem/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, help, gutter, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
		help:   color.New(color.FgGreen),
		gutter: color.New(color.FgBlue, color.Bold),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.help, p.gutter, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// annotation is one underlined span within a single source line.
type annotation struct {
	line     uint32
	startCol int // ширина в колонках терминала
	endCol   int
	msg      string
	severity diag.Severity
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строки исходника с подчёркиванием ^~~~ для ошибок и ---- для
// информационных заметок, затем help.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fs.Get(d.Primary.File)
	sev := pal.severity(d.Severity)
	if f == nil {
		fmt.Fprintf(w, "%s %s: %s\n", sev.Sprint(d.Severity.String()), d.Code.ID(), pal.bold.Sprint(d.Message))
		return
	}

	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(f, fs, opts.PathMode), start.Line, start.Col,
		sev.Sprint(d.Severity.String()), d.Code.ID(), pal.bold.Sprint(d.Message))

	anns := collectAnnotations(d, f, fs, opts.ShowNotes)
	if len(anns) > 0 {
		renderSnippet(w, f, anns, opts, pal)
	}

	// заметки из других файлов печатаем отдельными строками
	for _, n := range d.Notes {
		if n.Span.File == d.Primary.File || (!opts.ShowNotes && n.Severity != diag.SevError) {
			continue
		}
		nf := fs.Get(n.Span.File)
		if nf == nil {
			continue
		}
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.gutter.Sprint("-->"),
			displayPath(nf, fs, opts.PathMode), ns.Line, ns.Col, n.Msg)
	}

	if opts.ShowHelp && d.Help != "" {
		fmt.Fprintf(w, "  %s %s\n", pal.gutter.Sprint("="), pal.help.Sprint("help: "+d.Help))
	}
}

func collectAnnotations(d *diag.Diagnostic, f *source.File, fs *source.FileSet, showNotes bool) []annotation {
	var anns []annotation
	add := func(span source.Span, msg string, sev diag.Severity) {
		if span.File != f.ID {
			return
		}
		startLC, endLC := fs.Resolve(span)
		text := f.GetLine(startLC.Line)
		lineStart := lineStartOffset(f, startLC.Line)
		prefix := sliceBytes(text, 0, span.Start-lineStart)
		a := annotation{
			line:     startLC.Line,
			startCol: displayWidth(prefix),
			msg:      msg,
			severity: sev,
		}
		if endLC.Line == startLC.Line {
			a.endCol = a.startCol + displayWidth(sliceBytes(text, span.Start-lineStart, span.End-lineStart))
		} else {
			a.endCol = displayWidth(text)
		}
		if a.endCol <= a.startCol {
			a.endCol = a.startCol + 1
		}
		anns = append(anns, a)
	}

	hasError := false
	for _, n := range d.Notes {
		if n.Severity == diag.SevError && n.Span.File == f.ID {
			hasError = true
			break
		}
	}
	if !hasError {
		add(d.Primary, "", diag.SevError)
	}
	for _, n := range d.Notes {
		if n.Severity != diag.SevError && !showNotes {
			continue
		}
		add(n.Span, n.Msg, n.Severity)
	}

	sort.SliceStable(anns, func(i, j int) bool {
		if anns[i].line != anns[j].line {
			return anns[i].line < anns[j].line
		}
		return anns[i].startCol < anns[j].startCol
	})
	return anns
}

// lineStartOffset is the byte offset of the first byte of line (1-based).
func lineStartOffset(f *source.File, line uint32) uint32 {
	if line <= 1 || int(line-2) >= len(f.LineIdx) {
		return 0
	}
	return f.LineIdx[line-2] + 1
}

// sliceBytes режет строку по байтовым смещениям, не выходя за её границы.
func sliceBytes(s string, from, to uint32) string {
	n, err := safecast.Conv[uint32](len(s))
	if err != nil {
		return s
	}
	from = min(from, n)
	to = min(max(to, from), n)
	return s[from:to]
}

func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		if r == '\t' {
			w += tabWidth
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}

func renderSnippet(w io.Writer, f *source.File, anns []annotation, opts PrettyOpts, pal palette) {
	last := anns[len(anns)-1].line
	gutterWidth := len(strconv.FormatUint(uint64(last), 10))
	pad := strings.Repeat(" ", gutterWidth)
	bar := pal.gutter.Sprint("|")

	fmt.Fprintf(w, "%s %s\n", pad, bar)

	first := anns[0].line
	from := first
	if opts.Context > 0 && uint32(opts.Context) < first {
		from = first - uint32(opts.Context)
	} else if opts.Context > 0 {
		from = 1
	}
	for line := from; line < first; line++ {
		printSourceLine(w, f, line, gutterWidth, opts, pal)
	}

	for i := 0; i < len(anns); {
		line := anns[i].line
		printSourceLine(w, f, line, gutterWidth, opts, pal)
		for ; i < len(anns) && anns[i].line == line; i++ {
			a := anns[i]
			mark := strings.Repeat("-", a.endCol-a.startCol)
			style := pal.info
			if a.severity == diag.SevError {
				mark = "^" + strings.Repeat("~", a.endCol-a.startCol-1)
				style = pal.err
			}
			under := strings.Repeat(" ", a.startCol) + mark
			if a.msg != "" {
				under += " " + a.msg
			}
			fmt.Fprintf(w, "%s %s %s\n", pad, bar, style.Sprint(under))
		}
	}
}

func printSourceLine(w io.Writer, f *source.File, line uint32, gutterWidth int, opts PrettyOpts, pal palette) {
	text := strings.ReplaceAll(f.GetLine(line), "\t", strings.Repeat(" ", tabWidth))
	if opts.Width > 0 && runewidth.StringWidth(text) > int(opts.Width) {
		text = runewidth.Truncate(text, int(opts.Width), "...")
	}
	num := strconv.FormatUint(uint64(line), 10)
	num = strings.Repeat(" ", gutterWidth-len(num)) + num
	fmt.Fprintf(w, "%s %s %s\n", pal.gutter.Sprint(num), pal.gutter.Sprint("|"), text)
}
