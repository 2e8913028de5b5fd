package parser

import (
	"emblem/internal/ast"
	"emblem/internal/diag"
	"emblem/internal/scanner"
	"emblem/internal/source"
)

// DefaultMaxDepth bounds nesting of commands and sugar when Options.MaxDepth is 0.
const DefaultMaxDepth = 128

type Options struct {
	// Italic and Bold list the delimiters for the two configurable sugars;
	// nil means "_" and "*".
	Italic []string
	Bold   []string
	// MaxDepth bounds nesting of commands, sugar and comments.
	MaxDepth int
	// Recover keeps parsing after an error, resuming at the next top-level
	// paragraph. When false the file is abandoned at the first error.
	Recover       bool
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

func (o *Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

type Result struct {
	File   ast.FileID
	Bag    *diag.Bag
	Errors uint
}

// OK reports whether the file parsed without errors.
func (r Result) OK() bool { return r.Errors == 0 }

// Parser — состояние парсера на один файл
type Parser struct {
	sc     *scanner.Scanner
	arenas *ast.Builder
	file   ast.FileID
	opts   Options
	delims []delimiter

	scopes    []scope
	indent    string // отступ текущего блока
	lineStart uint32 // смещение начала текущей строки после отступа
	lineDone  bool   // строка поглощена трейлером
	depth     int
}

// ParseFile — входная точка для разбора одного файла.
func ParseFile(
	sc *scanner.Scanner,
	arenas *ast.Builder,
	opts Options,
) Result {
	f := sc.File()
	p := Parser{
		sc:     sc,
		arenas: arenas,
		opts:   opts,
		delims: buildDelimiters(opts.Italic, opts.Bold),
	}
	p.file = arenas.NewFile(source.Span{File: f.ID, Start: 0, End: u32(len(f.Text))})
	p.parseFile()

	var bag *diag.Bag
	switch r := opts.Reporter.(type) {
	case *diag.BagReporter:
		bag = r.Bag
	case diag.BagReporter:
		bag = r.Bag
	}
	return Result{
		File:   p.file,
		Bag:    bag,
		Errors: p.opts.CurrentErrors - opts.CurrentErrors,
	}
}

// parseFile — основной цикл верхнего уровня.
func (p *Parser) parseFile() {
	p.resetState()
	if p.sc.Off() == 0 && p.sc.HasPrefix("#!") {
		p.arenas.Files.Get(p.file).Shebang = p.parseShebang()
	}
	for {
		pars, ok := p.parseBlock("", source.Span{})
		for _, par := range pars {
			p.arenas.PushPar(p.file, par)
		}
		if ok || !p.opts.Recover || p.opts.Enough() {
			return
		}
		if !p.resyncTop() {
			return
		}
	}
}

func (p *Parser) parseShebang() ast.ContentID {
	m := p.sc.Mark()
	p.sc.Eat("#!")
	text := p.sc.TakeWhile(func(r rune) bool { return r != '\n' })
	id := p.arenas.Contents.NewShebang(p.sc.SpanFrom(m), text)
	p.sc.EatByte('\n')
	return id
}

func (p *Parser) resetState() {
	p.scopes = p.scopes[:0]
	p.pushScope(scopeLine)
	p.indent = ""
	p.lineDone = false
	p.depth = 0
}

// resyncTop — восстановление после ошибки: пропускаем строки до пустой
// строки, за которой идёт строка без отступа.
func (p *Parser) resyncTop() bool {
	p.resetState()
	p.skipLine()
	sawBlank := false
	for !p.sc.EOF() {
		if p.atBlankLine() {
			p.skipLine()
			sawBlank = true
			continue
		}
		if sawBlank && leadingIndent(p.sc.Rest()) == "" {
			return true
		}
		sawBlank = false
		p.skipLine()
	}
	return false
}

// report hands d to the reporter unless the error budget is spent.
func (p *Parser) report(d diag.Diagnostic) {
	if p.opts.Enough() {
		return
	}
	if d.Severity == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(d)
	}
}

// fail reports d and returns the failed production result.
func (p *Parser) fail(d diag.Diagnostic) (ast.ContentID, bool) {
	p.report(d)
	return ast.NoContentID, false
}

// enter guards one nesting level.
func (p *Parser) enter(at source.Span) bool {
	if p.depth >= p.opts.maxDepth() {
		p.report(diag.NestingTooDeep(at, p.opts.maxDepth()))
		return false
	}
	p.depth++
	return true
}

func (p *Parser) leave() {
	p.depth--
}
