package driver

import (
	"context"
	"fmt"
	"time"

	"emblem/internal/ast"
	"emblem/internal/diag"
	"emblem/internal/logging"
	"emblem/internal/observ"
	"emblem/internal/parser"
	"emblem/internal/scanner"
	"emblem/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
	// Timer is nil unless Options.Timings is set.
	Timer *observ.Timer
}

// Failed reports whether the bag holds an error after the warning policy
// has been applied.
func (r *ParseResult) Failed() bool {
	return r.Bag.HasErrors()
}

// Parse loads one file from disk and parses it.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	timer := newTimer(opts)
	fs := source.NewFileSet()

	span := timer.Begin("load")
	fileID, err := fs.LoadWith(path, opts.loadOptions())
	span.End("")
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return parseLoaded(ctx, fs, fileID, opts, timer)
}

// ParseSource parses content held in memory (stdin, tests) under name.
func ParseSource(ctx context.Context, name string, content []byte, opts Options) (*ParseResult, error) {
	timer := newTimer(opts)
	fs := source.NewFileSet()

	span := timer.Begin("load")
	fileID, err := fs.AddVirtualWith(name, content, opts.loadOptions())
	span.End("")
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return parseLoaded(ctx, fs, fileID, opts, timer)
}

func parseLoaded(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options, timer *observ.Timer) (*ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := opts.newBag()
	builder, astFile, err := parseInto(file, bag, opts, timer)
	if err != nil {
		return nil, err
	}
	logParsed(ctx, file.Path, bag, builder, astFile)
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  astFile,
		Bag:     bag,
		Timer:   timer,
	}, nil
}

// parseInto runs the parser over file with a fresh builder. Each call owns
// its builder and interner, so calls may run in parallel over one FileSet.
func parseInto(file *source.File, bag *diag.Bag, opts Options, timer *observ.Timer) (*ast.Builder, ast.FileID, error) {
	popts, err := opts.parserOptions(diag.NewDedupReporter(&diag.BagReporter{Bag: bag}))
	if err != nil {
		return nil, ast.NoFileID, fmt.Errorf("invalid max_errors: %w", err)
	}
	builder := ast.NewBuilder(ast.Hints{}, nil)

	span := timer.Begin("parse")
	res := parser.ParseFile(scanner.New(file), builder, popts)
	span.End("")

	applyPolicy(bag, opts)
	return builder, res.File, nil
}

// applyPolicy escalates warnings when they are fatal and orders the bag by position.
func applyPolicy(bag *diag.Bag, opts Options) {
	if opts.FatalWarnings {
		bag.EscalateWarnings()
	}
	bag.Sort()
}

func logParsed(ctx context.Context, path string, bag *diag.Bag, builder *ast.Builder, file ast.FileID) {
	logger := logging.FromContext(ctx)
	pars := 0
	if f := builder.Files.Get(file); f != nil {
		pars = len(f.Pars)
	}
	logger.Debug("parsed",
		logging.FieldPath, path,
		logging.FieldParagraphs, pars,
		logging.FieldDiagnostics, bag.Len(),
	)
}

func newTimer(opts Options) *observ.Timer {
	if !opts.Timings {
		return nil
	}
	return observ.NewTimer()
}

func since(start time.Time) time.Duration {
	return time.Since(start).Round(time.Microsecond)
}
