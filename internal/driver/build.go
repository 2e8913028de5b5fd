package driver

import (
	"context"
	"fmt"
	"time"

	"emblem/internal/ast"
	"emblem/internal/buildpipeline"
	"emblem/internal/logging"
	"emblem/internal/source"
)

// Document is a successfully parsed file handed to a Typesetter.
type Document struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Root    ast.FileID
}

// Typesetter consumes parsed documents. Output formats live behind it.
type Typesetter interface {
	Typeset(ctx context.Context, doc Document) error
}

// CountingTypesetter produces no output; it records the stats of the last
// document it was given.
type CountingTypesetter struct {
	Stats Stats
	Docs  int
}

func (t *CountingTypesetter) Typeset(_ context.Context, doc Document) error {
	t.Stats = CollectStats(doc.Builder, doc.Root)
	t.Docs++
	return nil
}

type BuildResult struct {
	*ParseResult
	// Typeset is false when parsing failed and the typesetter never ran.
	Typeset bool
}

// Build parses path and, when the parse is clean under the warning policy,
// hands the tree to ts. A nil ts means a CountingTypesetter.
func Build(ctx context.Context, path string, opts Options, ts Typesetter) (*BuildResult, error) {
	if ts == nil {
		ts = &CountingTypesetter{}
	}
	logger := logging.FromContext(ctx)
	buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: path, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})

	start := time.Now()
	res, err := Parse(ctx, path, opts)
	if err != nil {
		buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: path, Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusError, Err: err})
		return nil, err
	}
	out := &BuildResult{ParseResult: res}
	if res.Failed() {
		logger.Debug("build stopped", logging.FieldPath, path, logging.FieldErrors, res.Bag.Len())
		buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: path, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusError, Elapsed: since(start)})
		return out, nil
	}

	buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: path, Stage: buildpipeline.StageTypeset, Status: buildpipeline.StatusWorking})
	span := res.Timer.Begin("typeset")
	err = ts.Typeset(ctx, Document{
		FileSet: res.FileSet,
		File:    res.File,
		Builder: res.Builder,
		Root:    res.FileID,
	})
	span.End("")
	if err != nil {
		buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: path, Stage: buildpipeline.StageTypeset, Status: buildpipeline.StatusError, Err: err})
		return out, fmt.Errorf("typeset %s: %w", path, err)
	}
	out.Typeset = true
	logger.Debug("built", logging.FieldPath, path, logging.FieldElapsed, since(start))
	buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: path, Stage: buildpipeline.StageTypeset, Status: buildpipeline.StatusDone, Elapsed: since(start)})
	return out, nil
}
