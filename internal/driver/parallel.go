package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"emblem/internal/ast"
	"emblem/internal/buildpipeline"
	"emblem/internal/diag"
	"emblem/internal/logging"
	"emblem/internal/observ"
	"emblem/internal/source"
)

// Ext is the extension of emblem sources picked up from directories.
const Ext = ".em"

// FileResult is the outcome for one file of a batch.
type FileResult struct {
	Path   string
	FileID source.FileID
	// Builder is nil when the file failed to load or came from the cache.
	Builder *ast.Builder
	ASTFile ast.FileID
	Bag     *diag.Bag
	Stats   Stats
	Cached  bool
	LoadErr error
}

// Failed reports whether the file has an error diagnostic.
func (r *FileResult) Failed() bool {
	return r.Bag.HasErrors()
}

// Batch holds every file of a multi-file run, in input order.
type Batch struct {
	FileSet *source.FileSet
	Files   []FileResult
	Timer   *observ.Timer
}

// Failed reports whether any file failed.
func (b *Batch) Failed() bool {
	for i := range b.Files {
		if b.Files[i].Failed() {
			return true
		}
	}
	return false
}

// Diagnostics merges all per-file bags, in file order.
func (b *Batch) Diagnostics() *diag.Bag {
	total := 0
	for i := range b.Files {
		total += b.Files[i].Bag.Len()
	}
	out := diag.NewBag(total)
	for i := range b.Files {
		out.Merge(b.Files[i].Bag)
	}
	return out
}

// listEmFiles возвращает отсортированный список всех *.em файлов в директории
func listEmFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, Ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return files, nil
}

// CollectFiles expands directories into their *.em files. Files named
// explicitly are kept whatever their extension; duplicates are dropped.
func CollectFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	add := func(p string) {
		key := filepath.Clean(p)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				// surfaces later as a load diagnostic
				add(p)
				continue
			}
			return nil, err
		}
		if !st.IsDir() {
			add(p)
			continue
		}
		files, err := listEmFiles(p)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", p, err)
		}
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}

// ParseDir парсит все *.em файлы в директории параллельно
func ParseDir(ctx context.Context, dir string, opts Options) (*Batch, error) {
	files, err := listEmFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	return parseFiles(ctx, source.NewFileSetWithBase(dir), files, opts)
}

// ParseFiles parses the given files in parallel. Results keep input order.
func ParseFiles(ctx context.Context, paths []string, opts Options) (*Batch, error) {
	return parseFiles(ctx, source.NewFileSet(), paths, opts)
}

func parseFiles(ctx context.Context, fileSet *source.FileSet, paths []string, opts Options) (*Batch, error) {
	logger := logging.FromContext(ctx)
	timer := newTimer(opts)
	batch := &Batch{
		FileSet: fileSet,
		Files:   make([]FileResult, len(paths)),
		Timer:   timer,
	}
	if len(paths) == 0 {
		return batch, nil
	}
	buildpipeline.EmitQueued(opts.Progress, paths)

	// FileSet не потокобезопасен на запись, поэтому загрузка идёт последовательно
	loadSpan := timer.Begin("load")
	for i, path := range paths {
		res := &batch.Files[i]
		res.Path = path
		res.Bag = opts.newBag()
		buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: path, Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusWorking})
		fileID, err := fileSet.LoadWith(path, opts.loadOptions())
		if err != nil {
			res.LoadErr = err
			res.FileID = fileSet.AddVirtual(path, nil)
			res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: res.FileID},
				"failed to load file: "+err.Error()))
			buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: path, Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusError, Err: err})
			logger.Debug("load failed", logging.FieldPath, path, logging.FieldError, err)
			continue
		}
		res.FileID = fileID
	}
	loadSpan.End(fmt.Sprintf("%d files", len(paths)))

	fingerprint := opts.fingerprint()
	jobs := opts.jobs(len(paths))
	logger.Debug("parsing", logging.FieldFiles, len(paths), logging.FieldJobs, jobs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range batch.Files {
		res := &batch.Files[i]
		if res.LoadErr != nil {
			continue
		}
		// индексы уникальны для каждой горутины, мьютекс не нужен
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return parseOne(gctx, fileSet, res, fingerprint, opts, timer)
		})
	}
	if err := g.Wait(); err != nil {
		return batch, err
	}
	return batch, nil
}

func parseOne(ctx context.Context, fileSet *source.FileSet, res *FileResult, fingerprint Digest, opts Options, timer *observ.Timer) error {
	logger := logging.FromContext(ctx)
	file := fileSet.Get(res.FileID)
	start := time.Now()
	key := combineDigest(file.Hash, fingerprint)

	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			logger.Warn("cache read failed", logging.FieldPath, res.Path, logging.FieldError, err)
		}
		if hit {
			restoreBag(&payload, res.FileID, res.Bag)
			res.Stats = payload.Stats
			res.Cached = true
			logger.Debug("parsed", logging.FieldPath, res.Path, logging.FieldCacheHit, true, logging.FieldDiagnostics, res.Bag.Len())
			buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: res.Path, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusCached, Elapsed: since(start)})
			return nil
		}
	}

	buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: res.Path, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})
	builder, astFile, err := parseInto(file, res.Bag, opts, timer)
	if err != nil {
		return err
	}
	res.Builder = builder
	res.ASTFile = astFile
	res.Stats = CollectStats(builder, astFile)
	logger.Debug("parsed",
		logging.FieldPath, res.Path,
		logging.FieldCacheHit, false,
		logging.FieldParagraphs, res.Stats.Pars,
		logging.FieldCommands, res.Stats.Commands,
		logging.FieldDiagnostics, res.Bag.Len(),
	)

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, bagToPayload(res.Path, res.Bag, res.Stats)); err != nil {
			logger.Warn("cache write failed", logging.FieldPath, res.Path, logging.FieldError, err)
		}
	}

	status := buildpipeline.StatusDone
	if res.Failed() {
		status = buildpipeline.StatusError
	}
	buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: res.Path, Stage: buildpipeline.StageParse, Status: status, Elapsed: since(start)})
	return nil
}
