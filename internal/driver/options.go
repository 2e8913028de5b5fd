package driver

import (
	"math"
	"runtime"

	"fortio.org/safecast"

	"emblem/internal/buildpipeline"
	"emblem/internal/config"
	"emblem/internal/diag"
	"emblem/internal/parser"
	"emblem/internal/source"
)

// Options configures one driver run.
type Options struct {
	Italic    []string
	Bold      []string
	MaxDepth  int
	Recover   bool
	MaxErrors int

	// NFC composes loaded sources into normalisation form C.
	NFC bool
	// MaxDiagnostics caps the diagnostics kept per file; 0 keeps all.
	MaxDiagnostics int
	// FatalWarnings turns every warning into an error.
	FatalWarnings bool

	// Jobs bounds parallel parsing; 0 uses GOMAXPROCS.
	Jobs     int
	Cache    *DiskCache
	Progress buildpipeline.ProgressSink
	// Timings records per-phase durations in the result's Timer.
	Timings bool
}

// OptionsFromConfig maps emblem.toml onto driver options. The cache is
// opened separately since it touches the file system.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Italic:        cfg.Parse.Italic,
		Bold:          cfg.Parse.Bold,
		MaxDepth:      cfg.Parse.MaxDepth,
		Recover:       cfg.Parse.Recover,
		MaxErrors:     cfg.Parse.MaxErrors,
		NFC:           cfg.Source.NFC,
		FatalWarnings: cfg.Output.FatalWarnings,
	}
}

func (o Options) jobs(files int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}

func (o Options) newBag() *diag.Bag {
	if o.MaxDiagnostics <= 0 {
		return diag.NewBag(math.MaxInt)
	}
	return diag.NewBag(o.MaxDiagnostics)
}

func (o Options) loadOptions() source.LoadOptions {
	return source.LoadOptions{NFC: o.NFC}
}

func (o Options) parserOptions(reporter diag.Reporter) (parser.Options, error) {
	maxErrors, err := safecast.Conv[uint](max(o.MaxErrors, 0))
	if err != nil {
		return parser.Options{}, err
	}
	return parser.Options{
		Italic:    o.Italic,
		Bold:      o.Bold,
		MaxDepth:  o.MaxDepth,
		Recover:   o.Recover,
		MaxErrors: maxErrors,
		Reporter:  reporter,
	}, nil
}
