package buildpipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageLoad reads and normalises the source file.
	StageLoad Stage = "load"
	// StageParse is the parsing stage.
	StageParse Stage = "parse"
	// StageTypeset hands the tree to the typesetter.
	StageTypeset Stage = "typeset"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusCached indicates the result came from the disk cache.
	StatusCached Status = "cached"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the overall pipeline when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Finished reports whether the event closes the file's work.
func (e Event) Finished() bool {
	switch e.Status {
	case StatusDone, StatusError, StatusCached:
		return true
	}
	return false
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// EmitQueued reports every file as queued for parsing.
func EmitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageParse, Status: StatusQueued})
	}
}

// Emit sends one event when sink is set.
func Emit(sink ProgressSink, ev Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(ev)
}
