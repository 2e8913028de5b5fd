package ui

import (
	"strings"
	"testing"

	"emblem/internal/buildpipeline"
)

func TestProgressModelTracksEvents(t *testing.T) {
	m := newProgressModel("checking", []string{"a.em", "b.em", "c.em"}, nil)

	m.applyEvent(buildpipeline.Event{File: "a.em", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})
	if m.items[0].status != "parsing" {
		t.Fatalf("expected parsing, got %q", m.items[0].status)
	}
	m.applyEvent(buildpipeline.Event{File: "a.em", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusDone})
	m.applyEvent(buildpipeline.Event{File: "b.em", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusCached})
	m.applyEvent(buildpipeline.Event{File: "c.em", Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusError})
	// late events for a finished file are ignored
	m.applyEvent(buildpipeline.Event{File: "c.em", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusDone})
	m.applyEvent(buildpipeline.Event{File: "unknown.em", Status: buildpipeline.StatusDone})

	if got := m.finished(); got != 3 {
		t.Fatalf("expected 3 finished files, got %d", got)
	}
	if m.failed != 1 || m.cached != 1 {
		t.Fatalf("failed=%d cached=%d", m.failed, m.cached)
	}
	if m.items[2].status != "error" {
		t.Fatalf("expected error status to stick, got %q", m.items[2].status)
	}
	if p := m.percent(); p != 1 {
		t.Fatalf("expected full progress, got %v", p)
	}

	view := m.View()
	for _, want := range []string{"checking (3/3)", "1 cached", "1 failed", "a.em", "c.em"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestPercentCountsStages(t *testing.T) {
	m := newProgressModel("x", []string{"a.em", "b.em"}, nil)
	m.applyEvent(buildpipeline.Event{File: "a.em", Stage: buildpipeline.StageTypeset, Status: buildpipeline.StatusWorking})
	if p := m.percent(); p != 0.4 {
		t.Fatalf("expected 0.4, got %v", p)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("docs/chapter-one.em", 10); got != "docs/ch..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("short.em", 20); got != "short.em" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("got %q", got)
	}
}
