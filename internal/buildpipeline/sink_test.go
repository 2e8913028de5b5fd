package buildpipeline

import (
	"testing"
)

func TestEmitQueued(t *testing.T) {
	var rec RecordingSink
	EmitQueued(&rec, []string{"a.em", "b.em"})
	EmitQueued(nil, []string{"ignored.em"})

	events := rec.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	for _, ev := range events {
		if ev.Status != StatusQueued || ev.Stage != StageParse || ev.Finished() {
			t.Fatalf("unexpected event %+v", ev)
		}
	}
}

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 1)
	Emit(ChannelSink{Ch: ch}, Event{File: "a.em", Status: StatusCached})
	ev := <-ch
	if ev.File != "a.em" || !ev.Finished() {
		t.Fatalf("unexpected event %+v", ev)
	}
	// nil channel is a no-op
	ChannelSink{}.OnEvent(Event{})
}
