package main

import (
	"io"

	"emblem/internal/buildpipeline"
	"emblem/internal/driver"
	"emblem/internal/ui"
)

type checkOutcome struct {
	batch *driver.Batch
	err   error
}

// runCheckWithUI parses files in the background while the progress model
// renders their events on out.
func runCheckWithUI(s *session, title string, files []string, out io.Writer) (*driver.Batch, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts := s.opts
		opts.Progress = buildpipeline.ChannelSink{Ch: events}
		batch, err := driver.ParseFiles(s.ctx, files, opts)
		outcomeCh <- checkOutcome{batch: batch, err: err}
		close(events)
	}()

	uiErr := ui.Run(title, files, events, out)
	if uiErr != nil {
		// модель больше не читает канал, дочитываем сами
		for range events {
		}
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.batch, uiErr
	}
	return outcome.batch, outcome.err
}
