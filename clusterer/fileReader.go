package main

import (
	"fmt"
	"io"

	actar "github.com/next-exp/actar_go/pkg"
)

// EventSource is anything handing out events until io.EOF.
type EventSource interface {
	NextEvent() (actar.EventBatch, error)
}

// EventReader applies the skip and max_events settings on top of a source.
type EventReader struct {
	Source    EventSource
	EvtCount  int
	Skip      int
	MaxEvents int
}

func NewEventReader(source EventSource, skip int, maxEvents int) *EventReader {
	return &EventReader{Source: source, EvtCount: -1, Skip: skip, MaxEvents: maxEvents}
}

func (r *EventReader) getNextEvent() (actar.EventBatch, error) {
	for {
		batch, err := r.Source.NextEvent()
		if err != nil {
			return batch, err
		}
		r.EvtCount++
		if r.EvtCount >= r.MaxEvents {
			if VerbosityLevel > 0 {
				logger.Info("Max events reached", "fileReader")
			}
			return actar.EventBatch{EventID: -1}, io.EOF
		}
		if r.EvtCount < r.Skip {
			if VerbosityLevel > 0 {
				message := fmt.Sprintf("Skipping event %d with ID %d", r.EvtCount, batch.EventID)
				logger.Info(message, "fileReader")
			}
			continue
		}
		if VerbosityLevel > 0 {
			message := fmt.Sprintf("Reading event %d with ID %d (%d hits)", r.EvtCount, batch.EventID, len(batch.Hits))
			logger.Info(message, "fileReader")
		}
		return batch, nil
	}
}

func numberOfEventsToProcess(fileEvtCount int, skipEvts int, maxEvtCount int) int {
	evtsToRead := maxEvtCount - skipEvts
	if evtsToRead > fileEvtCount-skipEvts {
		evtsToRead = fileEvtCount - skipEvts
	}
	if evtsToRead < 0 {
		evtsToRead = 0
	}
	return evtsToRead
}
