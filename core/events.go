package core

import (
	"fmt"
)

// Stage names a step of the launch pipeline
type Stage string

const (
	StageManifest  Stage = "manifest"
	StageClient    Stage = "client"
	StageLibraries Stage = "libraries"
	StageAssets    Stage = "assets"
	StageLoader    Stage = "loader"
	StageCompose   Stage = "compose"
	StageLaunch    Stage = "launch"
)

type EventKind int

const (
	EventLog EventKind = iota
	EventProgress
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventLog:
		return "log"
	case EventProgress:
		return "progress"
	case EventError:
		return "error"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is a human-readable pipeline notification. Done and Total are only set for progress events.
type Event struct {
	Stage   Stage
	Kind    EventKind
	Message string
	Done    int
	Total   int
}

// Reporter receives pipeline events. Implementations must not block; the pipeline
// ignores anything a reporter does.
type Reporter interface {
	Report(Event)
}

type ReporterFunc func(Event)

func (f ReporterFunc) Report(e Event) {
	f(e)
}

type nopReporter struct{}

func (nopReporter) Report(Event) {}

// NopReporter discards every event
var NopReporter Reporter = nopReporter{}

// ChannelReporter forwards events to a buffered channel, dropping them when the
// consumer falls behind.
type ChannelReporter struct {
	events chan Event
}

func NewChannelReporter(buffer int) *ChannelReporter {
	return &ChannelReporter{events: make(chan Event, buffer)}
}

func (c *ChannelReporter) Report(e Event) {
	select {
	case c.events <- e:
	default:
	}
}

func (c *ChannelReporter) Events() <-chan Event {
	return c.events
}

// Close must only be called once the pipeline has returned
func (c *ChannelReporter) Close() {
	close(c.events)
}

func Logf(r Reporter, stage Stage, format string, a ...interface{}) {
	r.Report(Event{Stage: stage, Kind: EventLog, Message: fmt.Sprintf(format, a...)})
}

func Errorf(r Reporter, stage Stage, format string, a ...interface{}) {
	r.Report(Event{Stage: stage, Kind: EventError, Message: fmt.Sprintf(format, a...)})
}

func Progress(r Reporter, stage Stage, done, total int) {
	r.Report(Event{Stage: stage, Kind: EventProgress, Done: done, Total: total})
}
